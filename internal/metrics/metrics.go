// Package metrics exposes Prometheus collectors for clip lifecycle events.
// HTTP-level instrumentation lives in the middleware package; these counters
// track what the services did, independently of transport.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ClipsGenerated counts clip rows created by video uploads.
	ClipsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_clips_generated_total",
		Help: "Total number of clips generated from uploaded videos.",
	})

	// VideosCreated counts successful video uploads.
	VideosCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_videos_created_total",
		Help: "Total number of videos uploaded.",
	})

	// ClipsServed counts clips handed out by the selector.
	ClipsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_clips_served_total",
		Help: "Total number of clips served.",
	})

	// PoolExhausted counts selections that found no non-dry clip.
	PoolExhausted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_clip_pool_exhausted_total",
		Help: "Number of selections that found the clip pool empty.",
	})

	// ClipsMarkedDry counts dry marks.
	ClipsMarkedDry = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_clips_marked_dry_total",
		Help: "Total number of clips marked dry.",
	})

	// ClipsRevived counts dry clips made selectable again by a question.
	ClipsRevived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_clips_revived_total",
		Help: "Total number of dry clips revived by a new question.",
	})

	// QuestionsCreated counts questions attached to clips.
	QuestionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipqa_questions_created_total",
		Help: "Total number of questions created.",
	})

	// SelectionDuration observes how long one selection transaction takes.
	SelectionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "clipqa_selection_duration_seconds",
		Help:    "Duration of clip selection transactions in seconds.",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	})
)

func init() {
	prometheus.MustRegister(
		ClipsGenerated,
		VideosCreated,
		ClipsServed,
		PoolExhausted,
		ClipsMarkedDry,
		ClipsRevived,
		QuestionsCreated,
		SelectionDuration,
	)
}
