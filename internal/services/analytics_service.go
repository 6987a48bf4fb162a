// Package services – AnalyticsService
//
// AnalyticsService produces the admin dashboards: clip and user engagement
// over a time range, question text quality, per-video performance, and view
// activity by hour of day. Counting happens in SQL; medians, day and hour
// bucketing, and ratio ordering happen here so that the same code runs on
// SQLite and PostgreSQL.
package services

import (
	"context"
	"slices"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/repo"
)

// Supported time ranges.
const (
	Range24h = "24h"
	Range7d  = "7d"
	Range30d = "30d"
)

// RangeSpan maps a range name to its length. An empty name means 7d.
func RangeSpan(name string) (time.Duration, error) {
	switch name {
	case Range24h:
		return 24 * time.Hour, nil
	case "", Range7d:
		return 7 * 24 * time.Hour, nil
	case Range30d:
		return 30 * 24 * time.Hour, nil
	}
	return 0, ErrInvalidRangeParam
}

// ClipAnalytics summarizes clips created within a range.
type ClipAnalytics struct {
	Range               string  `json:"range"`
	TotalClips          int64   `json:"total_clips"`
	DryClips            int64   `json:"dry_clips"`
	AvgQuestionsPerClip float64 `json:"avg_questions_per_clip"`
	TotalViews          int64   `json:"total_views"`
	UniqueViewers       int64   `json:"unique_viewers"`

	// SelectablePool is the current number of non-dry clips across all
	// videos, regardless of range.
	SelectablePool int64 `json:"selectable_pool"`
}

// UserEngagement summarizes account activity within a range. A session is
// a distinct UTC day on which the user viewed at least one clip.
type UserEngagement struct {
	Range               string  `json:"range"`
	TotalUsers          int64   `json:"total_users"`
	ActiveToday         int64   `json:"active_today"`
	AvgQuestionsPerUser float64 `json:"avg_questions_per_user"`
	AvgSessionsPerUser  float64 `json:"avg_sessions_per_user"`
}

// QuestionQuality summarizes question and answer lengths in characters.
type QuestionQuality struct {
	TotalQuestions       int64   `json:"total_questions"`
	AvgQuestionLength    float64 `json:"avg_question_length"`
	AvgAnswerLength      float64 `json:"avg_answer_length"`
	MedianQuestionLength float64 `json:"median_question_length"`
	MedianAnswerLength   float64 `json:"median_answer_length"`
}

// VideoPerformance is one video's engagement with its questions-per-clip ratio.
type VideoPerformance struct {
	repo.VideoPerformanceRow
	QuestionsPerClipRatio float64 `json:"questions_per_clip_ratio"`
}

// HourlyActivity is the view volume for one hour of the day (UTC).
type HourlyActivity struct {
	Hour        int   `json:"hour"`
	ViewCount   int64 `json:"view_count"`
	UniqueUsers int64 `json:"unique_users"`
}

// AnalyticsService computes aggregate statistics.
type AnalyticsService struct {
	DB *gorm.DB

	now func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db, now: time.Now}
}

func (s *AnalyticsService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

func (s *AnalyticsService) since(rangeName string) (time.Time, error) {
	span, err := RangeSpan(rangeName)
	if err != nil {
		return time.Time{}, err
	}
	return s.clock().Add(-span), nil
}

func rangeOrDefault(name string) string {
	if name == "" {
		return Range7d
	}
	return name
}

// Clips returns clip analytics for clips created within the range.
func (s *AnalyticsService) Clips(ctx context.Context, rangeName string) (*ClipAnalytics, error) {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Clips",
		trace.WithAttributes(attribute.String("range", rangeName)),
	)
	defer span.End()

	since, err := s.since(rangeName)
	if err != nil {
		return nil, err
	}
	t, err := repo.ClipTotalsSince(ctx, s.DB, since)
	if err != nil {
		return nil, storeErr("clip analytics", err)
	}
	pool, err := repo.CountActiveClips(ctx, s.DB)
	if err != nil {
		return nil, storeErr("selectable pool", err)
	}
	out := &ClipAnalytics{
		Range:          rangeOrDefault(rangeName),
		TotalClips:     t.TotalClips,
		DryClips:       t.DryClips,
		TotalViews:     t.TotalServed,
		UniqueViewers:  t.UniqueViewers,
		SelectablePool: pool,
	}
	if t.TotalClips > 0 {
		out.AvgQuestionsPerClip = float64(t.QuestionCount) / float64(t.TotalClips)
	}
	return out, nil
}

// Users returns engagement figures for the range. ActiveToday always covers
// the last 24 hours.
func (s *AnalyticsService) Users(ctx context.Context, rangeName string) (*UserEngagement, error) {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Users",
		trace.WithAttributes(attribute.String("range", rangeName)),
	)
	defer span.End()

	since, err := s.since(rangeName)
	if err != nil {
		return nil, err
	}
	t, err := repo.UserTotalsSince(ctx, s.DB, since, s.clock().Add(-24*time.Hour))
	if err != nil {
		return nil, storeErr("user analytics", err)
	}
	stamps, err := repo.ViewStampsSince(ctx, s.DB, since)
	if err != nil {
		return nil, storeErr("view stamps", err)
	}

	type userDay struct {
		user string
		day  string
	}
	sessions := make(map[userDay]struct{}, len(stamps))
	for _, st := range stamps {
		sessions[userDay{st.UserID, st.ViewedAt.UTC().Format(time.DateOnly)}] = struct{}{}
	}

	out := &UserEngagement{
		Range:       rangeOrDefault(rangeName),
		TotalUsers:  t.TotalUsers,
		ActiveToday: t.ActiveSince,
	}
	if t.TotalUsers > 0 {
		out.AvgQuestionsPerUser = float64(t.QuestionCount) / float64(t.TotalUsers)
		out.AvgSessionsPerUser = float64(len(sessions)) / float64(t.TotalUsers)
	}
	return out, nil
}

// Questions returns length statistics over every question.
func (s *AnalyticsService) Questions(ctx context.Context) (*QuestionQuality, error) {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Questions")
	defer span.End()

	rows, err := repo.QuestionTextLengths(ctx, s.DB)
	if err != nil {
		return nil, storeErr("question lengths", err)
	}
	out := &QuestionQuality{TotalQuestions: int64(len(rows))}
	if len(rows) == 0 {
		return out, nil
	}

	qs := make([]int, len(rows))
	as := make([]int, len(rows))
	var qsum, asum int
	for i, r := range rows {
		qs[i], as[i] = r.QuestionLen, r.AnswerLen
		qsum += r.QuestionLen
		asum += r.AnswerLen
	}
	n := float64(len(rows))
	out.AvgQuestionLength = float64(qsum) / n
	out.AvgAnswerLength = float64(asum) / n
	out.MedianQuestionLength = median(qs)
	out.MedianAnswerLength = median(as)
	return out, nil
}

// median interpolates between the two middle values of an even-length set.
func median(v []int) float64 {
	if len(v) == 0 {
		return 0
	}
	v = slices.Clone(v)
	slices.Sort(v)
	mid := len(v) / 2
	if len(v)%2 == 1 {
		return float64(v[mid])
	}
	return float64(v[mid-1]+v[mid]) / 2
}

// Videos returns per-video performance ordered by questions-per-clip ratio,
// highest first.
func (s *AnalyticsService) Videos(ctx context.Context) ([]VideoPerformance, error) {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Videos")
	defer span.End()

	rows, err := repo.VideoPerformance(ctx, s.DB)
	if err != nil {
		return nil, storeErr("video performance", err)
	}
	out := make([]VideoPerformance, len(rows))
	for i, r := range rows {
		out[i] = VideoPerformance{VideoPerformanceRow: r}
		if r.TotalClips > 0 {
			out[i].QuestionsPerClipRatio = float64(r.TotalQuestions) / float64(r.TotalClips)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuestionsPerClipRatio > out[j].QuestionsPerClipRatio
	})
	return out, nil
}

// Hourly buckets the last seven days of views by UTC hour of day. Hours
// without views are omitted.
func (s *AnalyticsService) Hourly(ctx context.Context) ([]HourlyActivity, error) {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Hourly")
	defer span.End()

	stamps, err := repo.ViewStampsSince(ctx, s.DB, s.clock().Add(-7*24*time.Hour))
	if err != nil {
		return nil, storeErr("view stamps", err)
	}

	var (
		views [24]int64
		users [24]map[string]struct{}
	)
	for _, st := range stamps {
		h := st.ViewedAt.UTC().Hour()
		views[h]++
		if users[h] == nil {
			users[h] = make(map[string]struct{})
		}
		users[h][st.UserID] = struct{}{}
	}

	out := []HourlyActivity{}
	for h := range 24 {
		if views[h] == 0 {
			continue
		}
		out = append(out, HourlyActivity{Hour: h, ViewCount: views[h], UniqueUsers: int64(len(users[h]))})
	}
	return out, nil
}
