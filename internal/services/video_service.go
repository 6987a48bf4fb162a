// Package services – VideoService
//
// VideoService owns the video registry. Creating a video segments it into
// overlapping 10-second clips and persists the video, the clips, and the
// clip count in a single transaction. Listing, stats, deletion, and clip
// range queries are read-mostly and map repository errors onto the service
// error categories.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/clipgen"
	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/metrics"
	"github.com/tbourn/clip-qa-backend/internal/repo"
)

// IdempotencyScopeVideos scopes Idempotency-Key records for video creation.
const IdempotencyScopeVideos = "videos"

// VideoInput is the payload for creating a video.
type VideoInput struct {
	Title           string
	URL             string
	DurationSeconds int
}

// VideoService manages videos and their generated clips.
type VideoService struct {
	DB *gorm.DB

	// MaxDuration caps accepted video durations in seconds. Zero means
	// clipgen.DefaultMaxDuration.
	MaxDuration int

	// IdempotencyTTL bounds how long an Idempotency-Key replays.
	IdempotencyTTL time.Duration

	now func() time.Time
}

// NewVideoService constructs a VideoService.
func NewVideoService(db *gorm.DB, maxDuration int, idemTTL time.Duration) *VideoService {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &VideoService{DB: db, MaxDuration: maxDuration, IdempotencyTTL: idemTTL, now: time.Now}
}

func (s *VideoService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// Create validates the input, then stores the video and all of its clips in
// one transaction. Nothing is written when validation fails.
func (s *VideoService) Create(ctx context.Context, in VideoInput) (*domain.Video, error) {
	ctx, span := otel.Tracer("services/VideoService").Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("video.title", in.Title),
			attribute.Int("video.duration_seconds", in.DurationSeconds),
		),
	)
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.URL == "" {
		return nil, ErrURLRequired
	}
	switch err := clipgen.ValidateDuration(in.DurationSeconds, s.MaxDuration); {
	case errors.Is(err, clipgen.ErrTooShort):
		return nil, ErrDurationTooShort
	case errors.Is(err, clipgen.ErrTooLong):
		return nil, ErrDurationTooLong
	}

	windows := clipgen.Windows(in.DurationSeconds)

	var video *domain.Video
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := repo.CreateVideo(ctx, tx, in.Title, in.URL, in.DurationSeconds)
		if err != nil {
			return err
		}
		clips := make([]domain.Clip, len(windows))
		for i, w := range windows {
			clips[i] = domain.Clip{
				ID:        uuid.NewString(),
				VideoID:   v.ID,
				StartTime: w.Start,
				EndTime:   w.End,
			}
		}
		if err := repo.CreateClips(ctx, tx, clips); err != nil {
			return err
		}
		if err := repo.SetVideoClipCount(ctx, tx, v.ID, len(clips)); err != nil {
			return err
		}
		v.TotalClipsGenerated = len(clips)
		video = v
		return nil
	})
	if err != nil {
		return nil, storeErr("create video", err)
	}

	metrics.VideosCreated.Inc()
	metrics.ClipsGenerated.Add(float64(video.TotalClipsGenerated))
	log.Ctx(ctx).Info().
		Str("video_id", video.ID).
		Int("clips", video.TotalClipsGenerated).
		Msg("video created")
	return video, nil
}

// CreateIdempotent behaves like Create, but when key is non-empty a retry
// with the same (userID, key) within IdempotencyTTL returns the video
// created by the first call and replayed=true.
func (s *VideoService) CreateIdempotent(ctx context.Context, userID, key string, in VideoInput) (video *domain.Video, replayed bool, err error) {
	key = strings.TrimSpace(key)
	if key != "" {
		rec, err := repo.GetIdempotency(ctx, s.DB, userID, IdempotencyScopeVideos, key, s.clock())
		switch {
		case err == nil:
			v, gerr := repo.GetVideo(ctx, s.DB, rec.ResourceID)
			if gerr == nil {
				return v, true, nil
			}
			// The replayed video was deleted; fall through and create anew.
		case !errors.Is(err, repo.ErrNotFound):
			return nil, false, storeErr("get idempotency", err)
		}
	}

	v, err := s.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	if key != "" {
		// Best-effort: the video exists either way.
		if _, ierr := repo.CreateIdempotency(ctx, s.DB, userID, IdempotencyScopeVideos, key, v.ID, 201, s.IdempotencyTTL); ierr != nil && !errors.Is(ierr, repo.ErrDuplicate) {
			log.Ctx(ctx).Warn().Err(ierr).Str("video_id", v.ID).Msg("store idempotency key")
		}
	}
	return v, false, nil
}

// PurgeExpiredKeys deletes Idempotency-Key records whose TTL has passed.
func (s *VideoService) PurgeExpiredKeys(ctx context.Context) (int64, error) {
	n, err := repo.PurgeExpiredIdempotency(ctx, s.DB, s.clock())
	if err != nil {
		return 0, storeErr("purge idempotency", err)
	}
	return n, nil
}

// RunKeySweeper calls PurgeExpiredKeys every interval until ctx is done.
// Failures are logged and retried on the next tick.
func (s *VideoService) RunKeySweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.PurgeExpiredKeys(ctx)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("idempotency sweep failed")
				continue
			}
			if n > 0 {
				log.Ctx(ctx).Debug().Int64("purged", n).Msg("idempotency keys purged")
			}
		}
	}
}

// Get returns a video by ID.
func (s *VideoService) Get(ctx context.Context, id string) (*domain.Video, error) {
	v, err := repo.GetVideo(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, storeErr("get video", err)
	}
	return v, nil
}

// ListPage returns a page of videos, newest first, and the total count.
func (s *VideoService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Video, int64, error) {
	ctx, span := otel.Tracer("services/VideoService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountVideos(ctx, s.DB)
	if err != nil {
		return nil, 0, storeErr("count videos", err)
	}
	if total == 0 {
		return []domain.Video{}, 0, nil
	}
	items, err := repo.ListVideosPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, storeErr("list videos", err)
	}
	return items, total, nil
}

// Version returns the video count and newest upload time, for validators.
func (s *VideoService) Version(ctx context.Context) (int64, *time.Time, error) {
	n, latest, err := repo.VideosStats(ctx, s.DB)
	if err != nil {
		return 0, nil, storeErr("videos version", err)
	}
	return n, latest, nil
}

// Delete removes a video and, by cascade, its clips, views, and questions.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("services/VideoService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("video.id", id)),
	)
	defer span.End()

	err := repo.DeleteVideo(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrVideoNotFound
	}
	if err != nil {
		return storeErr("delete video", err)
	}
	log.Ctx(ctx).Info().Str("video_id", id).Msg("video deleted")
	return nil
}

// Stats returns engagement figures for one video.
func (s *VideoService) Stats(ctx context.Context, id string) (*domain.Video, *repo.VideoStats, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	st, err := repo.GetVideoStats(ctx, s.DB, id)
	if err != nil {
		return nil, nil, storeErr("video stats", err)
	}
	return v, st, nil
}

// AllClips returns every clip of a video ordered by start offset.
func (s *VideoService) AllClips(ctx context.Context, videoID string) ([]domain.Clip, error) {
	if _, err := s.Get(ctx, videoID); err != nil {
		return nil, err
	}
	clips, err := repo.ListClipsByVideo(ctx, s.DB, videoID)
	if err != nil {
		return nil, storeErr("list clips", err)
	}
	return clips, nil
}

// Clips returns the video's clips that lie within [start, end], or, when
// overlap is true, every clip that shares at least one second with it.
// Both bounds are in seconds; start must be >= 0 and less than end.
func (s *VideoService) Clips(ctx context.Context, videoID string, start, end int, overlap bool) ([]domain.Clip, error) {
	ctx, span := otel.Tracer("services/VideoService").Start(ctx, "Clips",
		trace.WithAttributes(
			attribute.String("video.id", videoID),
			attribute.Int("range.start", start),
			attribute.Int("range.end", end),
			attribute.Bool("range.overlap", overlap),
		),
	)
	defer span.End()

	if start < 0 || end <= start {
		return nil, ErrInvalidTimeRange
	}
	if _, err := s.Get(ctx, videoID); err != nil {
		return nil, err
	}

	var (
		clips []domain.Clip
		err   error
	)
	if overlap {
		clips, err = repo.ClipsOverlapping(ctx, s.DB, videoID, start, end)
	} else {
		clips, err = repo.ClipsWithin(ctx, s.DB, videoID, start, end)
	}
	if err != nil {
		return nil, storeErr("clips in range", err)
	}
	return clips, nil
}
