// Package services – ClipService
//
// ClipService hands out clips and tracks their state. Next picks uniformly at
// random among the non-dry clips with the lowest served count, so every clip
// is shown about as often as every other before any is shown twice. A serve
// increments the clip's served count and appends a view row in the same
// transaction as the pick.
//
// MarkDry takes a clip out of rotation until someone attaches a question to
// it (see QuestionService.Create).
package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/metrics"
	"github.com/tbourn/clip-qa-backend/internal/repo"
	"github.com/tbourn/clip-qa-backend/internal/utils"
)

// DefaultPopularLimit is used when Popular is called with a non-positive limit.
const DefaultPopularLimit = 10

const maxPopularLimit = 100

// ClipDetail is a served clip with its view count and questions, newest first.
type ClipDetail struct {
	domain.ServedClip
	ViewCount int64                 `json:"view_count"`
	Questions []domain.QuestionView `json:"questions"`
}

// ClipService selects clips and records their state.
type ClipService struct {
	DB *gorm.DB

	// randIntN returns a uniform value in [0, n). Tests replace it.
	randIntN func(n int) int
}

// NewClipService constructs a ClipService.
func NewClipService(db *gorm.DB) *ClipService {
	return &ClipService{DB: db, randIntN: rand.IntN}
}

func (s *ClipService) pick(n int) int {
	if s.randIntN == nil {
		return rand.IntN(n)
	}
	return s.randIntN(n)
}

// Next serves one clip to userID. It returns ErrNoClipsAvailable when every
// clip is dry or none exist.
func (s *ClipService) Next(ctx context.Context, userID string) (*domain.ServedClip, error) {
	ctx, span := otel.Tracer("services/ClipService").Start(ctx, "Next",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	start := time.Now()
	defer func() { metrics.SelectionDuration.Observe(time.Since(start).Seconds()) }()

	var served *domain.ServedClip
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lowest, ok, err := repo.MinServedCount(ctx, tx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoClipsAvailable
		}
		tied, err := repo.CountClipsAtServed(ctx, tx, lowest)
		if err != nil {
			return err
		}

		var clip *domain.Clip
		if tied > 0 {
			clip, err = repo.PickClipAtServed(ctx, tx, lowest, s.pick(int(tied)), true)
		}
		if tied == 0 || errors.Is(err, repo.ErrNotFound) {
			// The tie group shrank under a concurrent serve.
			clip, err = repo.PickLeastServedClip(ctx, tx, true)
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNoClipsAvailable
			}
		}
		if err != nil {
			return err
		}

		if err := repo.IncrementServed(ctx, tx, clip.ID); err != nil {
			return err
		}
		if _, err := repo.AppendView(ctx, tx, clip.ID, userID, nil); err != nil {
			return userRef(err)
		}
		served, err = repo.GetServedClip(ctx, tx, clip.ID)
		return err
	})
	if errors.Is(err, ErrNoClipsAvailable) {
		metrics.PoolExhausted.Inc()
		log.Ctx(ctx).Warn().Str("user_id", userID).Msg("clip pool exhausted")
		return nil, err
	}
	if err != nil {
		return nil, storeErr("select clip", err)
	}

	metrics.ClipsServed.Inc()
	span.SetAttributes(attribute.String("clip.id", served.ID), attribute.Int("clip.served_count", served.ServedCount))
	return served, nil
}

// MarkDry removes a clip from rotation and records a zero-length session
// for userID. Marking an already-dry clip succeeds.
func (s *ClipService) MarkDry(ctx context.Context, userID, clipID string) error {
	ctx, span := otel.Tracer("services/ClipService").Start(ctx, "MarkDry",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("clip.id", clipID),
		),
	)
	defer span.End()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetClip(ctx, tx, clipID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrClipNotFound
			}
			return err
		}
		if err := repo.SetClipDry(ctx, tx, clipID, true); err != nil {
			return err
		}
		zero := 0
		_, err := repo.AppendView(ctx, tx, clipID, userID, &zero)
		return userRef(err)
	})
	if err != nil {
		return storeErr("mark dry", err)
	}

	metrics.ClipsMarkedDry.Inc()
	log.Ctx(ctx).Info().Str("clip_id", clipID).Str("user_id", userID).Msg("clip marked dry")
	return nil
}

// Get returns a clip with its video and questions. It does not count as a serve.
func (s *ClipService) Get(ctx context.Context, clipID string) (*ClipDetail, error) {
	ctx, span := otel.Tracer("services/ClipService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("clip.id", clipID)),
	)
	defer span.End()

	clip, err := repo.GetServedClip(ctx, s.DB, clipID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrClipNotFound
	}
	if err != nil {
		return nil, storeErr("get clip", err)
	}
	views, err := repo.CountViews(ctx, s.DB, clipID)
	if err != nil {
		return nil, storeErr("count clip views", err)
	}
	qs, err := repo.ListQuestionsForClip(ctx, s.DB, clipID)
	if err != nil {
		return nil, storeErr("list clip questions", err)
	}
	if qs == nil {
		qs = []domain.QuestionView{}
	}
	return &ClipDetail{ServedClip: *clip, ViewCount: views, Questions: qs}, nil
}

// Popular returns up to limit non-dry clips with at least one question,
// most-asked first.
func (s *ClipService) Popular(ctx context.Context, limit int) ([]domain.PopularClip, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	out, err := repo.PopularClips(ctx, s.DB, utils.Clamp(limit, 1, maxPopularLimit))
	if err != nil {
		return nil, storeErr("popular clips", err)
	}
	if out == nil {
		out = []domain.PopularClip{}
	}
	return out, nil
}
