// Package handlers wires HTTP endpoints to the application services.
//
// Handlers are transport-thin: they bind and validate input, call a service,
// and translate the result into a response (including conditional and
// replayed responses). Business rules live in the services package.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/repo"
	"github.com/tbourn/clip-qa-backend/internal/services"
	"github.com/tbourn/clip-qa-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
}

// VideoService manages videos and their clips.
type VideoService interface {
	CreateIdempotent(ctx context.Context, userID, key string, in services.VideoInput) (*domain.Video, bool, error)
	Get(ctx context.Context, id string) (*domain.Video, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Video, int64, error)
	// Version returns the video count and newest upload time.
	Version(ctx context.Context) (int64, *time.Time, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*domain.Video, *repo.VideoStats, error)
	AllClips(ctx context.Context, videoID string) ([]domain.Clip, error)
	Clips(ctx context.Context, videoID string, start, end int, overlap bool) ([]domain.Clip, error)
}

// ClipService serves clips and tracks their state.
type ClipService interface {
	Next(ctx context.Context, userID string) (*domain.ServedClip, error)
	MarkDry(ctx context.Context, userID, clipID string) error
	Get(ctx context.Context, clipID string) (*services.ClipDetail, error)
	Popular(ctx context.Context, limit int) ([]domain.PopularClip, error)
}

// QuestionService records questions against clips.
type QuestionService interface {
	Create(ctx context.Context, userID, clipID, question, answer string) (*domain.Question, error)
	Update(ctx context.Context, userID, questionID string, patch services.QuestionPatch) (*domain.Question, error)
	ListForClip(ctx context.Context, clipID string) ([]domain.QuestionView, error)
	ListForUser(ctx context.Context, userID string) ([]domain.UserQuestion, error)
}

// AnalyticsService computes admin statistics.
type AnalyticsService interface {
	Clips(ctx context.Context, rangeName string) (*services.ClipAnalytics, error)
	Users(ctx context.Context, rangeName string) (*services.UserEngagement, error)
	Questions(ctx context.Context) (*services.QuestionQuality, error)
	Videos(ctx context.Context) ([]services.VideoPerformance, error)
	Hourly(ctx context.Context) ([]services.HourlyActivity, error)
}

//
// Handler wiring
//

// Services bundles the dependencies of Handlers.
type Services struct {
	Auth      AuthService
	Videos    VideoService
	Clips     ClipService
	Questions QuestionService
	Analytics AnalyticsService
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	authSvc      AuthService
	videoSvc     VideoService
	clipSvc      ClipService
	questionSvc  QuestionService
	analyticsSvc AnalyticsService
}

// New constructs Handlers bound to the given services.
func New(s Services) *Handlers {
	return &Handlers{
		authSvc:      s.Auth,
		videoSvc:     s.Videos,
		clipSvc:      s.Clips,
		questionSvc:  s.Questions,
		analyticsSvc: s.Analytics,
	}
}

// userID returns the authenticated user id set by the auth middleware, or "".
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

//
// Pagination
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = max(1, utils.AtoiDefault(c.Query("page"), defaultPage))
	pageSize = utils.Clamp(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}
