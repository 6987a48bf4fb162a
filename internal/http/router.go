// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, authentication, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/docs"
	"github.com/tbourn/clip-qa-backend/internal/auth"
	"github.com/tbourn/clip-qa-backend/internal/config"
	"github.com/tbourn/clip-qa-backend/internal/http/handlers"
	"github.com/tbourn/clip-qa-backend/internal/http/middleware"
	"github.com/tbourn/clip-qa-backend/internal/repo"
	"github.com/tbourn/clip-qa-backend/internal/services"
)

const (
	maxBodyBytes  = 1 << 20
	healthTimeout = 2 * time.Second
)

var corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey, "If-None-Match"}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the versioned API under cfg.APIBasePath.
//
// Global middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Logger
//  4. Recovery
//  5. Body size limit
//  6. Metrics
//  7. CORS and security headers
//
// Inside the API group, authentication runs before the idempotency validator
// (which needs the caller) and the rate limiter (which keys on it and honors
// replay bypass).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:          cfg.Security.EnableHSTS,
		HSTSMaxAge:          cfg.Security.HSTSMaxAge,
		TrustForwardedProto: cfg.Security.TrustForwardedProto,
		EnablePolicy:        true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db
	tokens := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	h := handlers.New(handlers.Services{
		Auth:      services.NewAuthService(db, tokens),
		Videos:    services.NewVideoService(db, cfg.MaxVideoSeconds, cfg.IdempotencyTTL),
		Clips:     services.NewClipService(db),
		Questions: services.NewQuestionService(db),
		Analytics: services.NewAnalyticsService(db),
	})

	rl := middleware.NewRateLimiter(middleware.RateLimitOptions{
		RPS:   cfg.RateRPS,
		Burst: cfg.RateBurst,
		Key:   middleware.KeyByUserOrIP(),
	})
	gz := gzip.Gzip(gzip.DefaultCompression)

	api := groupWithPrefix(r, cfg.APIBasePath)

	// Public: credentials in, token out. Still rate limited by IP.
	public := api.Group("/auth", rl.Handler())
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
	}

	authed := api.Group("", middleware.Authenticate(tokens))
	admin := middleware.RequireAdmin()

	// Uploads validate the Idempotency-Key ahead of the limiter so a replay
	// of a stored upload is not throttled. No other route reads the key.
	idem := middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{Scope: services.IdempotencyScopeVideos},
		idempotencyLookup(db),
	)
	authed.POST("/videos", admin, idem, rl.Handler(), h.CreateVideo)

	limited := authed.Group("", rl.Handler())
	{
		// Clips
		limited.GET("/clips/random", h.NextClip)
		limited.GET("/clips/popular", gz, h.PopularClips)
		limited.GET("/clips/:id", h.GetClip)
		limited.POST("/clips/:id/mark-dry", h.MarkDry)
		limited.GET("/clips/:id/questions", gz, h.ListClipQuestions)

		// Questions
		limited.POST("/questions", h.CreateQuestion)
		limited.GET("/questions/user", gz, h.ListMyQuestions)
		limited.PUT("/questions/:id", h.UpdateQuestion)

		// Videos
		limited.GET("/videos", gz, h.ListVideos)
		limited.GET("/videos/:id", h.GetVideo)
		limited.DELETE("/videos/:id", admin, h.DeleteVideo)
		limited.GET("/videos/:id/stats", h.VideoStats)
		limited.GET("/videos/:id/clips", gz, h.VideoClips)
	}

	analytics := limited.Group("/analytics", admin, gz)
	{
		analytics.GET("/clips", h.ClipAnalytics)
		analytics.GET("/users", h.UserEngagement)
		analytics.GET("/questions", h.QuestionQuality)
		analytics.GET("/videos", h.VideoPerformance)
		analytics.GET("/hourly", h.HourlyActivity)
	}
}

// health reports liveness plus store reachability. A failed ping answers 503
// so load balancers drain the instance.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		code, status, store := http.StatusOK, "ok", "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			code, status, store = http.StatusServiceUnavailable, "degraded", "unreachable"
		}
		c.JSON(code, gin.H{
			"status": status,
			"store":  store,
			"time":   time.Now().UTC(),
		})
	}
}

// idempotencyLookup adapts repo.GetIdempotency to the middleware's lookup.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
		_, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, repo.ErrNotFound):
			return false, nil
		default:
			return false, err
		}
	}
}

// corsMiddleware allows every origin when none are configured, otherwise
// only the listed ones. Credentials are never allowed: tokens travel in the
// Authorization header.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "Location", "Idempotency-Replayed", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// gin-contrib/cors skips requests without Origin; keep the header on
		// every response so plain health checks see it too.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{cors.New(base)}
}

// limitBody caps request bodies at maxBytes. Reads beyond the cap error out,
// which the JSON binders surface as 400.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
