// Video HTTP handlers.
//
//   - GET    /videos              (list, paginated, ETag support)
//   - POST   /videos              (admin: upload metadata and generate clips)
//   - GET    /videos/{id}         (one video)
//   - DELETE /videos/{id}         (admin: delete with cascade)
//   - GET    /videos/{id}/stats   (engagement figures)
//   - GET    /videos/{id}/clips   (clips by time range)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous upload with
// the same key exists for the caller, the handler returns that video and sets
// `Idempotency-Replayed: true` instead of generating a second set of clips.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/http/middleware"
	"github.com/tbourn/clip-qa-backend/internal/repo"
	"github.com/tbourn/clip-qa-backend/internal/services"
)

// CreateVideoRequest is the JSON payload for a video upload.
type CreateVideoRequest struct {
	Title           string `json:"title" binding:"required" example:"Soldering basics"`
	URL             string `json:"url" binding:"required" example:"https://cdn.example.com/videos/soldering.mp4"`
	DurationSeconds int    `json:"duration_seconds" binding:"required" example:"120"`
}

// ListVideosResponse wraps a page of videos and pagination information.
type ListVideosResponse struct {
	Videos     []domain.Video `json:"videos"`
	Pagination Pagination     `json:"pagination"`
}

// VideoStatsResponse is a video with its engagement figures.
type VideoStatsResponse struct {
	Video *domain.Video    `json:"video"`
	Stats *repo.VideoStats `json:"stats"`
}

// ListVideos godoc
// @ID          listVideos
// @Summary     List videos (paginated)
// @Description Newest first, with generated clip counts. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Videos
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListVideosResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /videos [get]
func (h *Handlers) ListVideos(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, latest, err := h.videoSvc.Version(ctx); err == nil {
		var ts int64
		if latest != nil {
			ts = latest.UnixNano()
		}
		etag := fmt.Sprintf(`W/"videos:%d:%d:%d:%d"`, page, pageSize, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.videoSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListVideosResponse{
		Videos:     items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// CreateVideo godoc
// @ID          createVideo
// @Summary     Upload a video
// @Description Stores video metadata and generates one 10-second clip per second offset, atomically.
// @Description Supports idempotency via the Idempotency-Key header (same key → same video).
// @Tags        Videos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body             body    handlers.CreateVideoRequest  true  "Video"
// @Success     201  {object}  domain.Video
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /videos [post]
func (h *Handlers) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title, url and duration_seconds are required")
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	if key == "" {
		key = strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
	}

	v, replayed, err := h.videoSvc.CreateIdempotent(c.Request.Context(), userID(c), key, services.VideoInput{
		Title:           req.Title,
		URL:             req.URL,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	if replayed {
		c.Header("Idempotency-Replayed", "true")
	}
	created(c, v.ID, v)
}

// GetVideo godoc
// @ID          getVideo
// @Summary     Get a video
// @Tags        Videos
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Video ID"
// @Success     200  {object}  domain.Video
// @Failure     404  {object}  handlers.ErrorResponse  "Video not found"
// @Router      /videos/{id} [get]
func (h *Handlers) GetVideo(c *gin.Context) {
	v, err := h.videoSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// DeleteVideo godoc
// @ID          deleteVideo
// @Summary     Delete a video
// @Description Deletes the video with its clips, views, and questions.
// @Tags        Videos
// @Security    BearerAuth
// @Param       id   path      string  true  "Video ID"
// @Success     204  {string}  string  "No Content"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     404  {object}  handlers.ErrorResponse  "Video not found"
// @Router      /videos/{id} [delete]
func (h *Handlers) DeleteVideo(c *gin.Context) {
	if err := h.videoSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// VideoStats godoc
// @ID          videoStats
// @Summary     Video statistics
// @Tags        Videos
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Video ID"
// @Success     200  {object}  handlers.VideoStatsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Video not found"
// @Router      /videos/{id}/stats [get]
func (h *Handlers) VideoStats(c *gin.Context) {
	v, st, err := h.videoSvc.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, VideoStatsResponse{Video: v, Stats: st})
}

// VideoClips godoc
// @ID          videoClips
// @Summary     Clips by time range
// @Description Clips lying within [start, end], or with overlap=true every clip sharing time with it.
// @Description Without start and end, every clip of the video.
// @Tags        Videos
// @Produce     json
// @Security    BearerAuth
// @Param       id       path   string  true   "Video ID"
// @Param       start    query  int     false  "Range start (seconds)"  minimum(0)
// @Param       end      query  int     false  "Range end (seconds)"
// @Param       overlap  query  bool    false  "Match overlapping clips"
// @Success     200  {array}   domain.Clip
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid range"
// @Failure     404  {object}  handlers.ErrorResponse  "Video not found"
// @Router      /videos/{id}/clips [get]
func (h *Handlers) VideoClips(c *gin.Context) {
	if c.Query("start") == "" && c.Query("end") == "" {
		clips, err := h.videoSvc.AllClips(c.Request.Context(), c.Param("id"))
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, http.StatusOK, clips)
		return
	}

	start, err1 := strconv.Atoi(c.Query("start"))
	end, err2 := strconv.Atoi(c.Query("end"))
	if err1 != nil || err2 != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "start and end must be integers")
		return
	}
	overlap, _ := strconv.ParseBool(c.DefaultQuery("overlap", "false"))

	clips, err := h.videoSvc.Clips(c.Request.Context(), c.Param("id"), start, end, overlap)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, clips)
}
