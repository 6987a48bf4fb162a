// Clip HTTP handlers.
//
//   - GET  /clips/random         (serve the next clip)
//   - GET  /clips/popular        (most-asked non-dry clips)
//   - GET  /clips/{id}           (clip with its questions)
//   - POST /clips/{id}/mark-dry  (take a clip out of rotation)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/clip-qa-backend/internal/utils"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"clip marked as dry"`
}

// NextClip godoc
// @ID          nextClip
// @Summary     Get the next clip
// @Description Serves a random clip among the least-served non-dry clips and records the view.
// @Tags        Clips
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.ServedClip
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "No clips available"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clips/random [get]
func (h *Handlers) NextClip(c *gin.Context) {
	clip, err := h.clipSvc.Next(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	ok(c, http.StatusOK, clip)
}

// MarkDry godoc
// @ID          markClipDry
// @Summary     Mark a clip as dry
// @Description Removes the clip from rotation until a question is attached to it.
// @Tags        Clips
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Clip ID"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Clip not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clips/{id}/mark-dry [post]
func (h *Handlers) MarkDry(c *gin.Context) {
	if err := h.clipSvc.MarkDry(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "clip marked as dry"})
}

// GetClip godoc
// @ID          getClip
// @Summary     Get clip details
// @Description Returns a clip with its video and questions (newest first). Does not count as a view.
// @Tags        Clips
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Clip ID"
// @Success     200  {object}  services.ClipDetail
// @Failure     404  {object}  handlers.ErrorResponse  "Clip not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clips/{id} [get]
func (h *Handlers) GetClip(c *gin.Context) {
	d, err := h.clipSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// PopularClips godoc
// @ID          popularClips
// @Summary     List popular clips
// @Description Non-dry clips with at least one question, by question count then served count.
// @Tags        Clips
// @Produce     json
// @Security    BearerAuth
// @Param       limit  query     int  false  "Maximum clips"  minimum(1) maximum(100) default(10)
// @Success     200    {array}   domain.PopularClip
// @Failure     500    {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clips/popular [get]
func (h *Handlers) PopularClips(c *gin.Context) {
	out, err := h.clipSvc.Popular(c.Request.Context(), utils.AtoiDefault(c.Query("limit"), 0))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}
