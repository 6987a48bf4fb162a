// Analytics HTTP handlers (admin only).
//
//   - GET /analytics/clips?range=24h|7d|30d
//   - GET /analytics/users?range=24h|7d|30d
//   - GET /analytics/questions
//   - GET /analytics/videos
//   - GET /analytics/hourly
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClipAnalytics godoc
// @ID          clipAnalytics
// @Summary     Clip analytics
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Param       range  query     string  false  "Time range"  Enums(24h, 7d, 30d) default(7d)
// @Success     200    {object}  services.ClipAnalytics
// @Failure     400    {object}  handlers.ErrorResponse  "Invalid range"
// @Failure     403    {object}  handlers.ErrorResponse  "Admin only"
// @Router      /analytics/clips [get]
func (h *Handlers) ClipAnalytics(c *gin.Context) {
	out, err := h.analyticsSvc.Clips(c.Request.Context(), c.Query("range"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// UserEngagement godoc
// @ID          userEngagement
// @Summary     User engagement
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Param       range  query     string  false  "Time range"  Enums(24h, 7d, 30d) default(7d)
// @Success     200    {object}  services.UserEngagement
// @Failure     400    {object}  handlers.ErrorResponse  "Invalid range"
// @Failure     403    {object}  handlers.ErrorResponse  "Admin only"
// @Router      /analytics/users [get]
func (h *Handlers) UserEngagement(c *gin.Context) {
	out, err := h.analyticsSvc.Users(c.Request.Context(), c.Query("range"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// QuestionQuality godoc
// @ID          questionQuality
// @Summary     Question quality
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  services.QuestionQuality
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Router      /analytics/questions [get]
func (h *Handlers) QuestionQuality(c *gin.Context) {
	out, err := h.analyticsSvc.Questions(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// VideoPerformance godoc
// @ID          videoPerformance
// @Summary     Video performance
// @Description Per-video engagement ordered by questions-per-clip ratio.
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   services.VideoPerformance
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Router      /analytics/videos [get]
func (h *Handlers) VideoPerformance(c *gin.Context) {
	out, err := h.analyticsSvc.Videos(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// HourlyActivity godoc
// @ID          hourlyActivity
// @Summary     Hourly activity
// @Description Views over the last 7 days bucketed by UTC hour of day.
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   services.HourlyActivity
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Router      /analytics/hourly [get]
func (h *Handlers) HourlyActivity(c *gin.Context) {
	out, err := h.analyticsSvc.Hourly(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}
