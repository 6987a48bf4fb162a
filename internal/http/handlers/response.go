// Package handlers provides the Gin handlers of the clip Q&A API.
//
// Every failure is written through fail, so clients always receive the same
// envelope and can branch on its code:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "01J9ZQ4M3R0W6V7Y8X9A1B2C3D",
//	  "code": "no_clips_available",
//	  "message": "no clips available"
//	}
//
// Successful responses carry the resource itself, without a wrapper.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/clip-qa-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	// Echo of X-Request-ID, for matching a client report to server logs.
	RequestID string `json:"request_id,omitempty" example:"01J9ZQ4M3R0W6V7Y8X9A1B2C3D"`
	// Stable machine-readable code, see errors.go.
	Code string `json:"code" example:"no_clips_available"`
	// Human-readable, safe to display.
	Message string `json:"message" example:"no clips available"`
}

// fail aborts with an ErrorResponse. 5xx responses are logged on the request
// logger and mark the active span as failed; 4xx are logged at debug.
func fail(c *gin.Context, status int, code, msg string) {
	lg := middleware.LoggerFrom(c)
	if status >= http.StatusInternalServerError {
		lg.Error().Int("status", status).Str("code", code).Str("message", msg).Msg("api error")
		trace.SpanFromContext(c.Request.Context()).SetStatus(codes.Error, code)
	} else {
		lg.Debug().Int("status", status).Str("code", code).Msg("request rejected")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router answer NoRoute/NoMethod with the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// created answers 201 with a Location pointing at id under the matched
// collection route, e.g. /api/v1/videos/<id>.
func created(c *gin.Context, id string, body any) {
	c.Header("Location", strings.TrimSuffix(c.FullPath(), "/")+"/"+id)
	c.JSON(http.StatusCreated, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
