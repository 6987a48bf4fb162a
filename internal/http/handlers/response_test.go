package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newResponseRouter(rid string, logs *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", rid)
		if logs != nil {
			l := zerolog.New(logs).Level(zerolog.DebugLevel)
			c.Set("logger", &l)
		}
		c.Next()
	})
	return r
}

func TestFail_EnvelopeAndLogLevel(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		code      string
		wantLevel string
	}{
		{"server error logs at error", http.StatusInternalServerError, ErrCodeInternal, `"level":"error"`},
		{"unavailable clip pool logs at debug", http.StatusNotFound, ErrCodeNoClipsAvailable, `"level":"debug"`},
		{"validation logs at debug", http.StatusBadRequest, ErrCodeValidation, `"level":"debug"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			r := newResponseRouter("rid-"+tc.code, &logs)
			r.GET("/x", func(c *gin.Context) { fail(c, tc.status, tc.code, "msg") })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if w.Code != tc.status {
				t.Fatalf("status = %d; want %d", w.Code, tc.status)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json: %v", err)
			}
			if resp.RequestID != "rid-"+tc.code || resp.Code != tc.code || resp.Message != "msg" {
				t.Fatalf("body: %+v", resp)
			}
			if !strings.Contains(logs.String(), tc.wantLevel) {
				t.Fatalf("want %s in logs, got %s", tc.wantLevel, logs.String())
			}
		})
	}
}

func TestFail_AbortsChain(t *testing.T) {
	r := newResponseRouter("rid-abort", nil)
	reached := false
	r.GET("/x",
		func(c *gin.Context) { Fail(c, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "nope") },
		func(c *gin.Context) { reached = true },
	)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusMethodNotAllowed || reached {
		t.Fatalf("status=%d reached=%v", w.Code, reached)
	}
}

func TestCreatedAndNoContent(t *testing.T) {
	r := newResponseRouter("rid-ok", nil)
	api := r.Group("/api/v1")
	api.POST("/videos", func(c *gin.Context) { created(c, "v-42", gin.H{"id": "v-42"}) })
	api.DELETE("/videos/:id", func(c *gin.Context) { noContent(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/videos", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/v1/videos/v-42" {
		t.Fatalf("Location = %q", loc)
	}
	if !strings.Contains(w.Body.String(), `"id":"v-42"`) {
		t.Fatalf("body = %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/videos/v-42", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("delete: status=%d body=%q", w.Code, w.Body.String())
	}
}
