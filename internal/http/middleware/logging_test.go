package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logLines swaps the global logger for a JSON buffer and returns a reader
// that decodes every line written so far.
func logLines(t *testing.T) func() []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)

	return func() []map[string]any {
		var out []map[string]any
		sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
		for sc.Scan() {
			var m map[string]any
			if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
				t.Fatalf("bad log line %q: %v", sc.Text(), err)
			}
			out = append(out, m)
		}
		return out
	}
}

func accessLine(lines []map[string]any) map[string]any {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i]["message"] == "request" {
			return lines[i]
		}
	}
	return nil
}

func serve(r http.Handler, method, target string, hdr http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/clips/random", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	cases := []struct {
		name string
		in   string
		keep bool
	}{
		{"generated when absent", "", false},
		{"propagated", "rid-clip-1", true},
		{"whitespace trimmed", "  rid-clip-2 ", true},
		{"oversized replaced", strings.Repeat("r", maxRequestIDLength+1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hdr := http.Header{}
			if tc.in != "" {
				hdr.Set(requestIDHeader, tc.in)
			}
			w := serve(r, http.MethodGet, "/clips/random", hdr)

			got := w.Header().Get(requestIDHeader)
			if got == "" || got != w.Body.String() {
				t.Fatalf("header %q, context %q", got, w.Body.String())
			}
			if tc.keep && got != strings.TrimSpace(tc.in) {
				t.Fatalf("id = %q; want %q", got, strings.TrimSpace(tc.in))
			}
			if !tc.keep && len(got) > maxRequestIDLength {
				t.Fatalf("id not replaced: %d bytes", len(got))
			}
		})
	}
}

func TestLogger_LevelAndPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/clips/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.Param("id")}) })
	r.POST("/clips/:id/mark-dry", func(c *gin.Context) { c.Status(http.StatusConflict) })
	r.GET("/videos/:id/stats", func(c *gin.Context) {
		_ = c.Error(errors.New("stats query failed"))
		c.Status(http.StatusOK)
	})
	r.DELETE("/videos/:id", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	cases := []struct {
		method, target string
		level, path    string
	}{
		{http.MethodGet, "/clips/c1", "info", "/clips/:id"},
		{http.MethodPost, "/clips/c1/mark-dry", "warn", "/clips/:id/mark-dry"},
		{http.MethodGet, "/nope/c1", "warn", "/nope/c1"},
		{http.MethodGet, "/videos/v1/stats", "error", "/videos/:id/stats"},
		{http.MethodDelete, "/videos/v1", "error", "/videos/:id"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			read := logLines(t)
			serve(r, tc.method, tc.target, nil)

			line := accessLine(read())
			if line == nil {
				t.Fatal("no access line")
			}
			if line["level"] != tc.level || line["path"] != tc.path {
				t.Fatalf("level/path = %v/%v; want %s/%s", line["level"], line["path"], tc.level, tc.path)
			}
			if line["request_id"] == "" || line["method"] != tc.method {
				t.Fatalf("missing request fields: %v", line)
			}
		})
	}
}

func TestLogger_ScopedLoggerAndLateFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	read := logLines(t)

	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/questions/user", func(c *gin.Context) {
		c.Set("userID", "u-42")
		zerolog.Ctx(c.Request.Context()).Info().Msg("listing questions")
		LoggerFrom(c).Debug().Msg("via gin")
		c.String(http.StatusOK, "[]")
	})

	serve(r, http.MethodGet, "/questions/user?page=2&token=s3cret", http.Header{requestIDHeader: {"rid-7"}})

	lines := read()
	var svc map[string]any
	for _, l := range lines {
		if l["message"] == "listing questions" {
			svc = l
		}
	}
	if svc["request_id"] != "rid-7" || svc["path"] != "/questions/user" {
		t.Fatalf("context logger lacks request fields: %v", svc)
	}

	acc := accessLine(lines)
	if acc["user_id"] != "u-42" {
		t.Fatalf("user_id = %v", acc["user_id"])
	}
	if acc["query"] != "page=2&token=[REDACTED]" {
		t.Fatalf("query = %v", acc["query"])
	}
	if acc["bytes_out"] != float64(2) || acc["status"] != float64(http.StatusOK) {
		t.Fatalf("bytes_out/status = %v/%v", acc["bytes_out"], acc["status"])
	}
}

func TestLoggerFrom_WithoutLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	read := logLines(t)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/health", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("fallback")
		c.Status(http.StatusOK)
	})
	serve(r, http.MethodGet, "/health", nil)

	lines := read()
	if len(lines) != 1 || lines[0]["message"] != "fallback" {
		t.Fatalf("lines = %v", lines)
	}
	if _, ok := lines[0]["request_id"]; ok {
		t.Fatal("global logger should not carry request_id")
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/clips/random", func(*gin.Context) { panic("selector exploded") })
	r.GET("/clips/popular", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("after write")
	})

	t.Run("before write", func(t *testing.T) {
		read := logLines(t)
		w := serve(r, http.MethodGet, "/clips/random", http.Header{requestIDHeader: {"rid-p"}})
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("body: %v", err)
		}
		if body["code"] != "internal_error" || body["request_id"] != "rid-p" {
			t.Fatalf("body = %v", body)
		}
		lines := read()
		if len(lines) == 0 || lines[0]["panic"] != "selector exploded" || lines[0]["stack"] == nil {
			t.Fatalf("panic log = %v", lines)
		}
	})

	t.Run("after write", func(t *testing.T) {
		logLines(t)
		w := serve(r, http.MethodGet, "/clips/popular", nil)
		if w.Body.String() != "partial" {
			t.Fatalf("body = %q; want only the partial write", w.Body.String())
		}
	})
}

func TestScrubQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"page=2&page_size=10", "page=2&page_size=10"},
		{"token=abc&range=7d", "range=7d&token=[REDACTED]"},
		{"Password=hunter2", "Password=[REDACTED]"},
		{"q=jane.doe@example.com", "q=[REDACTED:email]"},
		{"q=212-555-1212", "q=[REDACTED:phone]"},
		{"id=6f1c2d4e-8a8b-4f7e-9a61-1d1c2f3a4b5c", "id=6f1c2d4e-8a8b-4f7e-9a61-1d1c2f3a4b5c"},
		{"start=0&end=30", "end=30&start=0"},
	}
	for _, tc := range cases {
		if got := scrubQuery(tc.in); got != tc.want {
			t.Errorf("scrubQuery(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}

	long := "q=" + strings.Repeat("a", maxQueryLogLength)
	if got := scrubQuery(long); !strings.HasSuffix(got, "…") || len(got) != maxQueryLogLength+len("…") {
		t.Fatalf("long query not truncated: %d bytes", len(got))
	}
	if truncate("abc", 0) != "abc" {
		t.Fatal("n <= 0 should disable truncation")
	}
}
