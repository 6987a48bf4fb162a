package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/clip-qa-backend/internal/auth"
)

func newAuthRouter(tokens TokenParser, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	chain := []gin.HandlerFunc{Authenticate(tokens)}
	if admin {
		chain = append(chain, RequireAdmin())
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString("userID"),
			"username": c.GetString("username"),
			"role":     c.GetString("role"),
		})
	})
	r.GET("/me", chain...)
	return r
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokens("0123456789abcdef0123", time.Hour)
	good, _, err := tokens.Issue("u-1", "alice", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := auth.NewTokens("another-secret-value", time.Hour)
	forged, _, _ := other.Issue("u-1", "alice", "admin")

	r := newAuthRouter(tokens, false)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + good, http.StatusUnauthorized},
		{"empty token", "Bearer   ", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"other secret", "Bearer " + forged, http.StatusUnauthorized},
		{"valid", "Bearer " + good, http.StatusOK},
		{"lowercase scheme", "bearer " + good, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d; want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if tc.want == http.StatusOK {
				if body["user_id"] != "u-1" || body["username"] != "alice" || body["role"] != "user" {
					t.Fatalf("identity not stored: %v", body)
				}
				return
			}
			if body["code"] != "unauthorized" || body["request_id"] == "" {
				t.Fatalf("unexpected error body: %v", body)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokens("0123456789abcdef0123", time.Hour)
	userTok, _, _ := tokens.Issue("u-1", "alice", "user")
	adminTok, _, _ := tokens.Issue("u-2", "root", "admin")

	r := newAuthRouter(tokens, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden || !strings.Contains(w.Body.String(), `"forbidden"`) {
		t.Fatalf("user on admin route → %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin → %d", w.Code)
	}
}

func TestAuthenticate_TagsContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokens("0123456789abcdef0123", time.Hour)
	tok, _, _ := tokens.Issue("u-7", "dora", "user")

	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(base.WithContext(c.Request.Context()))
		c.Next()
	})
	r.GET("/me", Authenticate(tokens), func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), `"user_id":"u-7"`) {
		t.Fatalf("context logger missing user_id: %s", buf.String())
	}
}

func Test_bearerToken(t *testing.T) {
	cases := map[string]struct {
		tok string
		ok  bool
	}{
		"Bearer abc":    {"abc", true},
		" BEARER  abc ": {"abc", true},
		"Bearer":        {"", false},
		"Token abc":     {"", false},
		"":              {"", false},
	}
	for in, want := range cases {
		tok, ok := bearerToken(in)
		if tok != want.tok || ok != want.ok {
			t.Errorf("bearerToken(%q) = %q,%v; want %q,%v", in, tok, ok, want.tok, want.ok)
		}
	}
}
