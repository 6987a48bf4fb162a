package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/time/rate"
)

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/clips/random", nil)
	c.Request.RemoteAddr = "203.0.113.9:12345"

	key := KeyByUserOrIP()
	if got := key(c); got != "ip:203.0.113.9" {
		t.Fatalf("anonymous key = %q", got)
	}
	c.Set(ctxKeyUserID, "u123")
	if got := key(c); got != "user:u123" {
		t.Fatalf("user key = %q", got)
	}
}

// limitedRouter puts the limiter behind a header-driven fake auth step, the
// way the real stack keys on the authenticated user.
func limitedRouter(rl *RateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-rl")
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set(ctxKeyUserID, uid)
		}
		c.Next()
	})
	r.Use(pre...)
	r.Use(rl.Handler())
	r.GET("/clips/random", func(c *gin.Context) { c.String(http.StatusOK, "clip") })
	r.POST("/videos", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "up") })
	return r
}

func TestRateLimiter_BucketsPerUser(t *testing.T) {
	rl := NewRateLimiter(RateLimitOptions{RPS: 0.5, Burst: 2})
	r := limitedRouter(rl)
	base := testutil.ToFloat64(httpRateLimited)

	alice := http.Header{"X-Test-User": {"alice"}}
	bob := http.Header{"X-Test-User": {"bob"}}

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		if w := serve(r, http.MethodGet, "/clips/random", alice); w.Code != want {
			t.Fatalf("alice #%d = %d; want %d", i+1, w.Code, want)
		}
	}
	if w := serve(r, http.MethodGet, "/clips/random", bob); w.Code != http.StatusOK {
		t.Fatalf("bob shares alice's bucket: %d", w.Code)
	}

	w := serve(r, http.MethodGet, "/clips/random", alice)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "2" {
		t.Fatalf("status %d, Retry-After %q", w.Code, w.Header().Get("Retry-After"))
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["code"] != "rate_limited" || body["request_id"] != "rid-rl" {
		t.Fatalf("body = %v", body)
	}
	if got := testutil.ToFloat64(httpRateLimited) - base; got != 2 {
		t.Fatalf("rate limited delta = %v; want 2", got)
	}
}

func TestRateLimiter_Exemptions(t *testing.T) {
	replayed := func(_ context.Context, _, _, key string, _ time.Time) (bool, error) {
		return key == "done-1", nil
	}
	rl := NewRateLimiter(RateLimitOptions{RPS: 0.01, Burst: 1, Skip: SkipPaths("/health")})
	r := limitedRouter(rl, IdempotencyValidator(IdempotencyOptions{Scope: "videos"}, replayed))
	admin := http.Header{"X-Test-User": {"admin"}}

	if w := serve(r, http.MethodPost, "/videos", admin); w.Code != http.StatusCreated {
		t.Fatalf("first upload = %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/videos", admin); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second upload = %d; want 429", w.Code)
	}

	replay := http.Header{"X-Test-User": {"admin"}, HeaderIdempotencyKey: {"done-1"}}
	for i := range 3 {
		if w := serve(r, http.MethodPost, "/videos", replay); w.Code != http.StatusCreated {
			t.Fatalf("replay #%d limited: %d", i+1, w.Code)
		}
	}
	fresh := http.Header{"X-Test-User": {"admin"}, HeaderIdempotencyKey: {"new-2"}}
	if w := serve(r, http.MethodPost, "/videos", fresh); w.Code != http.StatusTooManyRequests {
		t.Fatalf("unknown key bypassed the limiter: %d", w.Code)
	}

	for i := range 3 {
		if w := serve(r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
			t.Fatalf("skipped path limited on #%d: %d", i+1, w.Code)
		}
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimitOptions{RPS: 2})
	if rl.burst != 1 || rl.keyFn == nil || rl.ttl != defaultIdleTTL {
		t.Fatalf("defaults: burst=%d keyFn=%v ttl=%v", rl.burst, rl.keyFn != nil, rl.ttl)
	}
	if a, b := rl.getVisitor("user:u1"), rl.getVisitor("user:u1"); a != b {
		t.Fatal("bucket not reused for the same key")
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(RateLimitOptions{RPS: 1, Burst: 1, IdleTTL: time.Minute})

	rl.mu.Lock()
	stale := rate.NewLimiter(1, 1)
	rl.visitors["user:gone"] = &visitor{limiter: stale, lastSeen: time.Now().Add(-time.Hour)}
	rl.visitors["user:recent"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now()}
	rl.lookups = sweepEvery - 1
	rl.mu.Unlock()

	// The sweep runs before the lookup, so the stale key gets a fresh bucket.
	if got := rl.getVisitor("user:gone"); got == stale {
		t.Fatal("stale bucket was refreshed instead of replaced")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["user:recent"]; !ok {
		t.Fatal("recent bucket evicted")
	}
	if rl.lookups != 0 {
		t.Fatalf("lookups = %d after sweep", rl.lookups)
	}
}

func TestRateLimiter_retryAfter(t *testing.T) {
	cases := []struct {
		rps  float64
		want string
	}{
		{0, "60"},
		{0.1, "10"},
		{0.5, "2"},
		{1, "1"},
		{50, "1"},
	}
	for _, tc := range cases {
		rl := NewRateLimiter(RateLimitOptions{RPS: tc.rps, Burst: 1})
		if got := rl.retryAfter(); got != tc.want {
			t.Errorf("retryAfter(rps=%v) = %q; want %q", tc.rps, got, tc.want)
		}
	}
}
