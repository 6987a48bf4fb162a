package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/clips/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.Param("id")}) })
	r.POST("/clips/:id/mark-dry", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	const tmpl = "/clips/:id"
	cases := []struct {
		method, path, label, status string
		code                        int
	}{
		{http.MethodGet, "/clips/a", tmpl, "200", http.StatusOK},
		{http.MethodGet, "/clips/b", tmpl, "200", http.StatusOK},
		{http.MethodPost, "/clips/a/mark-dry", "/clips/:id/mark-dry", "204", http.StatusNoContent},
		{http.MethodGet, "/videos/x", unmatchedRoute, "404", http.StatusNotFound},
	}

	base := map[[3]string]float64{}
	for _, tc := range cases {
		k := [3]string{tc.method, tc.label, tc.status}
		if _, seen := base[k]; !seen {
			base[k] = testutil.ToFloat64(httpReqs.WithLabelValues(k[0], k[1], k[2]))
		}
	}

	want := map[[3]string]float64{}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.code {
			t.Fatalf("%s %s -> %d; want %d", tc.method, tc.path, w.Code, tc.code)
		}
		want[[3]string{tc.method, tc.label, tc.status}]++
	}

	for k, n := range want {
		if got := testutil.ToFloat64(httpReqs.WithLabelValues(k[0], k[1], k[2])) - base[k]; got != n {
			t.Errorf("requests%v delta = %v; want %v", k, got, n)
		}
	}
	if v := testutil.ToFloat64(httpInflight); v != 0 {
		t.Fatalf("inflight = %v after all requests returned", v)
	}
}

func TestMetrics_SkipsSizeWhenNothingWritten(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.DELETE("/videos/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.CollectAndCount(httpRespSize)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/videos/v1", nil))

	// No body means Size() stays -1, so no new size series appears for this route.
	if after := testutil.CollectAndCount(httpRespSize); after != before {
		t.Fatalf("size series %d -> %d; want unchanged", before, after)
	}
	if n := testutil.CollectAndCount(httpLat); n == 0 {
		t.Fatal("latency histogram has no series")
	}
}
