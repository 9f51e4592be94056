package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/metrics"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := metrics.New()

	reg.HTTP.RequestsTotal.WithLabelValues("GET", "/api/love-stats", "200").Inc()
	reg.Cache.Observe(true)
	reg.Cache.Observe(false)
	reg.Cache.Observe(false)
	reg.Stats.Updates.WithLabelValues(metrics.ResultInvalid).Inc()
	reg.RateLimit.Rejected.WithLabelValues("/api/love-stats").Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(reg.Cache.Hits), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(reg.Cache.Misses), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(reg.Stats.Updates.WithLabelValues(metrics.ResultInvalid)), 0)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mazhu_http_requests_total{method="GET",route="/api/love-stats",status_code="200"} 1`)
	assert.Contains(t, string(body), "mazhu_ratelimit_rejected_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}
