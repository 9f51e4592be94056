package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.NewHTTPMetrics(prometheus.NewRegistry())
	mw := middlewares.Metrics(m)
	routes := func(r internal.Router) {
		r.GET("/menu/sections/{id}", func(c internal.Context) error {
			return c.String(http.StatusOK, c.Param("id"))
		})
		r.GET("/fail", func(c internal.Context) error {
			return internal.ErrBadRequest("nope")
		})
	}
	opts := []internal.Option{internal.WithErrorHandler(statusErrorHandler)}

	serve(httptest.NewRequest(http.MethodGet, "/menu/sections/soup", nil), routes, opts, mw)
	serve(httptest.NewRequest(http.MethodGet, "/menu/sections/rice", nil), routes, opts, mw)
	serve(httptest.NewRequest(http.MethodGet, "/fail", nil), routes, opts, mw)
	serve(httptest.NewRequest(http.MethodGet, "/healthz", nil), routes, opts, mw)

	require.InDelta(t, 2, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/menu/sections/{id}", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/fail", "400")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestsTotal))
	assert.InDelta(t, 0, testutil.ToFloat64(m.InFlight), 0)
}
