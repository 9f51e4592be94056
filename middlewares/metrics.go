package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/pkg/metrics"
)

// DefaultMetricsSkipPrefixes are not instrumented.
var DefaultMetricsSkipPrefixes = []string{"/metrics", "/healthz", "/health/"}

// unmatchedRoute labels requests no route matched, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight gauge, labelled
// by method, chi route pattern and status code.
func Metrics(m *metrics.HTTPMetrics, skipPrefixes ...string) internal.Middleware {
	if len(skipPrefixes) == 0 {
		skipPrefixes = DefaultMetricsSkipPrefixes
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			for _, p := range skipPrefixes {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			m.InFlight.Inc()
			defer m.InFlight.Dec()

			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			labels := []string{c.Request().Method, routePattern(c), strconv.Itoa(status)}
			m.RequestsTotal.WithLabelValues(labels...).Inc()
			m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func routePattern(c internal.Context) string {
	rctx := chi.RouteContext(c.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}

// responseStatus reports the status sent, or the one the error handler
// is about to send.
func responseStatus(c internal.Context, err error) int {
	if rw := c.ResponseWriter(); rw != nil && rw.Written() {
		return rw.Status()
	}
	if err == nil {
		return http.StatusOK
	}
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr.Code
	}
	if IsTimeoutError(err) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
