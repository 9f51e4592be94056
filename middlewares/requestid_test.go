package middlewares_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	routes := func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			seen = middlewares.GetRequestID(c)
			return c.NoContent(http.StatusOK)
		})
	}

	t.Run("generates uuid", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), routes, nil, middlewares.RequestID())
		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})

	t.Run("reuses upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "edge-42")
		rec := serve(req, routes, nil, middlewares.RequestID())
		assert.Equal(t, "edge-42", rec.Header().Get("X-Request-ID"))
	})

	t.Run("rejects unsafe upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "bad id\twith spaces")
		rec := serve(req, routes, nil, middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		))
		assert.Equal(t, "fixed", rec.Header().Get("X-Trace"))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 200))
		rec = serve(req, routes, nil, middlewares.RequestID())
		assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
	})

	t.Run("empty without middleware", func(t *testing.T) {
		serve(httptest.NewRequest(http.MethodGet, "/", nil), routes, nil)
		assert.Empty(t, seen)
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), middlewares.RequestIDExtractor()))
	routes := func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			c.LogInfo("hello")
			return c.NoContent(http.StatusOK)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	serve(req, routes, []internal.Option{internal.WithCustomLogger(log)}, middlewares.RequestID())

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)

	_, ok := middlewares.RequestIDExtractor()(context.Background())
	assert.False(t, ok)
}
