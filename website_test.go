package website_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website"
)

type testHandler struct {
	message string
}

func (h *testHandler) Routes(r website.Router) {
	r.GET("/", h.index)
	r.GET("/items/{id}", h.item)
	r.POST("/echo", h.echo)
	r.GET("/fail", h.fail)
	r.Route("/api", func(r website.Router) {
		r.GET("/status", h.status)
	})
}

func (h *testHandler) index(c website.Context) error {
	return c.String(http.StatusOK, h.message)
}

func (h *testHandler) item(c website.Context) error {
	return c.JSON(http.StatusOK, map[string]int{"id": website.Param[int](c, "id")})
}

func (h *testHandler) echo(c website.Context) error {
	body, err := c.ReadBody(1 << 10)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, string(body))
}

func (h *testHandler) fail(website.Context) error {
	return website.ErrBadRequest("nope")
}

func (h *testHandler) status(c website.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "up"})
}

func header(name, value string) website.Middleware {
	return func(next website.HandlerFunc) website.HandlerFunc {
		return func(c website.Context) error {
			c.SetHeader(name, value)
			return next(c)
		}
	}
}

func serve(app *website.App, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	app := website.New(
		website.WithHandlers(&testHandler{message: "hello"}),
		website.WithMiddleware(header("X-Site", "mazhu")),
	)

	t.Run("plain route", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello", rec.Body.String())
		assert.Equal(t, "mazhu", rec.Header().Get("X-Site"))
	})

	t.Run("typed path parameter", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, http.MethodGet, "/items/42", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	})

	t.Run("route group", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, http.MethodGet, "/api/status", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"up"}`, rec.Body.String())
	})

	t.Run("request body", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, http.MethodPost, "/echo", strings.NewReader("ping"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ping", rec.Body.String())
	})

	t.Run("error without handler is a 500", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, http.MethodGet, "/fail", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestApp_ErrorHandlers(t *testing.T) {
	t.Parallel()

	app := website.New(
		website.WithHandlers(&testHandler{}),
		website.WithErrorHandler(func(c website.Context, err error) error {
			if httpErr := website.AsHTTPError(err); httpErr != nil {
				return c.JSON(httpErr.Code, map[string]string{"error": httpErr.Message})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}),
		website.WithNotFoundHandler(func(c website.Context) error {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}),
		website.WithMethodNotAllowedHandler(func(c website.Context) error {
			return c.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		}),
	)

	tests := []struct {
		name   string
		method string
		target string
		code   int
		body   string
	}{
		{name: "http error", method: http.MethodGet, target: "/fail", code: http.StatusBadRequest, body: `{"error":"nope"}`},
		{name: "not found", method: http.MethodGet, target: "/missing", code: http.StatusNotFound, body: `{"error":"Not found"}`},
		{name: "method not allowed", method: http.MethodDelete, target: "/", code: http.StatusMethodNotAllowed, body: `{"error":"Method not allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(app, tt.method, tt.target, nil)
			require.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := website.New(website.WithHealthChecks(
		website.WithReadinessCheck("broken", func(context.Context) error {
			return errors.New("down")
		}),
	))

	rec := serve(app, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var closed bool

	done := make(chan error, 1)
	go func() {
		done <- website.New().Run("127.0.0.1:0",
			website.WithContext(ctx),
			website.ShutdownTimeout(time.Second),
			website.StartupHook(func(context.Context) error {
				close(started)
				return nil
			}),
			website.CloseHook(func() { closed = true }),
		)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, closed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
