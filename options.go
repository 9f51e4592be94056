package website

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/pkg/health"
)

// App options

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves subDir of fsys under pattern. Directory listings
// are disabled. maxAge sets Cache-Control in seconds.
//
//	website.WithStaticFiles("/static/", web.FS(), "static", 86400)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string, maxAge ...int) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir, maxAge...)
}

// WithErrorHandler sets the handler for errors returned by handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets the 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks mounts the liveness (/healthz) and readiness
// (/health/ready) endpoints.
//
//	website.WithHealthChecks(
//	    website.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger builds the application logger with a component name and
// context extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets the application logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager.
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithTrustProxy makes RealIP honour X-Forwarded-For and X-Real-IP.
func WithTrustProxy(trust bool) Option {
	return internal.WithTrustProxy(trust)
}

// Health check options

// WithLivenessPath overrides "/healthz".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the logger used for server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs after the listener is bound and before serving.
// A failing hook aborts Run.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs after the server drains, in registration order.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// CloseHook is ShutdownHook for closers without a context or error.
func CloseHook(fn func()) RunOption {
	return internal.CloseHook(fn)
}

// WithContext sets the base context. Cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
