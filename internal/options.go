package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mazhu/website/pkg/cookie"
	"github.com/mazhu/website/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers whose Routes run during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles mounts fsys/subDir at pattern. Directory listings are
// disabled. maxAge is the Cache-Control max-age in seconds, default 3600.
//
// Example:
//
//	website.WithStaticFiles("/static/", web.Assets, "static", 86400)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string, maxAge ...int) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		cacheControl := "public, max-age=3600"
		if len(maxAge) > 0 && maxAge[0] >= 0 {
			cacheControl = "public, max-age=" + strconv.Itoa(maxAge[0])
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", cacheControl)
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets the handler for errors returned by handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets the 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks mounts liveness at /healthz and readiness at
// /health/ready.
//
// Example:
//
//	website.WithHealthChecks(
//	    website.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    website.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger builds a JSON logger tagged with component. Extractors add
// request-scoped attributes such as request_id.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}

// WithTrustProxy makes RealIP honor X-Forwarded-For and X-Real-IP.
// Enable it only behind a proxy that overwrites those headers.
func WithTrustProxy(trust bool) Option {
	return func(a *App) {
		a.trustProxy = trust
	}
}
