package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mazhu/website"
	"github.com/mazhu/website/config"
	"github.com/mazhu/website/content"
	"github.com/mazhu/website/handlers"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/cache"
	"github.com/mazhu/website/pkg/cookie"
	"github.com/mazhu/website/pkg/db"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/pkg/metrics"
	"github.com/mazhu/website/pkg/ratelimit"
	"github.com/mazhu/website/pkg/redis"
	"github.com/mazhu/website/pkg/scheduler"
	"github.com/mazhu/website/stats"
	"github.com/mazhu/website/views"
	"github.com/mazhu/website/web"
)

// Key prefix for everything the site stores in Redis.
const redisPrefix = "mazhu"

// Task schedules.
const (
	sweepSchedule = "@every 1m"
	warmSchedule  = "@every 4m"
)

// Server is the assembled website with its backing services.
type Server struct {
	cfg       config.Config
	log       *slog.Logger
	app       *website.App
	stats     *stats.Service
	scheduler *scheduler.Scheduler
	metrics   *metrics.Registry
	i18n      *i18n.I18n
	site      *handlers.Site

	shutdown []func(context.Context) error
}

// Option configures New.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source for stats and page rendering.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New connects the configured backends and builds the HTTP application.
// On error every backend opened so far is closed.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, opts ...Option) (*Server, error) {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		metrics:   metrics.New(),
		scheduler: scheduler.New(scheduler.WithLogger(log.With("component", "scheduler")), scheduler.WithTaskTimeout(30*time.Second)),
	}
	if err := s.build(ctx, o); err != nil {
		return nil, errors.Join(err, s.close(context.WithoutCancel(ctx)))
	}
	return s, nil
}

func (s *Server) build(ctx context.Context, o *options) error {
	inst, err := i18n.New(
		i18n.WithDefaultLanguage(s.cfg.DefaultLanguage),
		i18n.WithJSONFiles(web.Static(), web.LangDir),
		i18n.WithMissingKeyHandler(func(lang, key string) {
			s.log.Warn("missing translation", "lang", lang, "key", key)
		}),
	)
	if err != nil {
		return fmt.Errorf("server: load translations: %w", err)
	}
	s.i18n = inst

	v, err := views.New()
	if err != nil {
		return fmt.Errorf("server: parse templates: %w", err)
	}
	c, err := content.Load(content.FS())
	if err != nil {
		return fmt.Errorf("server: load content: %w", err)
	}
	s.site = handlers.NewSite(v, c, inst, s.cfg.BaseURL)
	s.site.Now = o.now

	var checks []website.HealthOption

	store, check, err := s.openStore(ctx, o)
	if err != nil {
		return err
	}
	if check != nil {
		checks = append(checks, check)
	}

	snapshots, limiter, check, err := s.openCache(ctx, o)
	if err != nil {
		return err
	}
	if check != nil {
		checks = append(checks, check)
	}

	s.stats = stats.NewService(store, snapshots, s.cfg.StatsCacheTTL,
		stats.WithClock(o.now),
		stats.WithLogger(s.log.With("component", "stats")),
	)
	if err := s.scheduler.Add("stats-warm", warmSchedule, s.stats.Warm); err != nil {
		return err
	}

	errs := handlers.NewErrors(s.site)
	s.app = website.New(
		website.WithCustomLogger(s.log),
		website.WithTrustProxy(s.cfg.TrustProxy),
		website.WithCookieOptions(
			// i18n.js reads the language cookie.
			cookie.WithHTTPOnly(false),
			cookie.WithSecure(strings.HasPrefix(s.cfg.BaseURL, "https://")),
			cookie.WithSameSite(http.SameSiteLaxMode),
		),
		website.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.Metrics(s.metrics.HTTP, "/metrics", "/healthz", "/health/", "/static/"),
			middlewares.Timeout(s.cfg.RequestTimeout),
			middlewares.I18n(inst),
		),
		website.WithStaticFiles("/static/", web.FS(), "static", s.cfg.StaticMaxAge),
		website.WithHandlers(
			handlers.NewPages(s.site, s.stats, handlers.WithMapEmbedURL(s.cfg.MapsEmbedURL)),
			handlers.NewLoveStats(s.stats,
				handlers.WithRateLimiter(limiter),
				handlers.WithCORS(middlewares.WithAllowOrigins(s.cfg.CORSAllowOrigins...)),
				handlers.WithMetrics(s.metrics),
			),
			handlers.NewSEO(s.site),
			metricsRoute{enabled: s.cfg.MetricsEnabled, reg: s.metrics},
		),
		website.WithErrorHandler(errs.Handle),
		website.WithNotFoundHandler(errs.NotFound),
		website.WithMethodNotAllowedHandler(errs.MethodNotAllowed),
		website.WithHealthChecks(checks...),
	)
	return nil
}

// openStore returns the stats store for the configured backend.
func (s *Server) openStore(ctx context.Context, o *options) (stats.Store, website.HealthOption, error) {
	if !s.cfg.UsePostgres() {
		return stats.NewMemoryStore(stats.Seed(o.now())), nil, nil
	}

	pool, err := db.Connect(ctx, s.cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("server: connect postgres: %w", err)
	}
	s.onShutdown(db.Shutdown(pool))

	if err := db.Migrate(ctx, pool, stats.Migrations, "migrations", s.cfg.Database.MigrationsTable, s.log); err != nil {
		return nil, nil, fmt.Errorf("server: migrate: %w", err)
	}
	return stats.NewPostgresStore(pool), website.WithReadinessCheck("postgres", db.Healthcheck(pool)), nil
}

// openCache returns the snapshot cache and the rate limiter. With Redis
// configured both are shared across instances; otherwise they live in
// process and the scheduler sweeps them.
func (s *Server) openCache(ctx context.Context, o *options) (cache.Cache[stats.Snapshot], ratelimit.Limiter, website.HealthOption, error) {
	if s.cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, s.cfg.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("server: connect redis: %w", err)
		}
		s.onShutdown(redis.Shutdown(client))

		limiter, err := ratelimit.NewRedis(client, s.cfg.RateLimit, ratelimit.WithPrefix(redisPrefix+":ratelimit"))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("server: rate limiter: %w", err)
		}
		snapshots := cache.NewRedis[stats.Snapshot](client, nil, cache.WithPrefix(redisPrefix+":cache"))
		return snapshots, limiter, website.WithReadinessCheck("redis", redis.Healthcheck(client)), nil
	}

	snapshots := cache.NewMemory[stats.Snapshot](
		cache.WithCleanupInterval(0),
		cache.WithClock(o.now),
	)
	s.onShutdown(func(context.Context) error { return snapshots.Close() })

	limiter := ratelimit.NewMemory(s.cfg.RateLimit, ratelimit.WithNow(o.now))

	err := errors.Join(
		s.scheduler.Add("ratelimit-sweep", sweepSchedule, func(context.Context) error {
			if n := limiter.Sweep(); n > 0 {
				s.log.Debug("rate limiter swept", "keys", n)
			}
			return nil
		}),
		s.scheduler.Add("cache-sweep", sweepSchedule, func(context.Context) error {
			snapshots.Sweep()
			return nil
		}),
	)
	return snapshots, limiter, nil, err
}

func (s *Server) onShutdown(fn func(context.Context) error) {
	s.shutdown = append(s.shutdown, fn)
}

// close releases backends in reverse order of opening.
func (s *Server) close(ctx context.Context) error {
	var errs []error
	for i := len(s.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, s.shutdown[i](ctx))
	}
	s.shutdown = nil
	return errors.Join(errs...)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.app
}

// App returns the underlying application.
func (s *Server) App() *website.App {
	return s.app
}

// Stats returns the love statistics service.
func (s *Server) Stats() *stats.Service {
	return s.stats
}

// I18n returns the loaded translations.
func (s *Server) I18n() *i18n.I18n {
	return s.i18n
}

// Site returns the shared page rendering dependencies.
func (s *Server) Site() *handlers.Site {
	return s.site
}

// Scheduler returns the background task scheduler.
func (s *Server) Scheduler() *scheduler.Scheduler {
	return s.scheduler
}

// Run serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM. The scheduler starts once the listener is bound. Shutdown stops
// it first, then closes Redis and Postgres.
func (s *Server) Run(ctx context.Context) error {
	opts := []website.RunOption{
		website.WithContext(ctx),
		website.Logger(s.log),
		website.ShutdownTimeout(s.cfg.ShutdownTimeout),
		website.StartupHook(s.scheduler.StartFunc()),
		website.ShutdownHook(s.scheduler.StopFunc()),
		website.ShutdownHook(s.close),
	}
	return s.app.Run(s.cfg.Address, opts...)
}

// metricsRoute exposes the Prometheus registry at /metrics.
type metricsRoute struct {
	reg     *metrics.Registry
	enabled bool
}

func (m metricsRoute) Routes(r website.Router) {
	if m.enabled {
		r.Handle("/metrics", m.reg.Handler())
	}
}
