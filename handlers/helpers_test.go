package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mazhu/website"
	"github.com/mazhu/website/content"
	"github.com/mazhu/website/handlers"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/cache"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/pkg/metrics"
	"github.com/mazhu/website/pkg/ratelimit"
	"github.com/mazhu/website/stats"
	"github.com/mazhu/website/views"
	"github.com/mazhu/website/web"
)

var launch = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	app     *website.App
	clock   *clock
	metrics *metrics.Registry
}

type envConfig struct {
	svc      handlers.StatsService
	limit    int
	mapEmbed string
}

type envOption func(*envConfig)

func withService(svc handlers.StatsService) envOption {
	return func(c *envConfig) { c.svc = svc }
}

func withLimit(n int) envOption {
	return func(c *envConfig) { c.limit = n }
}

func withMapEmbed(u string) envOption {
	return func(c *envConfig) { c.mapEmbed = u }
}

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &envConfig{limit: 100}
	for _, opt := range opts {
		opt(cfg)
	}

	clk := &clock{now: launch}
	if cfg.svc == nil {
		mem := cache.NewMemory[stats.Snapshot](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = mem.Close() })
		cfg.svc = stats.NewService(
			stats.NewMemoryStore(stats.Seed(launch)),
			mem,
			stats.DefaultCacheTTL,
			stats.WithClock(clk.Now),
		)
	}

	inst, err := i18n.New(
		i18n.WithDefaultLanguage("zh"),
		i18n.WithJSONFiles(web.Static(), web.LangDir),
	)
	require.NoError(t, err)

	site := handlers.NewSite(views.MustNew(), content.MustLoad(), inst, "https://mazhu.example/")
	site.Now = clk.Now

	reg := metrics.New()
	limiter := ratelimit.NewMemory(
		ratelimit.Config{Limit: cfg.limit, Window: time.Minute},
		ratelimit.WithNow(clk.Now),
	)
	errs := handlers.NewErrors(site)

	app := website.New(
		website.WithMiddleware(
			middlewares.Recover(),
			middlewares.I18n(inst),
		),
		website.WithHandlers(
			handlers.NewPages(site, cfg.svc, handlers.WithMapEmbedURL(cfg.mapEmbed)),
			handlers.NewLoveStats(cfg.svc,
				handlers.WithRateLimiter(limiter),
				handlers.WithMetrics(reg),
			),
			handlers.NewSEO(site),
		),
		website.WithErrorHandler(errs.Handle),
		website.WithNotFoundHandler(errs.NotFound),
		website.WithMethodNotAllowedHandler(errs.MethodNotAllowed),
		website.WithHealthChecks(),
	)

	return &testEnv{app: app, clock: clk, metrics: reg}
}

type reqOption func(*http.Request)

func header(name, value string) reqOption {
	return func(r *http.Request) { r.Header.Set(name, value) }
}

func remote(addr string) reqOption {
	return func(r *http.Request) { r.RemoteAddr = addr }
}

func (e *testEnv) do(method, target string, body io.Reader, opts ...reqOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

// failingService fails every call.
type failingService struct{ err error }

func (f failingService) Current(context.Context) (stats.Snapshot, bool, error) {
	return stats.Snapshot{}, false, f.err
}

func (f failingService) Update(context.Context, []byte) (stats.Snapshot, error) {
	return stats.Snapshot{}, f.err
}
