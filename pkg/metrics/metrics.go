package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mazhu"

// Registry owns a private prometheus registry and the site's collectors.
type Registry struct {
	reg       *prometheus.Registry
	HTTP      *HTTPMetrics
	Cache     *CacheMetrics
	Stats     *StatsMetrics
	RateLimit *RateLimitMetrics
}

// New creates a Registry with Go runtime and process collectors.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:       reg,
		HTTP:      NewHTTPMetrics(reg),
		Cache:     NewCacheMetrics(reg),
		Stats:     NewStatsMetrics(reg),
		RateLimit: NewRateLimitMetrics(reg),
	}
}

// Gatherer exposes the registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// HTTPMetrics tracks request counts, latency and concurrency.
type HTTPMetrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	InFlight        prometheus.Gauge
}

// NewHTTPMetrics creates and registers HTTP metrics on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of HTTP requests currently being processed.",
		}),
	}

	reg.MustRegister(m.RequestDuration, m.RequestsTotal, m.InFlight)
	return m
}

// CacheMetrics tracks stats snapshot cache behaviour.
type CacheMetrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Invalidations prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics on reg.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats_cache",
			Name:      "hits_total",
			Help:      "Total number of love stats cache hits.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats_cache",
			Name:      "misses_total",
			Help:      "Total number of love stats cache misses.",
		}),
		Invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats_cache",
			Name:      "invalidations_total",
			Help:      "Total number of love stats cache invalidations.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Invalidations)
	return m
}

// Observe records one cache lookup.
func (m *CacheMetrics) Observe(hit bool) {
	if hit {
		m.Hits.Inc()
		return
	}
	m.Misses.Inc()
}

// StatsMetrics tracks admin updates by outcome.
type StatsMetrics struct {
	Updates *prometheus.CounterVec
}

// Update outcomes.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// NewStatsMetrics creates and registers stats metrics on reg.
func NewStatsMetrics(reg prometheus.Registerer) *StatsMetrics {
	m := &StatsMetrics{
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "love_stats",
			Name:      "updates_total",
			Help:      "Total number of love stats updates, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.Updates)
	return m
}

// RateLimitMetrics counts rejected requests.
type RateLimitMetrics struct {
	Rejected *prometheus.CounterVec
}

// NewRateLimitMetrics creates and registers limiter metrics on reg.
func NewRateLimitMetrics(reg prometheus.Registerer) *RateLimitMetrics {
	m := &RateLimitMetrics{
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "rejected_total",
			Help:      "Total number of requests rejected by the rate limiter.",
		}, []string{"route"}),
	}

	reg.MustRegister(m.Rejected)
	return m
}
