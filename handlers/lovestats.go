package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/mazhu/website"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/metrics"
	"github.com/mazhu/website/pkg/ratelimit"
	"github.com/mazhu/website/stats"
)

// Route of the love statistics endpoint.
const loveStatsRoute = "/api/love-stats"

// maxStatsBody bounds POST bodies; a full update is a few hundred bytes.
const maxStatsBody = 64 << 10

// StatsService reads and updates the love statistics.
type StatsService interface {
	StatsReader
	Update(ctx context.Context, body []byte) (stats.Snapshot, error)
}

// LoveStatsOption configures LoveStats.
type LoveStatsOption func(*LoveStats)

// WithRateLimiter limits both methods per client IP.
func WithRateLimiter(l ratelimit.Limiter) LoveStatsOption {
	return func(h *LoveStats) {
		h.limiter = l
	}
}

// WithCORS configures cross-origin access to the API.
func WithCORS(opts ...middlewares.CORSOption) LoveStatsOption {
	return func(h *LoveStats) {
		h.cors = append(h.cors, opts...)
	}
}

// WithMetrics records cache hits, updates and rejections on reg.
func WithMetrics(reg *metrics.Registry) LoveStatsOption {
	return func(h *LoveStats) {
		h.metrics = reg
	}
}

// LoveStats serves GET and POST /api/love-stats.
type LoveStats struct {
	svc     StatsService
	limiter ratelimit.Limiter
	metrics *metrics.Registry
	cors    []middlewares.CORSOption
}

// NewLoveStats creates the API handler.
func NewLoveStats(svc StatsService, opts ...LoveStatsOption) *LoveStats {
	h := &LoveStats{svc: svc}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements website.Handler.
func (h *LoveStats) Routes(r website.Router) {
	r.Route("/api", func(r website.Router) {
		r.Use(middlewares.CORS(h.cors...))
		if h.limiter != nil {
			r.Use(middlewares.RateLimit(h.limiter, middlewares.WithOnLimited(h.limited)))
		}
		r.GET("/love-stats", h.get)
		r.POST("/love-stats", h.post)
		r.OPTIONS("/love-stats", h.preflight)
	})
}

func (h *LoveStats) get(c website.Context) error {
	snap, hit, err := h.svc.Current(c.Context())
	if err != nil {
		return website.ErrInternal("Internal server error", website.WithError(err))
	}
	if h.metrics != nil {
		h.metrics.Cache.Observe(hit)
	}

	c.SetHeader("Cache-Control", "public, max-age=300")
	return c.JSON(http.StatusOK, snap)
}

func (h *LoveStats) post(c website.Context) error {
	mediaType, _, err := mime.ParseMediaType(c.Header("Content-Type"))
	if err != nil || !isJSONMediaType(mediaType) {
		h.record(metrics.ResultInvalid)
		return website.ErrBadRequest("Content-Type must be application/json")
	}

	body, err := c.ReadBody(maxStatsBody)
	if errors.Is(err, website.ErrBodyTooLarge) {
		h.record(metrics.ResultInvalid)
		return website.NewHTTPError(http.StatusRequestEntityTooLarge, "Request body too large")
	}
	if err != nil {
		h.record(metrics.ResultInvalid)
		return website.ErrBadRequest("Invalid JSON body", website.WithError(err))
	}

	snap, err := h.svc.Update(c.Context(), body)
	var verr *stats.ValidationError
	switch {
	case errors.As(err, &verr):
		h.record(metrics.ResultInvalid)
		c.LogInfo("love stats update rejected", "reason", verr.Message)
		return website.ErrBadRequest(verr.Message, website.WithError(err))
	case err != nil:
		h.record(metrics.ResultError)
		return website.ErrInternal("Internal server error", website.WithError(err))
	}

	h.record(metrics.ResultOK)
	c.LogDebug("love stats update accepted", "ip", c.RealIP(), "last_updated", snap.LastUpdated)
	return c.JSON(http.StatusOK, map[string]string{"message": "Stats updated successfully"})
}

// preflight is reached only when CORS lets a plain OPTIONS through.
func (h *LoveStats) preflight(c website.Context) error {
	c.SetHeader("Allow", "GET, POST, OPTIONS")
	return c.NoContent(http.StatusNoContent)
}

func (h *LoveStats) limited(website.Context, ratelimit.Result) {
	if h.metrics != nil {
		h.metrics.RateLimit.Rejected.WithLabelValues(loveStatsRoute).Inc()
	}
}

func (h *LoveStats) record(result string) {
	if h.metrics != nil {
		h.metrics.Stats.Updates.WithLabelValues(result).Inc()
	}
}

// isJSONMediaType accepts application/json and structured-syntax suffixes
// such as application/merge-patch+json.
func isJSONMediaType(mt string) bool {
	if mt == "application/json" {
		return true
	}
	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}
