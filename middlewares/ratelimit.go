package middlewares

import (
	"math"
	"strconv"

	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/pkg/ratelimit"
)

// RateLimitOption configures RateLimit.
type RateLimitOption func(*rateLimitConfig)

type rateLimitConfig struct {
	key       internal.Extractor
	onLimited func(c internal.Context, res ratelimit.Result)
	message   string
	failOpen  bool
}

// WithRateLimitKey sets how the client key is extracted. Defaults to
// the client IP.
func WithRateLimitKey(ext internal.Extractor) RateLimitOption {
	return func(cfg *rateLimitConfig) {
		cfg.key = ext
	}
}

// WithRateLimitMessage sets the 429 message.
func WithRateLimitMessage(msg string) RateLimitOption {
	return func(cfg *rateLimitConfig) {
		if msg != "" {
			cfg.message = msg
		}
	}
}

// WithOnLimited registers a callback run for each rejected request.
func WithOnLimited(fn func(c internal.Context, res ratelimit.Result)) RateLimitOption {
	return func(cfg *rateLimitConfig) {
		cfg.onLimited = fn
	}
}

// WithRateLimitFailClosed rejects requests when the limiter errors.
// By default they pass through.
func WithRateLimitFailClosed() RateLimitOption {
	return func(cfg *rateLimitConfig) {
		cfg.failOpen = false
	}
}

// RateLimit rejects clients over the limiter's window with 429 and a
// Retry-After header in whole seconds.
func RateLimit(limiter ratelimit.Limiter, opts ...RateLimitOption) internal.Middleware {
	cfg := &rateLimitConfig{
		key:      internal.NewExtractor(internal.FromRealIP()),
		message:  "Rate limit exceeded",
		failOpen: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key, ok := cfg.key.Extract(c)
			if !ok {
				key = "unknown"
			}

			res, err := limiter.Allow(c.Context(), key)
			if err != nil {
				c.LogError("rate limiter failed", "error", err)
				if cfg.failOpen {
					return next(c)
				}
				return internal.ErrServiceUnavailable("Service temporarily unavailable", internal.WithError(err))
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if !res.ResetAt.IsZero() {
				h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			}

			if !res.Allowed {
				h.Set("Retry-After", strconv.Itoa(retryAfterSeconds(res)))
				c.LogWarn("rate limit exceeded", "key", key)
				if cfg.onLimited != nil {
					cfg.onLimited(c, res)
				}
				return internal.ErrTooManyRequests(cfg.message)
			}

			return next(c)
		}
	}
}

func retryAfterSeconds(res ratelimit.Result) int {
	secs := int(math.Ceil(res.RetryAfter.Seconds()))
	return max(secs, 1)
}
