package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("ratelimit: invalid config")

// Config defines a window: at most Limit requests per key within Window.
type Config struct {
	Limit  int           `env:"RATE_LIMIT_MAX" envDefault:"100" validate:"gt=0"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s" validate:"gt=0"`
}

// DefaultConfig allows 100 requests per client per minute.
func DefaultConfig() Config {
	return Config{Limit: 100, Window: time.Minute}
}

// Validate reports ErrInvalidConfig for non-positive values.
func (c Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Result is the outcome of a single Allow call.
type Result struct {
	// ResetAt is when the oldest recorded request leaves the window.
	ResetAt    time.Time
	RetryAfter time.Duration
	Limit      int
	Remaining  int
	Allowed    bool
}

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Option configures a limiter.
type Option func(*options)

type options struct {
	now    func() time.Time
	prefix string
}

func defaultOptions() *options {
	return &options{
		now:    time.Now,
		prefix: "ratelimit",
	}
}

// WithNow overrides the clock. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPrefix sets the Redis key prefix. Default "ratelimit". Keys are
// "{prefix}:{key}" and trailing colons on prefix are dropped.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = strings.TrimRight(prefix, ":")
	}
}

// retryAfter rounds up to whole seconds for the Retry-After header.
func retryAfter(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	return (d + time.Second - 1).Truncate(time.Second)
}
