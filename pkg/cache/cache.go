package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value store with per-entry expiration.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's default TTL
//   - Negative: entry never expires
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Marshaler converts values for byte-oriented backends such as Redis.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// DefaultLoadTimeout bounds a shared load once it no longer follows the
// context of the caller that started it.
const DefaultLoadTimeout = 10 * time.Second

// Loader reads through a Cache, computing missing values once no matter
// how many goroutines ask for the same key at the same time.
type Loader[V any] struct {
	cache   Cache[V]
	ttl     time.Duration
	timeout time.Duration
	group   singleflight.Group

	mu  sync.Mutex
	gen map[string]uint64
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	timeout time.Duration
}

// WithLoadTimeout bounds each shared computation. Defaults to
// DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) LoaderOption {
	return func(o *loaderOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewLoader creates a Loader that stores computed values for ttl.
func NewLoader[V any](c Cache[V], ttl time.Duration, opts ...LoaderOption) *Loader[V] {
	o := loaderOptions{timeout: DefaultLoadTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[V]{cache: c, ttl: ttl, timeout: o.timeout, gen: make(map[string]uint64)}
}

// Load returns the cached value for key, or calls fn on a miss and caches
// its result. The boolean reports whether the value came from the cache.
// Errors from fn are returned as is and nothing is cached.
//
// fn runs detached from the caller's cancellation, bounded by the load
// timeout, so one abandoned request does not fail the others waiting on
// the same key. Each caller still returns when its own ctx ends. A value
// computed while Invalidate ran for key is returned but not cached.
func (l *Loader[V]) Load(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, bool, error) {
	var zero V
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, true, nil
	}

	ch := l.group.DoChan(key, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()

		gen := l.generation(key)
		val, err := fn(lctx)
		if err != nil {
			return nil, err
		}
		if l.generation(key) != gen {
			return val, nil
		}
		// A failed write only costs a recomputation on the next call.
		_ = l.cache.Set(lctx, key, val, l.ttl)
		if l.generation(key) != gen {
			_ = l.cache.Delete(lctx, key)
		}
		return val, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		return res.Val.(V), false, nil
	}
}

// Invalidate drops key so the next Load recomputes it. A load already in
// flight for key will not cache its result.
func (l *Loader[V]) Invalidate(ctx context.Context, key string) error {
	l.mu.Lock()
	l.gen[key]++
	l.mu.Unlock()

	l.group.Forget(key)
	return l.cache.Delete(ctx, key)
}

// TTL returns the expiration applied to computed values.
func (l *Loader[V]) TTL() time.Duration {
	return l.ttl
}

func (l *Loader[V]) generation(key string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen[key]
}
