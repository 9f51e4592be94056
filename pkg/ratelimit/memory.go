package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process sliding-window limiter.
type Memory struct {
	windows map[string][]time.Time
	opts    *options
	cfg     Config
	mu      sync.Mutex
}

// NewMemory creates an in-memory limiter. Invalid configs fall back to
// DefaultConfig values field by field.
func NewMemory(cfg Config, opts ...Option) *Memory {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	def := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	return &Memory{
		windows: make(map[string][]time.Time),
		opts:    o,
		cfg:     cfg,
	}
}

// Allow records the request when the key's window has room.
func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	now := m.opts.now()
	cutoff := now.Add(-m.cfg.Window)

	m.mu.Lock()
	defer m.mu.Unlock()

	hits := prune(m.windows[key], cutoff)

	res := Result{Limit: m.cfg.Limit}
	if len(hits) >= m.cfg.Limit {
		m.windows[key] = hits
		res.ResetAt = hits[0].Add(m.cfg.Window)
		res.RetryAfter = retryAfter(res.ResetAt.Sub(now))
		return res, nil
	}

	hits = append(hits, now)
	m.windows[key] = hits

	res.Allowed = true
	res.Remaining = m.cfg.Limit - len(hits)
	res.ResetAt = hits[0].Add(m.cfg.Window)
	return res, nil
}

// Sweep forgets keys whose windows are empty and returns how many it dropped.
func (m *Memory) Sweep() int {
	cutoff := m.opts.now().Add(-m.cfg.Window)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, hits := range m.windows {
		hits = prune(hits, cutoff)
		if len(hits) == 0 {
			delete(m.windows, key)
			removed++
			continue
		}
		m.windows[key] = hits
	}
	return removed
}

// Keys returns the number of tracked keys.
func (m *Memory) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// Config returns the window settings in effect.
func (m *Memory) Config() Config {
	return m.cfg
}

// prune drops timestamps at or before cutoff. hits is sorted ascending.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0:0], hits[i:]...)
}

var _ Limiter = (*Memory)(nil)
