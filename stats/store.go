package stats

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by a store that holds no record yet.
var ErrNotFound = errors.New("stats: record not found")

// Store persists the single stats record. Apply must be atomic: concurrent
// updates never interleave and a failed update leaves the record unchanged.
type Store interface {
	Load(ctx context.Context) (Stats, error)
	Apply(ctx context.Context, u Update, at time.Time) (Stats, error)
}

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	stats Stats
	mu    sync.RWMutex
}

// NewMemoryStore creates a store holding initial.
func NewMemoryStore(initial Stats) *MemoryStore {
	return &MemoryStore{stats: initial.Clone()}
}

// Load returns a copy of the record.
func (m *MemoryStore) Load(context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.Clone(), nil
}

// Apply replaces the record with u applied to it.
func (m *MemoryStore) Apply(_ context.Context, u Update, at time.Time) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = u.ApplyTo(m.stats, at)
	return m.stats.Clone(), nil
}

var _ Store = (*MemoryStore)(nil)
