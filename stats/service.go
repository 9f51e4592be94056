package stats

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mazhu/website/pkg/cache"
)

const snapshotKey = "love-stats"

// DefaultCacheTTL is how long readers may see a snapshot before it is
// reloaded from the store.
const DefaultCacheTTL = 5 * time.Minute

// Service reads the record through a cache and applies validated updates.
type Service struct {
	store  Store
	loader *cache.Loader[Snapshot]
	logger *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used to stamp updates.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service. c caches snapshots for ttl; pass a
// non-positive ttl to use DefaultCacheTTL.
func NewService(store Store, c cache.Cache[Snapshot], ttl time.Duration, opts ...ServiceOption) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	s := &Service{
		store:  store,
		loader: cache.NewLoader(c, ttl),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the latest snapshot. The boolean reports a cache hit.
func (s *Service) Current(ctx context.Context) (Snapshot, bool, error) {
	snap, hit, err := s.loader.Load(ctx, snapshotKey, s.load)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, hit, nil
}

// Update validates body and applies it. Validation failures are
// *ValidationError values and leave the record untouched.
func (s *Service) Update(ctx context.Context, body []byte) (Snapshot, error) {
	u, err := ParseUpdate(body)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Apply(ctx, u)
}

// Apply stores an already validated update and drops the cached snapshot.
func (s *Service) Apply(ctx context.Context, u Update) (Snapshot, error) {
	updated, err := s.store.Apply(ctx, u, s.now())
	if err != nil {
		return Snapshot{}, err
	}

	if err := s.loader.Invalidate(ctx, snapshotKey); err != nil {
		// Readers may see the previous snapshot until the TTL passes.
		s.logger.WarnContext(ctx, "failed to invalidate stats cache", slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "love stats updated",
		slog.Int64("donation", updated.Donation),
		slog.Int("categories_changed", len(u.BenefitCategories)),
		slog.Bool("donation_changed", u.Donation != nil),
		slog.Time("last_updated", updated.LastUpdated),
	)
	return updated.Snapshot(), nil
}

// Warm loads the snapshot into the cache ahead of readers.
func (s *Service) Warm(ctx context.Context) error {
	if err := s.loader.Invalidate(ctx, snapshotKey); err != nil && !errors.Is(err, cache.ErrNotFound) {
		return err
	}
	_, _, err := s.Current(ctx)
	return err
}

// CacheTTL returns how long snapshots stay cached.
func (s *Service) CacheTTL() time.Duration {
	return s.loader.TTL()
}

func (s *Service) load(ctx context.Context) (Snapshot, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return st.Snapshot(), nil
}
