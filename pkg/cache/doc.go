// Package cache provides a small generic cache with in-memory and Redis
// backends, plus a read-through [Loader].
//
// The stats API keeps its aggregate snapshot in a cache for a fixed TTL
// and drops it whenever an update is written:
//
//	c := cache.NewMemory[Snapshot](cache.WithDefaultTTL(5 * time.Minute))
//	loader := cache.NewLoader[Snapshot](c, 5*time.Minute)
//
//	snap, hit, err := loader.Load(ctx, "current", store.Get)
//	...
//	_ = loader.Invalidate(ctx, "current")
//
// [Loader.Load] deduplicates concurrent misses with singleflight so a
// cold cache triggers a single backend read.
//
// Use [NewRedis] when several instances should share one cache. It takes
// a [github.com/redis/go-redis/v9.UniversalClient] from pkg/redis.
package cache
