package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/ratelimit"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
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

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, ratelimit.DefaultConfig().Validate())
	require.ErrorIs(t, ratelimit.Config{Limit: 0, Window: time.Second}.Validate(), ratelimit.ErrInvalidConfig)
	require.ErrorIs(t, ratelimit.Config{Limit: 1}.Validate(), ratelimit.ErrInvalidConfig)
}

func TestMemory_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		lim := ratelimit.NewMemory(ratelimit.Config{Limit: 3, Window: time.Minute}, ratelimit.WithNow(clk.Now))

		for i := range 3 {
			res, err := lim.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			require.True(t, res.Allowed, "request %d", i+1)
			require.Equal(t, 2-i, res.Remaining)
			require.Equal(t, 3, res.Limit)
		}

		res, err := lim.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.False(t, res.Allowed)
		require.Equal(t, 0, res.Remaining)
		require.Equal(t, time.Minute, res.RetryAfter)
	})

	t.Run("default limit is 100 per minute", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		lim := ratelimit.NewMemory(ratelimit.Config{}, ratelimit.WithNow(clk.Now))
		require.Equal(t, ratelimit.DefaultConfig(), lim.Config())

		for range 100 {
			res, err := lim.Allow(ctx, "client")
			require.NoError(t, err)
			require.True(t, res.Allowed)
		}
		res, err := lim.Allow(ctx, "client")
		require.NoError(t, err)
		require.False(t, res.Allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		lim := ratelimit.NewMemory(ratelimit.Config{Limit: 1, Window: time.Minute})

		res, err := lim.Allow(ctx, "a")
		require.NoError(t, err)
		require.True(t, res.Allowed)

		res, err = lim.Allow(ctx, "b")
		require.NoError(t, err)
		require.True(t, res.Allowed)

		res, err = lim.Allow(ctx, "a")
		require.NoError(t, err)
		require.False(t, res.Allowed)
	})

	t.Run("window slides as old requests expire", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		lim := ratelimit.NewMemory(ratelimit.Config{Limit: 2, Window: time.Minute}, ratelimit.WithNow(clk.Now))

		_, _ = lim.Allow(ctx, "k")
		clk.Advance(30 * time.Second)
		_, _ = lim.Allow(ctx, "k")

		res, _ := lim.Allow(ctx, "k")
		require.False(t, res.Allowed)
		require.Equal(t, 30*time.Second, res.RetryAfter)

		clk.Advance(30 * time.Second)
		res, _ = lim.Allow(ctx, "k")
		require.True(t, res.Allowed, "first request left the window")

		res, _ = lim.Allow(ctx, "k")
		require.False(t, res.Allowed)
	})

	t.Run("rejected requests are not recorded", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		lim := ratelimit.NewMemory(ratelimit.Config{Limit: 1, Window: 10 * time.Second}, ratelimit.WithNow(clk.Now))

		res, _ := lim.Allow(ctx, "k")
		require.True(t, res.Allowed)

		for range 5 {
			clk.Advance(time.Second)
			res, _ = lim.Allow(ctx, "k")
			require.False(t, res.Allowed)
		}

		clk.Advance(5 * time.Second)
		res, _ = lim.Allow(ctx, "k")
		require.True(t, res.Allowed)
	})

	t.Run("concurrent callers never exceed the limit", func(t *testing.T) {
		t.Parallel()

		lim := ratelimit.NewMemory(ratelimit.Config{Limit: 50, Window: time.Minute})

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for range 200 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := lim.Allow(ctx, "shared")
				assert.NoError(t, err)
				if res.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 50, allowed)
	})
}

func TestMemory_Sweep(t *testing.T) {
	t.Parallel()

	clk := newClock()
	lim := ratelimit.NewMemory(ratelimit.Config{Limit: 5, Window: time.Minute}, ratelimit.WithNow(clk.Now))
	ctx := context.Background()

	for i := range 3 {
		_, err := lim.Allow(ctx, fmt.Sprintf("10.0.0.%d", i))
		require.NoError(t, err)
	}
	clk.Advance(30 * time.Second)
	_, err := lim.Allow(ctx, "10.0.0.9")
	require.NoError(t, err)

	require.Equal(t, 4, lim.Keys())

	clk.Advance(31 * time.Second)
	require.Equal(t, 3, lim.Sweep())
	require.Equal(t, 1, lim.Keys())
}
