package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/scheduler"
)

func noop(context.Context) error { return nil }

func TestScheduler_Add(t *testing.T) {
	t.Parallel()

	s := scheduler.New()

	require.NoError(t, s.Add("sweep", "@every 5m", noop))
	require.NoError(t, s.Add("warm", "*/10 * * * *", noop))
	assert.Equal(t, 2, s.Tasks())

	require.ErrorIs(t, s.Add("", "@daily", noop), scheduler.ErrEmptyName)
	require.ErrorIs(t, s.Add("sweep", "@daily", noop), scheduler.ErrDuplicateName)
	require.ErrorIs(t, s.Add("broken", "not a cron", noop), scheduler.ErrInvalidSpec)
	assert.Equal(t, 2, s.Tasks())

	_, ok := s.Next("missing")
	assert.False(t, ok)
}

func TestScheduler_Runs(t *testing.T) {
	t.Parallel()

	s := scheduler.New(scheduler.WithTaskTimeout(time.Second), scheduler.WithLocation(time.UTC))

	var runs atomic.Int32
	require.NoError(t, s.Add("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}))
	require.NoError(t, s.Add("failing", "@every 1s", func(context.Context) error {
		return errors.New("boom")
	}))
	require.NoError(t, s.Add("panicking", "@every 1s", func(context.Context) error {
		panic("boom")
	}))

	require.NoError(t, s.StartFunc()(context.Background()))

	next, ok := s.Next("tick")
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), next, 2*time.Second)

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.StopFunc()(ctx))
}

func TestScheduler_StopCancelsTasks(t *testing.T) {
	t.Parallel()

	s := scheduler.New()

	started := make(chan struct{}, 1)
	var cancelled atomic.Bool
	require.NoError(t, s.Add("long", "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("task did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.True(t, cancelled.Load())
}
