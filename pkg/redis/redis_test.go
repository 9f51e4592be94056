package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()
		_, err := Config{}.Options()
		require.ErrorIs(t, err, ErrNoURL)
		require.False(t, Config{}.Enabled())
	})

	t.Run("invalid scheme", func(t *testing.T) {
		t.Parallel()
		for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgresql://localhost:6379"} {
			_, err := Config{URL: url}.Options()
			require.ErrorIs(t, err, ErrInvalidURL, url)
		}
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()
		_, err := Config{URL: "redis://localhost:6379/notanumber"}.Options()
		require.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("applies settings", func(t *testing.T) {
		t.Parallel()
		cfg := Config{
			URL:          "rediss://:secret@cache.internal:6380/2",
			PoolSize:     20,
			MinIdleConns: 3,
			ReadTimeout:  time.Second,
		}
		opts, err := cfg.Options()
		require.NoError(t, err)
		require.Equal(t, "cache.internal:6380", opts.Addr)
		require.Equal(t, 2, opts.DB)
		require.Equal(t, "secret", opts.Password)
		require.NotNil(t, opts.TLSConfig)
		require.Equal(t, 20, opts.PoolSize)
		require.Equal(t, 3, opts.MinIdleConns)
		require.Equal(t, time.Second, opts.ReadTimeout)
	})
}

func TestConnect_CancelledDuringRetry(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, Config{
		URL:           "redis://127.0.0.1:1/0",
		DialTimeout:   50 * time.Millisecond,
		RetryAttempts: 3,
		RetryInterval: time.Minute,
	})
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("nil client", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrUnhealthy)
	})

	t.Run("ping ok", func(t *testing.T) {
		t.Parallel()
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("PONG")

		require.NoError(t, Healthcheck(client)(context.Background()))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping fails", func(t *testing.T) {
		t.Parallel()
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("connection refused"))

		err := Healthcheck(client)(context.Background())
		require.ErrorIs(t, err, ErrUnhealthy)
	})
}

type mockCloser struct {
	err    error
	closed bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	closer := &mockCloser{err: errors.New("close error")}
	err := Shutdown(closer)(context.Background())
	require.EqualError(t, err, "close error")
	require.True(t, closer.closed)
}

func TestWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, wait(ctx, 10*time.Second), context.Canceled)
	require.NoError(t, wait(context.Background(), time.Millisecond))
}
