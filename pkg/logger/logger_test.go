package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/logger"
)

type ctxKey struct{}

func tenantExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("store", v), true
	}
	return slog.Attr{}, false
}

func TestContextHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), tenantExtractor, nil))

	ctx := context.WithValue(context.Background(), ctxKey{}, "taipei")
	log.With("component", "web").InfoContext(ctx, "hello")
	assert.Contains(t, buf.String(), `"store":"taipei"`)
	assert.Contains(t, buf.String(), `"component":"web"`)

	buf.Reset()
	log.WithGroup("g").InfoContext(context.Background(), "plain", "k", "v")
	assert.NotContains(t, buf.String(), "store")
	assert.Contains(t, buf.String(), `"g":{"k":"v"}`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected slog.Level
	}{
		{in: "", expected: slog.LevelInfo},
		{in: "debug", expected: slog.LevelDebug},
		{in: "INFO", expected: slog.LevelInfo},
		{in: "warning", expected: slog.LevelWarn},
		{in: " error ", expected: slog.LevelError},
	}
	for _, tt := range tests {
		level, err := logger.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, level, tt.in)
	}

	_, err := logger.ParseLevel("loud")
	require.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	log, err := logger.FromConfig(logger.Config{Level: "warn", Format: logger.FormatText})
	require.NoError(t, err)
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))

	_, err = logger.FromConfig(logger.Config{Level: "verbose"})
	require.Error(t, err)

	assert.True(t, logger.Flush(0))
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() { logger.NewNope().Error("discarded") })
}
