package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// MinLevel determines which log levels are stored in Sentry. Errors
	// always create issues.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes JSON to stdout and forwards
// to Sentry. With an empty DSN only stdout is used.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, FormatJSON, slog.LevelInfo, cfg, extractors...)
}

// Flush waits up to timeout for buffered Sentry events. Call it before
// the process exits.
func Flush(timeout time.Duration) bool {
	if sentry.CurrentHub().Client() == nil {
		return true
	}
	return sentry.Flush(timeout)
}

func newLogger(w io.Writer, format string, level slog.Level, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	base := newHandler(w, format, level)

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(base, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(base, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{base, sentryHandler}, extractors...))
}
