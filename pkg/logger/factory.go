package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects level, format and optional Sentry forwarding.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
	Sentry SentryConfig
}

// New creates a JSON logger at info level writing to stdout.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(newHandler(os.Stdout, FormatJSON, slog.LevelInfo), extractors...))
}

// FromConfig builds the application logger. Sentry is enabled when
// cfg.Sentry.DSN is set.
func FromConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return newLogger(os.Stdout, cfg.Format, level, cfg.Sentry, extractors...), nil
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty
// means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
