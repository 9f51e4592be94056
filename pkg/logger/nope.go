package logger

import "log/slog"

// NewNope returns a logger that drops everything, for tests and tools
// that must stay quiet.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
