package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one request-scoped attribute, such as the
// request ID, out of ctx.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds extracted attributes to each record at Handle
// time, when the request context is known.
type contextHandler struct {
	slog.Handler
	extract []ContextExtractor
}

// NewContextHandler wraps next so every record carries the attributes
// the extractors find in the logging context. Nil extractors are skipped.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var extract []ContextExtractor
	for _, fn := range extractors {
		if fn != nil {
			extract = append(extract, fn)
		}
	}
	if len(extract) == 0 {
		return next
	}
	return contextHandler{Handler: next, extract: extract}
}

func (h contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, fn := range h.extract {
		if attr, ok := fn(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs), extract: h.extract}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name), extract: h.extract}
}
