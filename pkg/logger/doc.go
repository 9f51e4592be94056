// Package logger builds the site's slog loggers.
//
// Loggers write JSON (or text) to stdout and optionally forward warnings
// and errors to Sentry. A ContextExtractor adds request-scoped attributes,
// such as the request ID, to every record logged with that context:
//
//	log, err := logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor())
//	if err != nil {
//		return err
//	}
//	defer logger.Flush(2 * time.Second)
//
// An empty SENTRY_DSN keeps logging on stdout only, so development and
// production share one code path.
package logger
