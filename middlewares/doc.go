// Package middlewares provides the HTTP middleware the site runs on.
//
// # Request ID
//
// RequestID reuses a sane X-Request-ID (or X-Correlation-ID) or
// generates a UUID. Pair it with RequestIDExtractor so every log line of
// the request carries request_id:
//
//	app := website.New(
//	    website.WithLogger("web", middlewares.RequestIDExtractor()),
//	    website.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover converts panics into *PanicError and Timeout puts a deadline
// on the request context, returning *TimeoutError when a handler ran out
// of time without responding. The error handler maps them to 500 and 503.
//
// # I18n
//
// I18n resolves the page language from ?lang, the lang cookie and
// Accept-Language, in that order, and stores a Translator for handlers
// and templates:
//
//	website.WithMiddleware(middlewares.I18n(translations))
//
// # API middleware
//
// CORS, RateLimit and Metrics guard and instrument the JSON API:
//
//	r.Route("/api", func(r website.Router) {
//	    r.Use(middlewares.CORS(), middlewares.RateLimit(limiter))
//	    r.GET("/love-stats", h.get)
//	})
//
// RateLimit answers 429 with Retry-After once a client exceeds the
// limiter window.
//
// # Access log
//
// AccessLog writes one structured line per request. 4xx responses log
// at warn level and 5xx at error level.
package middlewares
