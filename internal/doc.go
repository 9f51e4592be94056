// Package internal holds the HTTP runtime behind package website.
//
// Import "github.com/mazhu/website" instead; it re-exports this API.
//
// # Core Types
//
//   - App: router, global middleware, probes and graceful shutdown
//   - Context: request/response helpers, i18n and logging
//   - Router: route declaration with per-route middleware and groups
//   - Handler: anything that declares routes
//   - HandlerFunc: a route handler returning an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers
//
// # Context as context.Context
//
// Context embeds context.Context, so handlers pass it straight to stores
// and caches:
//
//	func (h *LoveStats) get(c website.Context) error {
//	    snap, _, err := h.svc.Current(c)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, snap)
//	}
//
// # Error Handling
//
// Handlers return errors instead of writing them. The App passes them to
// the configured ErrorHandler unless the response has already started.
// HTTPError carries the status and the user-facing message:
//
//	return website.ErrTooManyRequests("Rate limit exceeded")
//
// # HTMX
//
// Requests with HX-Request get their 4xx/5xx statuses rewritten to 200 by
// ResponseWriter so the error fragment is swapped in. Status() still
// reports the original code for logs and metrics.
//
// # Lifecycle
//
// Run binds the listener, runs startup hooks, serves until SIGINT/SIGTERM
// or until the WithContext context is cancelled, then shuts the server
// down and runs shutdown hooks within ShutdownTimeout.
package internal
