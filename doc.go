// Package website is the HTTP runtime of the Mazhu MINI restaurant site.
//
// It is a thin layer over chi: handlers return errors, middleware wraps
// handlers, and one error handler turns errors into responses. The App is
// built once from options and is immutable afterwards.
//
// # Handlers
//
// Handlers implement [Handler] to declare routes:
//
//	type Pages struct{ site *handlers.Site }
//
//	func (h *Pages) Routes(r website.Router) {
//	    r.GET("/", h.home)
//	    r.GET("/menu", h.menu)
//	}
//
//	func (h *Pages) home(c website.Context) error {
//	    return c.Render(http.StatusOK, views.Page("home", data))
//	}
//
// # Errors
//
// A handler returns an [HTTPError] to choose the status and message:
//
//	return website.ErrBadRequest("No data provided")
//
// Any other error becomes a 500. The error handler set with
// [WithErrorHandler] decides whether the client sees JSON or an HTML page.
//
// # Running
//
//	app := website.New(
//	    website.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    website.WithHandlers(pages, api),
//	    website.WithHealthChecks(),
//	)
//	err := app.Run(":8000",
//	    website.Logger(log),
//	    website.ShutdownHook(db.Shutdown(pool)),
//	)
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and
// runs shutdown hooks in order.
package website
