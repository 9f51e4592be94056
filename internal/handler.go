package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Menu struct {
//	    catalog *content.Catalog
//	}
//
//	func (h *Menu) Routes(r website.Router) {
//	    r.GET("/menu", h.page)
//	    r.GET("/menu/sections/{id}", h.section)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handling middleware.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func NoStore(next website.HandlerFunc) website.HandlerFunc {
//	    return func(c website.Context) error {
//	        c.SetHeader("Cache-Control", "no-store")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
