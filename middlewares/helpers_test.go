package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/mazhu/website/internal"
)

type handlerFunc func(r internal.Router)

func (f handlerFunc) Routes(r internal.Router) { f(r) }

// serve builds an App with global middleware mw and routes, then serves req.
func serve(req *http.Request, routes func(r internal.Router), opts []internal.Option, mw ...internal.Middleware) *httptest.ResponseRecorder {
	opts = append(opts,
		internal.WithMiddleware(mw...),
		internal.WithHandlers(handlerFunc(routes)),
	)
	app := internal.New(opts...)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func okRoute(r internal.Router) {
	r.GET("/", func(c internal.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}
