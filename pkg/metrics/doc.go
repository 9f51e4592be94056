// Package metrics defines the site's Prometheus collectors on a private
// registry, served at /metrics:
//
//	reg := metrics.New()
//	app := website.New(
//	    website.WithMiddleware(middlewares.Metrics(reg.HTTP)),
//	    website.WithHandlers(handlers.NewMetrics(reg)),
//	)
package metrics
