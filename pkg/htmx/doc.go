// Package htmx detects HTMX requests and sets HTMX response headers.
//
// The menu page swaps sections without a reload:
//
//	if htmx.IsHTMX(r) {
//		cfg := htmx.NewConfig(
//			htmx.WithPushURL("/menu#broth"),
//			htmx.WithTriggerDetail("menu:section", map[string]string{"id": "broth"}),
//		)
//		cfg.ApplyHeaders(w)
//	}
//
// Triggers without details are sent as a comma list. As soon as one event
// carries a detail the header switches to the JSON object form HTMX
// expects.
package htmx
