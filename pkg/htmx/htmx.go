package htmx

import "net/http"

// IsHTMX reports whether HTMX issued the request. History restores are
// excluded because they expect a full page.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true" &&
		r.Header.Get(HeaderHXHistoryRestoreRequest) != "true"
}

// IsBoosted reports whether the request came from an hx-boost link.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// Target returns the id of the element HTMX will swap into.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// CurrentURL returns the browser URL at the time of the request.
func CurrentURL(r *http.Request) string {
	return r.Header.Get(HeaderHXCurrentURL)
}
