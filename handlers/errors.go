package handlers

import (
	"net/http"
	"strings"

	"github.com/mazhu/website"
	"github.com/mazhu/website/content"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/views"
)

// Errors renders failures as JSON under /api/ and as localized HTML
// pages elsewhere.
type Errors struct {
	site *Site
}

// NewErrors creates the error renderer.
func NewErrors(site *Site) *Errors {
	return &Errors{site: site}
}

// Handle implements website.ErrorHandler.
func (e *Errors) Handle(c website.Context, err error) error {
	code, message := classify(err)

	switch {
	case code >= http.StatusInternalServerError:
		c.LogError("request failed", "error", err, "status", code)
	case code != http.StatusNotFound:
		c.LogDebug("request rejected", "error", err, "status", code)
	}

	return e.render(c, code, message)
}

// NotFound implements the router's 404 handler.
func (e *Errors) NotFound(c website.Context) error {
	return e.render(c, http.StatusNotFound, "Not found")
}

// MethodNotAllowed implements the router's 405 handler.
func (e *Errors) MethodNotAllowed(c website.Context) error {
	return e.render(c, http.StatusMethodNotAllowed, "Method not allowed")
}

func (e *Errors) render(c website.Context, code int, message string) error {
	if isAPI(c) {
		return c.JSON(code, map[string]string{"error": message})
	}

	titleKey, textKey := errorKeys(code)
	base := e.site.base(c, content.PageHome)
	base.Title = title(base.T(titleKey), base.SiteName)
	base.Meta.Robots = "noindex"

	return c.Render(code, e.site.Views.Page("error", views.ErrorData{
		Base:     base,
		Status:   code,
		TitleKey: titleKey,
		TextKey:  textKey,
	}))
}

// classify maps err to a status and the message clients may see.
func classify(err error) (int, string) {
	if middlewares.IsTimeoutError(err) {
		return http.StatusServiceUnavailable, "Service unavailable"
	}
	if httpErr := website.AsHTTPError(err); httpErr != nil {
		code := httpErr.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		msg := httpErr.Message
		if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
			msg = "Internal server error"
		}
		return code, msg
	}
	return http.StatusInternalServerError, "Internal server error"
}

func isAPI(c website.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func errorKeys(code int) (string, string) {
	var name string
	switch code {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		name = "bad_request"
	case http.StatusNotFound:
		name = "not_found"
	case http.StatusMethodNotAllowed:
		name = "method"
	case http.StatusTooManyRequests:
		name = "too_many"
	case http.StatusServiceUnavailable:
		name = "unavailable"
	default:
		if code < http.StatusInternalServerError {
			name = "bad_request"
		} else {
			name = "internal"
		}
	}
	return "error." + name + ".title", "error." + name + ".text"
}
