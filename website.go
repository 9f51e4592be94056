package website

import (
	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/pkg/cookie"
	"github.com/mazhu/website/pkg/logger"
)

// Type aliases - public API
type (
	// App owns the router, global middleware and the server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is anything that renders HTML, such as a templ component.
	Component = internal.Component

	// HealthOption configures the probe endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor pulls a slog attribute from the request context.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// ResponseWriter records status and size of the response.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error with a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor reads a value from the first source that has one.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from the request.
	ExtractorSource = internal.ExtractorSource
)

// Context keys set by the i18n middleware.
type (
	TranslatorKey = internal.TranslatorKey
	LanguageKey   = internal.LanguageKey
)

// New creates an application. The App is immutable after creation.
//
// Example:
//
//	app := website.New(
//	    website.WithMiddleware(middlewares.RequestID(), middlewares.I18n(inst)),
//	    website.WithHandlers(handlers.NewPages(site), handlers.NewLoveStats(svc)),
//	)
//
//	err := app.Run(":8000", website.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Errors

// ErrBodyTooLarge is returned by Context.ReadBody when the limit is exceeded.
var ErrBodyTooLarge = internal.ErrBodyTooLarge

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

func ErrTooManyRequests(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrTooManyRequests(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

func WithTitle(title string) HTTPErrorOption    { return internal.WithTitle(title) }
func WithDetail(detail string) HTTPErrorOption  { return internal.WithDetail(detail) }
func WithErrorCode(code string) HTTPErrorOption { return internal.WithErrorCode(code) }
func WithRequestID(id string) HTTPErrorOption   { return internal.WithRequestID(id) }
func WithError(err error) HTTPErrorOption       { return internal.WithError(err) }
func IsHTTPError(err error) bool                { return internal.IsHTTPError(err) }
func AsHTTPError(err error) *HTTPError          { return internal.AsHTTPError(err) }

// Helpers

// ContextValue returns the value stored under key, or T's zero value.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter, zero on parse failure.
func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter, zero on parse failure.
func Query[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns defaultValue when the parameter is empty or invalid.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// Extractors

// NewExtractor tries sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }
func FromQuery(name string) ExtractorSource  { return internal.FromQuery(name) }
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }
func FromParam(name string) ExtractorSource  { return internal.FromParam(name) }
func FromForm(name string) ExtractorSource   { return internal.FromForm(name) }
func FromRealIP() ExtractorSource            { return internal.FromRealIP() }
