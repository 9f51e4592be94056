package internal

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mazhu/website/pkg/cookie"
	"github.com/mazhu/website/pkg/htmx"
	"github.com/mazhu/website/pkg/i18n"
)

// TranslatorKey is the context key for the request's *i18n.Translator.
type TranslatorKey struct{}

// LanguageKey is the context key for the resolved language code.
type LanguageKey struct{}

// Component is anything renderable; templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the wrapped http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// SetContext replaces the request context, e.g. to add a deadline.
	SetContext(ctx context.Context)

	// Param returns a URL parameter, or "".
	Param(name string) string

	// Query returns a query parameter, or "".
	Query(name string) string

	// QueryDefault returns a query parameter or defaultValue when empty.
	QueryDefault(name, defaultValue string) string

	// Form returns a form value, parsing the body on first access.
	Form(name string) string

	// Header returns a request header.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// RealIP returns the client address used for rate limiting and logs.
	RealIP() string

	// ReadBody reads at most limit bytes of the request body.
	// Larger bodies fail with ErrBodyTooLarge.
	ReadBody(limit int64) ([]byte, error)

	// JSON writes v as JSON with the given status.
	JSON(code int, v any) error

	// XML writes v as XML, prefixed with the standard header.
	XML(code int, v any) error

	// Blob writes raw bytes with an explicit content type.
	Blob(code int, contentType string, b []byte) error

	// String writes a plain text response.
	String(code int, s string) error

	// NoContent writes only the status.
	NoContent(code int) error

	// Redirect redirects regular and HTMX requests alike.
	Redirect(code int, url string) error

	// Error builds an HTTPError without writing anything.
	// Return it from the handler to reach the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX reports whether HTMX issued the request.
	IsHTMX() bool

	// Render writes a component as HTML. HTMX options only apply to HTMX
	// requests.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for HTMX requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Written reports whether the response has started.
	Written() bool

	// Logger returns the application logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get reads a value from the request context, or nil.
	Get(key any) any

	// Cookie returns a plain cookie value or cookie.ErrNotFound.
	Cookie(name string) (string, error)

	// SetCookie writes a plain cookie living maxAge seconds.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie expires a cookie.
	DeleteCookie(name string)

	// ResponseWriter exposes status and size for logging and metrics.
	ResponseWriter() *ResponseWriter

	// Translator returns the request translator, or nil outside the I18n
	// middleware.
	Translator() *i18n.Translator

	// T translates key, returning key itself without a translator.
	T(key string, placeholders ...i18n.M) string

	// Language returns the resolved language code, or "".
	Language() string

	// HTMLLang returns the value for <html lang>, "zh-TW" or "en".
	HTMLLang() string

	// FormatInt groups digits the way the current locale does.
	FormatInt(n int64) string

	// FormatNumber formats a float with locale separators.
	FormatNumber(n float64) string

	// FormatDate formats a date in the locale's long form.
	FormatDate(date time.Time) string
}

type requestContext struct {
	request        *http.Request
	response       http.ResponseWriter
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	trustProxy     bool
}

// newContext wraps w unless an outer middleware already did, so every
// layer shares one ResponseWriter.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
		trustProxy:     app.trustProxy,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) RealIP() string {
	return clientIP(c.request, c.trustProxy)
}

func (c *requestContext) ReadBody(limit int64) ([]byte, error) {
	if c.request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(c.request.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) XML(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/xml; charset=utf-8")
	c.response.WriteHeader(code)
	if _, err := io.WriteString(c.response, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(c.response)
	enc.Indent("", "  ")
	return enc.Encode(v)
}

func (c *requestContext) Blob(code int, contentType string, b []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(b)
	return err
}

func (c *requestContext) String(code int, s string) error {
	return c.Blob(code, "text/plain; charset=utf-8", []byte(s))
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.RedirectWithStatus(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")

	var cfg *htmx.Config
	if len(opts) > 0 && htmx.IsHTMX(c.request) {
		cfg = htmx.NewConfig(opts...)
		cfg.ApplyHeaders(c.response)
	}

	c.response.WriteHeader(code)

	if err := component.Render(c.request.Context(), c.response); err != nil {
		return err
	}

	if cfg != nil {
		for _, oob := range cfg.OOBComponents {
			if err := oob.Render(c.request.Context(), c.response); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if htmx.IsHTMX(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Translator() *i18n.Translator {
	if tr, ok := c.Get(TranslatorKey{}).(*i18n.Translator); ok {
		return tr
	}
	return nil
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.Translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if tr := c.Translator(); tr != nil {
		return tr.Language()
	}
	if lang, ok := c.Get(LanguageKey{}).(string); ok {
		return lang
	}
	return ""
}

func (c *requestContext) HTMLLang() string {
	if tr := c.Translator(); tr != nil {
		return tr.HTMLLang()
	}
	return i18n.FormatFor(c.Language()).HTMLLang()
}

func (c *requestContext) FormatInt(n int64) string {
	if tr := c.Translator(); tr != nil {
		return tr.FormatInt(n)
	}
	return strconv.FormatInt(n, 10)
}

func (c *requestContext) FormatNumber(n float64) string {
	if tr := c.Translator(); tr != nil {
		return tr.FormatNumber(n)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (c *requestContext) FormatDate(date time.Time) string {
	if tr := c.Translator(); tr != nil {
		return tr.FormatDate(date)
	}
	return date.Format(time.DateOnly)
}

// clientIP prefers the left-most valid X-Forwarded-For entry, then
// X-Real-IP, when trustProxy is set. RemoteAddr is the fallback.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
				return addr.Unmap().String()
			}
		}
		if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
			if addr, err := netip.ParseAddr(xr); err == nil {
				return addr.Unmap().String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}
	if host == "" {
		return "unknown"
	}
	return host
}
