package middlewares

import (
	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/pkg/i18n"
)

const (
	// DefaultLangCookie stores the visitor's language choice.
	DefaultLangCookie = "lang"
	// DefaultLangQuery switches language for one request and persists it.
	DefaultLangQuery = "lang"
	// DefaultLangCookieMaxAge keeps the choice for a year.
	DefaultLangCookieMaxAge = 365 * 24 * 60 * 60
)

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	FormatMap    map[string]*i18n.LocaleFormat
	CookieName   string
	QueryParam   string
	CookieMaxAge int
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nCookie sets the cookie name and lifetime in seconds.
func WithI18nCookie(name string, maxAge int) I18nOption {
	return func(cfg *I18nConfig) {
		if name != "" {
			cfg.CookieName = name
		}
		if maxAge > 0 {
			cfg.CookieMaxAge = maxAge
		}
	}
}

// WithI18nQueryParam sets the query parameter that switches language.
// An empty name disables query switching.
func WithI18nQueryParam(name string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.QueryParam = name
	}
}

// WithI18nFormatMap overrides the number/date format per language.
func WithI18nFormatMap(m map[string]*i18n.LocaleFormat) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.FormatMap = m
	}
}

// I18n resolves the page language and stores a Translator in the
// request context. Precedence: ?lang, the lang cookie, Accept-Language,
// then the default language. A supported ?lang value is persisted to the
// cookie so navigation keeps it.
func I18n(svc *i18n.I18n, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{
		CookieName:   DefaultLangCookie,
		QueryParam:   DefaultLangQuery,
		CookieMaxAge: DefaultLangCookieMaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	matcher := i18n.NewMatcher(svc.Languages())

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang := ""
			if cfg.QueryParam != "" {
				if q := c.Query(cfg.QueryParam); q != "" && svc.Supports(q) {
					lang = q
					c.SetCookie(cfg.CookieName, lang, cfg.CookieMaxAge)
				}
			}
			if lang == "" {
				if v, err := c.Cookie(cfg.CookieName); err == nil && svc.Supports(v) {
					lang = v
				}
			}
			if lang == "" {
				lang = matcher.Match(c.Header("Accept-Language"))
			}
			if lang == "" {
				lang = svc.DefaultLanguage()
			}

			format := cfg.FormatMap[lang]
			tr := i18n.NewTranslator(svc, lang, format)

			c.Set(internal.TranslatorKey{}, tr)
			c.Set(internal.LanguageKey{}, lang)

			h := c.Response().Header()
			h.Set("Content-Language", tr.HTMLLang())
			h.Add("Vary", "Accept-Language")
			h.Add("Vary", "Cookie")

			return next(c)
		}
	}
}

// GetTranslator returns the request Translator, or nil without I18n.
func GetTranslator(c internal.Context) *i18n.Translator {
	if v, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return v
	}
	return nil
}

// GetLanguage returns the resolved language, or "" without I18n.
func GetLanguage(c internal.Context) string {
	if v, ok := c.Get(internal.LanguageKey{}).(string); ok {
		return v
	}
	return ""
}
