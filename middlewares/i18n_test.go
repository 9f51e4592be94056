package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/internal"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/i18n"
)

func newTranslations(t *testing.T) *i18n.I18n {
	t.Helper()
	inst, err := i18n.New(
		i18n.WithDefaultLanguage("zh"),
		i18n.WithTranslations("zh", map[string]any{"nav": map[string]any{"home": "首頁"}}),
		i18n.WithTranslations("en", map[string]any{"nav": map[string]any{"home": "Home"}}),
	)
	require.NoError(t, err)
	return inst
}

func langRoutes(r internal.Router) {
	r.GET("/", func(c internal.Context) error {
		return c.String(http.StatusOK, middlewares.GetLanguage(c)+"|"+c.T("nav.home")+"|"+c.HTMLLang())
	})
}

func TestI18n(t *testing.T) {
	t.Parallel()

	mw := middlewares.I18n(newTranslations(t))

	tests := []struct {
		name     string
		target   string
		cookie   string
		accept   string
		expected string
	}{
		{name: "default language", target: "/", expected: "zh|首頁|zh-TW"},
		{name: "accept-language", target: "/", accept: "en-US,en;q=0.9", expected: "en|Home|en"},
		{name: "cookie beats header", target: "/", cookie: "zh", accept: "en", expected: "zh|首頁|zh-TW"},
		{name: "query beats cookie", target: "/?lang=en", cookie: "zh", expected: "en|Home|en"},
		{name: "unsupported query ignored", target: "/?lang=fr", cookie: "en", expected: "en|Home|en"},
		{name: "unsupported cookie ignored", target: "/", cookie: "de", expected: "zh|首頁|zh-TW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			rec := serve(req, langRoutes, nil, mw)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, rec.Body.String())
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Language")
		})
	}

	t.Run("query choice persists to cookie", func(t *testing.T) {
		t.Parallel()
		rec := serve(httptest.NewRequest(http.MethodGet, "/?lang=en", nil), langRoutes, nil, mw)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "lang", cookies[0].Name)
		assert.Equal(t, "en", cookies[0].Value)
		assert.Equal(t, middlewares.DefaultLangCookieMaxAge, cookies[0].MaxAge)
		assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	})

	t.Run("no cookie without query", func(t *testing.T) {
		t.Parallel()
		rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), langRoutes, nil, mw)
		assert.Empty(t, rec.Result().Cookies())
		assert.Equal(t, "zh-TW", rec.Header().Get("Content-Language"))
	})

	t.Run("query switching can be disabled", func(t *testing.T) {
		t.Parallel()
		mw := middlewares.I18n(newTranslations(t), middlewares.WithI18nQueryParam(""))
		rec := serve(httptest.NewRequest(http.MethodGet, "/?lang=en", nil), langRoutes, nil, mw)
		assert.Equal(t, "zh|首頁|zh-TW", rec.Body.String())
	})
}

func TestGetTranslator(t *testing.T) {
	t.Parallel()

	var tr *i18n.Translator
	routes := func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			tr = middlewares.GetTranslator(c)
			return c.NoContent(http.StatusOK)
		})
	}

	serve(httptest.NewRequest(http.MethodGet, "/", nil), routes, nil)
	assert.Nil(t, tr)

	serve(httptest.NewRequest(http.MethodGet, "/?lang=en", nil), routes, nil, middlewares.I18n(newTranslations(t)))
	require.NotNil(t, tr)
	assert.Equal(t, "1,234", tr.FormatInt(1234))
}
