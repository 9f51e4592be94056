// Package i18n provides translations, language negotiation and locale
// formatting for server-rendered pages.
//
// Translations are loaded once at startup, one file per language, and
// flattened to dotted keys:
//
//	svc, err := i18n.New(
//	    i18n.WithDefaultLanguage("zh"),
//	    i18n.WithJSONFiles(assets, "static/lang"),
//	    i18n.WithMissingKeyHandler(func(lang, key string) {
//	        log.Warn("missing translation", "lang", lang, "key", key)
//	    }),
//	)
//
//	svc.T("en", "nav.home")                         // "Home"
//	svc.T("en", "welcome", i18n.M{"name": "Ann"})   // "Welcome, Ann!"
//
// Lookups fall back from the requested language to its base language and
// then to the default language. When every step misses, the key itself is
// returned and the missing-key handler is invoked.
//
// # Negotiation
//
// [Matcher] resolves an Accept-Language header against the supported
// languages using golang.org/x/text/language.
//
// # Coverage
//
// Markup marks translatable elements with a data-i18n attribute.
// [ExtractKeys] scans rendered HTML for those keys, and
// [I18n.CheckCoverage] reports the keys a language lacks.
package i18n
