package i18n

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// DefaultLang is the language used when no default language is specified.
const DefaultLang = "zh"

// I18n holds the translations of every supported language.
// It is immutable after creation, making it safe for concurrent use.
type I18n struct {
	// Flattened translations map for O(1) lookups.
	// Key format: "lang:key.path"
	translations map[string]string

	// Key sets per language, used by coverage checks.
	keys map[string]map[string]struct{}

	// Optional handler called when a translation key is not found in the
	// requested language nor in the default language.
	missingKeyHandler func(lang, key string)

	defaultLang string
	requested   []string
	languages   []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		keys:         make(map[string]map[string]struct{}),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	i.languages = i.buildLanguagesList()

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages fixes the list of supported languages.
// The default language is always placed first; the others are sorted.
// Without this option the list is derived from the loaded translations.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		i.requested = append(i.requested, langs...)
		return nil
	}
}

// WithTranslations loads translations for a single language.
// Nested maps are flattened to dotted keys.
func WithTranslations(lang string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.add(lang, flattenTranslations(translations, ""))
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is missing
// from both the requested and the default language.
func WithMissingKeyHandler(handler func(lang, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T returns the translation of key in lang with placeholders replaced.
// Lookup order: lang, its base language ("en" for "en-US"), the default
// language. The key itself is returned when no translation exists.
func (i *I18n) T(lang, key string, placeholders ...M) string {
	if translation, ok := i.lookup(lang, key); ok {
		return replacePlaceholdersWithMerge(translation, placeholders...)
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, key)
	}

	return key
}

// Has reports whether key is translated in lang itself, without fallback.
func (i *I18n) Has(lang, key string) bool {
	_, ok := i.translations[buildKey(lang, key)]
	return ok
}

// Keys returns the sorted translation keys defined for lang.
func (i *I18n) Keys(lang string) []string {
	keys := slices.Collect(maps.Keys(i.keys[lang]))
	sort.Strings(keys)
	return keys
}

// Messages returns the flattened translations of lang, ready to be served
// to the browser as a JSON dictionary.
func (i *I18n) Messages(lang string) map[string]string {
	out := make(map[string]string, len(i.keys[lang]))
	for key := range i.keys[lang] {
		out[key] = i.translations[buildKey(lang, key)]
	}
	return out
}

// Languages returns the list of available languages, default first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the default/fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Supports reports whether lang is one of the available languages.
func (i *I18n) Supports(lang string) bool {
	return slices.Contains(i.languages, lang)
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	if translation, ok := i.translations[buildKey(lang, key)]; ok {
		return translation, true
	}

	if base := baseLanguage(lang); base != lang {
		if translation, ok := i.translations[buildKey(base, key)]; ok {
			return translation, true
		}
	}

	if lang != i.defaultLang && baseLanguage(lang) != i.defaultLang {
		if translation, ok := i.translations[buildKey(i.defaultLang, key)]; ok {
			return translation, true
		}
	}

	return "", false
}

func (i *I18n) add(lang string, flat map[string]string) {
	set, ok := i.keys[lang]
	if !ok {
		set = make(map[string]struct{}, len(flat))
		i.keys[lang] = set
	}
	for key, value := range flat {
		i.translations[buildKey(lang, key)] = value
		set[key] = struct{}{}
	}
}

func (i *I18n) buildLanguagesList() []string {
	set := make(map[string]struct{})
	if len(i.requested) > 0 {
		for _, lang := range i.requested {
			set[lang] = struct{}{}
		}
	} else {
		for lang := range i.keys {
			set[lang] = struct{}{}
		}
	}
	delete(set, "")
	delete(set, i.defaultLang)

	others := slices.Collect(maps.Keys(set))
	sort.Strings(others)
	return append([]string{i.defaultLang}, others...)
}

func buildKey(lang, key string) string {
	return lang + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region from a language tag ("en-US" to "en").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
