package i18n

import "time"

// Translator binds an I18n instance to one language and locale format.
type Translator struct {
	i18n     *I18n
	format   *LocaleFormat
	language string
}

// NewTranslator creates a Translator for language.
// An empty language selects the default language; a nil format selects
// the predefined format of the language.
func NewTranslator(i18n *I18n, language string, format *LocaleFormat) *Translator {
	if i18n == nil {
		panic("i18n: service is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	if format == nil {
		format = FormatFor(language)
	}
	return &Translator{
		i18n:     i18n,
		language: language,
		format:   format,
	}
}

// T translates key in the translator's language.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, key, placeholders...)
}

// FormatNumber formats a number with locale-specific separators.
func (t *Translator) FormatNumber(n float64) string {
	return t.format.FormatNumber(n)
}

// FormatInt formats an integer with locale-specific separators.
func (t *Translator) FormatInt(n int64) string {
	return t.format.FormatInt(n)
}

// FormatDate formats a date with locale-specific formatting.
func (t *Translator) FormatDate(date time.Time) string {
	return t.format.FormatDate(date)
}

// Language returns the translator's language code.
func (t *Translator) Language() string {
	return t.language
}

// HTMLLang returns the BCP 47 tag for <html lang>.
func (t *Translator) HTMLLang() string {
	return t.format.HTMLLang()
}

// Languages returns every language the underlying I18n supports.
func (t *Translator) Languages() []string {
	return t.i18n.Languages()
}

// Format returns the LocaleFormat used by this translator.
func (t *Translator) Format() *LocaleFormat {
	return t.format
}
