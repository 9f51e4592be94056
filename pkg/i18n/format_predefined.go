package i18n

// FormatZhTW returns a LocaleFormat for Traditional Chinese (Taiwan).
func FormatZhTW() *LocaleFormat {
	return NewLocaleFormat(
		WithDateFormat("2006年01月02日"),
		WithHTMLLang("zh-TW"),
	)
}

// FormatEn returns a LocaleFormat for English.
func FormatEn() *LocaleFormat {
	return NewLocaleFormat(
		WithDateFormat("Jan 2, 2006"),
		WithHTMLLang("en"),
	)
}

// FormatFor returns the predefined format for a language code,
// falling back to FormatEn.
func FormatFor(lang string) *LocaleFormat {
	switch baseLanguage(lang) {
	case "zh":
		return FormatZhTW()
	default:
		return FormatEn()
	}
}
