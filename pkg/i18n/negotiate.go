package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents oversized Accept-Language headers from
// reaching the parser.
const maxAcceptLanguageLength = 4096

// Matcher picks the best supported language for an Accept-Language header.
// It is safe for concurrent use.
type Matcher struct {
	matcher   language.Matcher
	available []string
}

// NewMatcher creates a Matcher over the available language codes.
// The first code is returned when nothing matches.
func NewMatcher(available []string) *Matcher {
	tags := make([]language.Tag, 0, len(available))
	for _, code := range available {
		tags = append(tags, language.Make(code))
	}
	return &Matcher{
		matcher:   language.NewMatcher(tags),
		available: available,
	}
}

// Match returns the supported language that best fits header.
func (m *Matcher) Match(header string) string {
	if len(m.available) == 0 {
		return ""
	}
	if header == "" {
		return m.available[0]
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return m.available[0]
	}

	_, idx, confidence := m.matcher.Match(tags...)
	if confidence != language.No && idx >= 0 && idx < len(m.available) {
		return m.available[idx]
	}

	// Script differences (zh-TW against zh) can defeat the matcher;
	// compare base languages in preference order instead.
	for _, tag := range tags {
		base, _ := tag.Base()
		for _, code := range m.available {
			if baseLanguage(code) == base.String() {
				return code
			}
		}
	}
	return m.available[0]
}

// ParseAcceptLanguage returns the available language that best fits header,
// or the first available language when none does.
//
// Example header: "zh-TW,zh;q=0.9,en;q=0.8"
// Available: ["zh", "en"]
// Returns: "zh"
func ParseAcceptLanguage(header string, available []string) string {
	return NewMatcher(available).Match(header)
}
