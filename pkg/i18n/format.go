package i18n

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// LocaleFormat holds number and date formatting rules for a locale.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	decimalSeparator  string
	thousandSeparator string
	dateFormat        string
	htmlLang          string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a LocaleFormat. Without options it formats
// numbers as 1,234.5 and dates as 2006-01-02.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSeparator:  ".",
		thousandSeparator: ",",
		dateFormat:        "2006-01-02",
		htmlLang:          "en",
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDecimalSeparator sets the decimal separator.
func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.decimalSeparator = sep
	}
}

// WithThousandSeparator sets the thousand separator.
func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.thousandSeparator = sep
	}
}

// WithDateFormat sets the date layout (Go time layout).
func WithDateFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateFormat = format
	}
}

// WithHTMLLang sets the BCP 47 tag written to <html lang> and hreflang.
func WithHTMLLang(tag string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.htmlLang = tag
	}
}

// FormatNumber formats n with the locale's separators and at most two decimals.
func (lf *LocaleFormat) FormatNumber(n float64) string {
	negative := n < 0
	if negative {
		n = -n
	}

	n = math.Round(n*100) / 100
	intPart := int64(n)
	result := lf.formatInteger(intPart)

	if frac := n - float64(intPart); frac > 0 {
		dec := strconv.FormatFloat(frac, 'f', 2, 64)[2:]
		if dec = strings.TrimRight(dec, "0"); dec != "" {
			result += lf.decimalSeparator + dec
		}
	}

	if negative {
		result = "-" + result
	}
	return result
}

// FormatInt formats an integer with the locale's thousand separator.
func (lf *LocaleFormat) FormatInt(n int64) string {
	if n < 0 {
		return "-" + lf.formatInteger(-n)
	}
	return lf.formatInteger(n)
}

// FormatDate formats a date with the locale's layout.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateFormat)
}

// HTMLLang returns the BCP 47 tag of the locale.
func (lf *LocaleFormat) HTMLLang() string {
	return lf.htmlLang
}

func (lf *LocaleFormat) formatInteger(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}

	var b strings.Builder
	head := len(str) % 3
	if head > 0 {
		b.WriteString(str[:head])
	}
	for i := head; i < len(str); i += 3 {
		if b.Len() > 0 {
			b.WriteString(lf.thousandSeparator)
		}
		b.WriteString(str[i : i+3])
	}
	return b.String()
}
