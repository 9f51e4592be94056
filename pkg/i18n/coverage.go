package i18n

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// KeyAttr is the attribute marking a translatable element in markup.
const KeyAttr = "data-i18n"

// MissingKey describes a key referenced in markup but absent from a language.
type MissingKey struct {
	Lang string
	Key  string
}

func (m MissingKey) String() string {
	return m.Lang + ":" + m.Key
}

// ExtractKeys returns the distinct values of every data-i18n attribute
// found in the HTML read from r, sorted.
func ExtractKeys(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("i18n: scanning markup: %w", err)
			}
			keys := make([]string, 0, len(seen))
			for k := range seen {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			for {
				name, val, more := z.TagAttr()
				if string(name) == KeyAttr {
					if key := strings.TrimSpace(string(val)); key != "" {
						seen[key] = struct{}{}
					}
				}
				if !more {
					break
				}
			}
		}
	}
}

// CheckCoverage reports every key that is not translated in every
// available language. The result is sorted by language, then key.
func (i *I18n) CheckCoverage(keys []string) []MissingKey {
	var missing []MissingKey
	for _, lang := range i.languages {
		for _, key := range keys {
			if !i.Has(lang, key) {
				missing = append(missing, MissingKey{Lang: lang, Key: key})
			}
		}
	}
	sort.Slice(missing, func(a, b int) bool {
		if missing[a].Lang != missing[b].Lang {
			return missing[a].Lang < missing[b].Lang
		}
		return missing[a].Key < missing[b].Key
	})
	return missing
}

// MissingError wraps ErrMissingKeys with the offending keys.
func MissingError(missing []MissingKey) error {
	if len(missing) == 0 {
		return nil
	}
	parts := make([]string, len(missing))
	for idx, m := range missing {
		parts[idx] = m.String()
	}
	return fmt.Errorf("%w: %s", ErrMissingKeys, strings.Join(parts, ", "))
}
