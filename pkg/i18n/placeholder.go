package i18n

import (
	"fmt"
	"strings"
)

// M is a map of placeholder names to values.
type M map[string]any

// ReplacePlaceholders replaces {{name}} placeholders in template with values
// from placeholders. Unknown placeholders are left as they are.
//
// Example:
//
//	template: "{{count}} stores in {{city}}"
//	placeholders: M{"count": 3, "city": "Taipei"}
//	returns: "3 stores in Taipei"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
