package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	articlePolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		strictPolicy.AddSpaceWhenStrippingTag(true)

		// Article bodies come from markdown rendered at startup: headings,
		// lists, images and links are allowed, everything active is not.
		articlePolicy = bluemonday.NewPolicy()
		articlePolicy.AllowStandardURLs()
		articlePolicy.AllowElements(
			"p", "br", "hr",
			"h2", "h3", "h4",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"blockquote", "code", "pre",
			"table", "thead", "tbody", "tr", "th", "td",
			"figure", "figcaption",
		)
		articlePolicy.AllowAttrs("href", "title").OnElements("a")
		articlePolicy.AllowImages()
		articlePolicy.AllowAttrs("loading").Matching(bluemonday.SpaceSeparatedTokens).OnElements("img")
		articlePolicy.RequireNoFollowOnFullyQualifiedLinks(true)
		articlePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// Article sanitizes rendered news HTML. Scripts, styles, event handlers
// and javascript: URLs are removed. External links open in a new tab
// with rel="nofollow noopener".
func Article(s string) string {
	initPolicies()
	return articlePolicy.Sanitize(s)
}

// PlainText strips all markup, decodes entities and collapses
// whitespace. Used for meta descriptions and news excerpts.
func PlainText(s string) string {
	initPolicies()
	text := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns PlainText(s) cut to at most limit runes on a word
// boundary where possible, with an ellipsis when shortened.
func Excerpt(s string, limit int) string {
	text := PlainText(s)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if runes[limit] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,.;:，。") + "…"
}

// Custom applies policy. Input is returned unchanged when policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
