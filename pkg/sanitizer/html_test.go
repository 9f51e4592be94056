package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/mazhu/website/pkg/sanitizer"
)

func TestArticle(t *testing.T) {
	t.Parallel()

	t.Run("removes active content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>Hi</p>", sanitizer.Article(`<p>Hi</p><script>alert(1)</script>`))
		assert.Equal(t, "<p>Hi</p>", sanitizer.Article(`<p onclick="steal()">Hi</p>`))
		assert.Equal(t, "x", sanitizer.Article(`<a href="javascript:alert(1)">x</a>`))
		assert.NotContains(t, sanitizer.Article(`<style>body{}</style><p>x</p>`), "style")
		assert.NotContains(t, sanitizer.Article(`<iframe src="https://evil.example"></iframe>`), "iframe")
	})

	t.Run("keeps article formatting", func(t *testing.T) {
		t.Parallel()
		in := `<h2>新品上市</h2><ul><li><strong>麻辣</strong>鍋</li></ul><blockquote>好吃</blockquote>`
		assert.Equal(t, in, sanitizer.Article(in))
	})

	t.Run("relative links untouched", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, `<a href="/menu">menu</a>`, sanitizer.Article(`<a href="/menu">menu</a>`))
	})

	t.Run("external links open in new tab", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.Article(`<a href="https://maps.example.com">map</a>`)
		assert.Contains(t, out, `href="https://maps.example.com"`)
		assert.Contains(t, out, `target="_blank"`)
		assert.Contains(t, out, "nofollow")
		assert.Contains(t, out, "noopener")
	})

	t.Run("images allowed", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.Article(`<img src="/static/img/soup.jpg" alt="soup" onerror="x()">`)
		assert.Contains(t, out, `src="/static/img/soup.jpg"`)
		assert.Contains(t, out, `alt="soup"`)
		assert.NotContains(t, out, "onerror")
	})
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips tags", input: `<p>Hello <strong>world</strong></p>`, expected: "Hello world"},
		{name: "drops scripts", input: `<p>Hello</p><script>alert('xss')</script>`, expected: "Hello"},
		{name: "decodes entities", input: `Tom &amp; Jerry`, expected: "Tom & Jerry"},
		{name: "collapses whitespace", input: "<p>a</p>\n\n<p>b</p>", expected: "a b"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.PlainText(tt.input))
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", sanitizer.Excerpt("<p>short</p>", 20))
	assert.Equal(t, "one two three…", sanitizer.Excerpt("one two three four five", 13))
	assert.Equal(t, "one two…", sanitizer.Excerpt("one two three four five", 11))
	assert.Equal(t, "麻煮MINI…", sanitizer.Excerpt("麻煮MINI全新菜單登場", 6))
	assert.Equal(t, "anything", sanitizer.Excerpt("anything", 0))
}

func TestCustom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<b>x</b>", sanitizer.Custom("<b>x</b>", nil))
	assert.Equal(t, "x", sanitizer.Custom("<b>x</b>", bluemonday.StrictPolicy()))
}
