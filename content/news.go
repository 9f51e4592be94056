package content

import (
	"bytes"
	"cmp"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mazhu/website/pkg/sanitizer"
)

const excerptLength = 120

var newsFilePattern = regexp.MustCompile(`^([a-z0-9][a-z0-9-]*)\.([a-z]{2})\.md$`)

// Article is a post in one language. HTML is rendered markdown, already
// sanitized.
type Article struct {
	Title   string
	Summary string
	HTML    template.HTML
}

// Post is a news item available in one or more languages.
type Post struct {
	Date     time.Time
	Articles map[string]Article
	Slug     string
	Image    string
}

// In returns the article for lang, falling back to fallback and then to
// any available language.
func (p Post) In(lang, fallback string) Article {
	if a, ok := p.Articles[lang]; ok {
		return a
	}
	if a, ok := p.Articles[fallback]; ok {
		return a
	}
	if langs := slices.Sorted(maps.Keys(p.Articles)); len(langs) > 0 {
		return p.Articles[langs[0]]
	}
	return Article{}
}

// Path is the post URL path.
func (p Post) Path() string {
	return "/news/" + p.Slug
}

// News holds posts sorted newest first.
type News struct {
	bySlug map[string]int
	posts  []Post
}

type newsMeta struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Summary string `yaml:"summary"`
	Image   string `yaml:"image"`
}

// LoadNews reads dir/<slug>.<lang>.md files, renders their markdown and
// groups them by slug.
func LoadNews(fsys fs.FS, dir string) (*News, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("content: read news: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	posts := make(map[string]*Post)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := newsFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		slug, lang := m[1], m[2]

		raw, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", e.Name(), err)
		}

		var meta newsMeta
		body, err := splitFrontmatter(raw, &meta)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if strings.TrimSpace(meta.Title) == "" {
			return nil, fmt.Errorf("%w: %s has no title", ErrInvalidContent, e.Name())
		}
		date, err := time.Parse(time.DateOnly, meta.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s has invalid date %q", ErrInvalidContent, e.Name(), meta.Date)
		}

		var buf bytes.Buffer
		if err := md.Convert(body, &buf); err != nil {
			return nil, fmt.Errorf("content: render %s: %w", e.Name(), err)
		}
		html := sanitizer.Article(buf.String())

		summary := meta.Summary
		if summary == "" {
			summary = sanitizer.Excerpt(html, excerptLength)
		}

		p, ok := posts[slug]
		if !ok {
			p = &Post{Slug: slug, Date: date, Articles: make(map[string]Article)}
			posts[slug] = p
		} else if !p.Date.Equal(date) {
			return nil, fmt.Errorf("%w: %s: date differs between languages", ErrInvalidContent, slug)
		}
		if meta.Image != "" {
			p.Image = meta.Image
		}
		p.Articles[lang] = Article{
			Title:   meta.Title,
			Summary: summary,
			HTML:    template.HTML(html), //nolint:gosec // sanitized above
		}
	}

	return NewNews(posts), nil
}

// NewNews sorts posts newest first, breaking ties by slug.
func NewNews(posts map[string]*Post) *News {
	n := &News{bySlug: make(map[string]int, len(posts))}
	for _, p := range posts {
		n.posts = append(n.posts, *p)
	}
	slices.SortFunc(n.posts, func(a, b Post) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	for i, p := range n.posts {
		n.bySlug[p.Slug] = i
	}
	return n
}

// List returns posts newest first.
func (n *News) List() []Post {
	return n.posts
}

// Latest returns up to limit newest posts.
func (n *News) Latest(limit int) []Post {
	return n.posts[:min(limit, len(n.posts))]
}

// Get returns the post with slug or ErrNotFound.
func (n *News) Get(slug string) (Post, error) {
	i, ok := n.bySlug[slug]
	if !ok {
		return Post{}, fmt.Errorf("%w: news %q", ErrNotFound, slug)
	}
	return n.posts[i], nil
}
