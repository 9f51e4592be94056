package content

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is the head metadata of a page in one language.
type Meta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Robots      string   `yaml:"robots"`
	Image       string   `yaml:"image"`
	Keywords    []string `yaml:"keywords"`
}

// KeywordList joins keywords for the meta tag.
func (m Meta) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

// SEO is the (page, language) → Meta table.
type SEO struct {
	siteName map[string]string
	pages    map[Page]map[string]Meta
	ogImage  string
}

// LoadSEO parses the SEO YAML table. It must contain a home entry, the
// fallback for unknown pages.
func LoadSEO(fsys fs.FS, path string) (*SEO, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("content: read seo: %w", err)
	}

	var doc struct {
		SiteName map[string]string        `yaml:"site_name"`
		Pages    map[Page]map[string]Meta `yaml:"pages"`
		OGImage  string                   `yaml:"og_image"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse seo: %v", ErrInvalidContent, err)
	}
	if len(doc.Pages[PageHome]) == 0 {
		return nil, fmt.Errorf("%w: seo table has no home entry", ErrInvalidContent)
	}
	return &SEO{siteName: doc.SiteName, pages: doc.Pages, ogImage: doc.OGImage}, nil
}

// Lookup returns the metadata for page in lang. An unknown page falls
// back to home; a missing language falls back to fallbackLang.
func (s *SEO) Lookup(page Page, lang, fallbackLang string) Meta {
	byLang, ok := s.pages[page]
	if !ok {
		byLang = s.pages[PageHome]
	}

	m, ok := byLang[lang]
	if !ok {
		m = byLang[fallbackLang]
	}
	if m.Image == "" {
		m.Image = s.ogImage
	}
	return m
}

// SiteName returns the site name in lang, or in fallbackLang.
func (s *SEO) SiteName(lang, fallbackLang string) string {
	if n, ok := s.siteName[lang]; ok {
		return n
	}
	return s.siteName[fallbackLang]
}
