package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed data
var embedded embed.FS

var (
	ErrInvalidContent     = errors.New("content: invalid content")
	ErrInvalidFrontmatter = errors.New("content: invalid front matter")
	ErrNotFound           = errors.New("content: not found")
)

// FS returns the embedded content rooted at data/.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("content: embedded data missing: %v", err))
	}
	return sub
}

// Content is everything the site renders that is not code: the menu,
// news posts and SEO table. It is loaded once at startup and read-only.
type Content struct {
	Menu *Catalog
	News *News
	SEO  *SEO
}

// Load reads menu.yaml, seo.yaml and news/*.md from fsys.
func Load(fsys fs.FS) (*Content, error) {
	menu, err := LoadCatalog(fsys, "menu.yaml")
	if err != nil {
		return nil, err
	}
	seo, err := LoadSEO(fsys, "seo.yaml")
	if err != nil {
		return nil, err
	}
	news, err := LoadNews(fsys, "news")
	if err != nil {
		return nil, err
	}
	return &Content{Menu: menu, News: news, SEO: seo}, nil
}

// MustLoad loads the embedded content and panics on error. Embedded
// content is covered by tests, so failure here is a build defect.
func MustLoad() *Content {
	c, err := Load(FS())
	if err != nil {
		panic(err)
	}
	return c
}
