package views

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"
)

//go:embed templates
var templatesFS embed.FS

var ErrUnknownTemplate = errors.New("views: unknown template")

// Views holds one template set per page: the shared layout and partials
// plus the page's own blocks.
type Views struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Views, error) {
	return Parse(templatesFS, "templates")
}

// MustNew is New that panics, for wiring code where templates are
// covered by tests.
func MustNew() *Views {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Parse loads root/layout.html, root/partials/*.html and one set per
// root/pages/*.html.
func Parse(fsys fs.FS, root string) (*Views, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, path.Join(root, "layout.html"), path.Join(root, "partials", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, path.Join(root, "pages", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("views: list pages: %w", err)
	}

	v := &Views{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		set, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("views: clone layout: %w", err)
		}
		if _, err := set.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", f, err)
		}
		v.pages[strings.TrimSuffix(path.Base(f), ".html")] = set
	}
	return v, nil
}

// Page renders the full document for page.
func (v *Views) Page(page string, data any) templ.Component {
	return v.block(page, "layout", data)
}

// Fragment renders a single named block of page, for htmx swaps.
func (v *Views) Fragment(page, block string, data any) templ.Component {
	return v.block(page, block, data)
}

func (v *Views) block(page, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		set, ok := v.pages[page]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTemplate, page)
		}
		return set.ExecuteTemplate(w, name, data)
	})
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"join":  strings.Join,
	"iframeURL": func(s string) template.URL {
		if strings.HasPrefix(s, "https://") {
			return template.URL(s) //nolint:gosec // https only, from configuration
		}
		return ""
	},
}
