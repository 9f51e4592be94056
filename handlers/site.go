package handlers

import (
	"strings"
	"time"

	"github.com/mazhu/website"
	"github.com/mazhu/website/content"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/views"
)

// Site is what every HTML handler needs to render a page.
type Site struct {
	Views   *views.Views
	Content *content.Content
	I18n    *i18n.I18n
	// BaseURL is the public origin used for canonical links and the sitemap.
	BaseURL string
	Now     func() time.Time
}

// NewSite builds a Site. An empty baseURL renders root-relative
// canonical links.
func NewSite(v *views.Views, c *content.Content, inst *i18n.I18n, baseURL string) *Site {
	return &Site{
		Views:   v,
		Content: c,
		I18n:    inst,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Now:     time.Now,
	}
}

// translator returns the request translator, or one for the default
// language when the i18n middleware did not run.
func (s *Site) translator(c website.Context) *i18n.Translator {
	if tr := middlewares.GetTranslator(c); tr != nil {
		return tr
	}
	lang := s.I18n.DefaultLanguage()
	return i18n.NewTranslator(s.I18n, lang, i18n.FormatFor(lang))
}

// base fills the layout data for page.
func (s *Site) base(c website.Context, page content.Page) views.Base {
	tr := s.translator(c)
	lang := tr.Language()
	def := s.I18n.DefaultLanguage()

	return views.Base{
		Tr:              tr,
		Meta:            s.Content.SEO.Lookup(page, lang, def),
		Page:            page,
		SiteName:        s.Content.SEO.SiteName(lang, def),
		BaseURL:         s.BaseURL,
		Path:            c.Request().URL.Path,
		DefaultLanguage: def,
		Year:            s.Now().Year(),
	}
}

// title joins a page heading with the site name.
func title(heading, siteName string) string {
	return heading + " | " + siteName
}
