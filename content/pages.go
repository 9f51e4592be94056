package content

import (
	"github.com/mazhu/website/pkg/sitemap"
)

// Page identifies a top-level page for SEO and navigation.
type Page string

const (
	PageHome  Page = "home"
	PageAbout Page = "about"
	PageMenu  Page = "menu"
	PageNews  Page = "news"
	PageLove  Page = "love"
	PageAdmin Page = "admin"
)

// Path returns the route of the page.
func (p Page) Path() string {
	if p == PageHome {
		return "/"
	}
	return "/" + string(p)
}

// NavKey is the translation key of the navigation label.
func (p Page) NavKey() string {
	return "nav." + string(p)
}

// Navigation lists the pages shown in the main navigation, in order.
var Navigation = []Page{PageHome, PageAbout, PageMenu, PageNews, PageLove}

var sitemapHints = map[Page]sitemap.Entry{
	PageHome:  {ChangeFreq: sitemap.Weekly, Priority: 1.0},
	PageAbout: {ChangeFreq: sitemap.Monthly, Priority: 0.7},
	PageMenu:  {ChangeFreq: sitemap.Monthly, Priority: 0.9},
	PageNews:  {ChangeFreq: sitemap.Weekly, Priority: 0.8},
	PageLove:  {ChangeFreq: sitemap.Weekly, Priority: 0.7},
}

// SitemapEntries lists every public page plus each news post. The admin
// page is excluded.
func (c *Content) SitemapEntries() []sitemap.Entry {
	entries := make([]sitemap.Entry, 0, len(Navigation)+len(c.News.List()))
	for _, p := range Navigation {
		e := sitemapHints[p]
		e.Path = p.Path()
		entries = append(entries, e)
	}
	for _, post := range c.News.List() {
		entries = append(entries, sitemap.Entry{
			Path:       post.Path(),
			LastMod:    post.Date,
			ChangeFreq: sitemap.Yearly,
			Priority:   0.5,
		})
	}
	return entries
}
