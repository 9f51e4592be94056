package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/mazhu/website"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/sitemap"
)

// SEO serves /sitemap.xml and /robots.txt.
type SEO struct {
	site *Site
}

// NewSEO creates the sitemap and robots handler.
func NewSEO(site *Site) *SEO {
	return &SEO{site: site}
}

// Routes implements website.Handler.
func (h *SEO) Routes(r website.Router) {
	r.GET("/sitemap.xml", h.sitemap)
	r.GET("/robots.txt", h.robots)
}

func (h *SEO) sitemap(c website.Context) error {
	var buf bytes.Buffer
	err := sitemap.Write(&buf, h.origin(c), h.site.Content.SitemapEntries(), SitemapOptions(h.site))
	if err != nil {
		return err
	}
	c.SetHeader("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (h *SEO) robots(c website.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\nSitemap: " + h.origin(c) + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

// origin is the configured base URL, or the one the request came in on.
func (h *SEO) origin(c website.Context) string {
	if h.site.BaseURL != "" {
		return h.site.BaseURL
	}
	r := c.Request()
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// SitemapOptions links every page in each site language.
func SitemapOptions(site *Site) sitemap.Options {
	return sitemap.Options{
		QueryParam: middlewares.DefaultLangQuery,
		Default:    site.I18n.DefaultLanguage(),
		Languages:  site.I18n.Languages(),
	}
}
