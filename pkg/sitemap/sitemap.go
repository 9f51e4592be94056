package sitemap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xmlnsXHTML   = "http://www.w3.org/1999/xhtml"

	// MaxURLs is the protocol limit for one sitemap file.
	MaxURLs = 50000
)

var (
	ErrInvalidBaseURL = errors.New("sitemap: base URL must be absolute http(s)")
	ErrTooManyURLs    = errors.New("sitemap: too many URLs")
	ErrInvalidEntry   = errors.New("sitemap: invalid entry")
)

// ChangeFreq is a sitemap changefreq hint.
type ChangeFreq string

const (
	Always  ChangeFreq = "always"
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
	Never   ChangeFreq = "never"
)

// Entry is one page of the site.
type Entry struct {
	LastMod    time.Time
	Path       string
	ChangeFreq ChangeFreq
	Priority   float64
}

// Options controls alternate-language links. Each language gets an
// xhtml:link to the page with QueryParam=<lang>. Default is also linked
// as x-default with no parameter.
type Options struct {
	QueryParam string
	Default    string
	Languages  []string
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr,omitempty"`
	URLs    []urlXML `xml:"url"`
}

type urlXML struct {
	Loc        string    `xml:"loc"`
	LastMod    string    `xml:"lastmod,omitempty"`
	ChangeFreq string    `xml:"changefreq,omitempty"`
	Priority   string    `xml:"priority,omitempty"`
	Links      []linkXML `xml:"xhtml:link"`
}

type linkXML struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Generate returns the sitemap XML for entries under baseURL.
func Generate(baseURL string, entries []Entry, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, baseURL, entries, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the sitemap to w.
func Write(w io.Writer, baseURL string, entries []Entry, opts Options) error {
	base, err := parseBase(baseURL)
	if err != nil {
		return err
	}
	if len(entries) > MaxURLs {
		return fmt.Errorf("%w: %d > %d", ErrTooManyURLs, len(entries), MaxURLs)
	}

	set := urlSet{Xmlns: xmlnsSitemap}
	if len(opts.Languages) > 0 {
		set.XHTML = xmlnsXHTML
	}

	for _, e := range entries {
		u, err := buildURL(base, e, opts)
		if err != nil {
			return err
		}
		set.URLs = append(set.URLs, u)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("sitemap: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

func buildURL(base *url.URL, e Entry, opts Options) (urlXML, error) {
	if !strings.HasPrefix(e.Path, "/") {
		return urlXML{}, fmt.Errorf("%w: path %q must start with /", ErrInvalidEntry, e.Path)
	}
	if e.Priority < 0 || e.Priority > 1 {
		return urlXML{}, fmt.Errorf("%w: priority %v for %s", ErrInvalidEntry, e.Priority, e.Path)
	}

	loc := base.JoinPath(e.Path)
	if e.Path == "/" {
		loc.Path = base.Path + "/"
	}

	u := urlXML{
		Loc:        loc.String(),
		ChangeFreq: string(e.ChangeFreq),
	}
	if !e.LastMod.IsZero() {
		u.LastMod = e.LastMod.UTC().Format("2006-01-02")
	}
	if e.Priority > 0 {
		u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
	}

	param := opts.QueryParam
	if param == "" {
		param = "lang"
	}
	for _, lang := range opts.Languages {
		alt := *loc
		q := alt.Query()
		q.Set(param, lang)
		alt.RawQuery = q.Encode()
		u.Links = append(u.Links, linkXML{Rel: "alternate", Hreflang: lang, Href: alt.String()})
	}
	if opts.Default != "" && len(opts.Languages) > 0 {
		u.Links = append(u.Links, linkXML{Rel: "alternate", Hreflang: "x-default", Href: loc.String()})
	}

	return u, nil
}
