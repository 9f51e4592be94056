package views

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mazhu/website/content"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/stats"
)

// Translator is what templates need from the request translator.
type Translator interface {
	T(key string, placeholders ...i18n.M) string
	Language() string
	HTMLLang() string
	Languages() []string
	FormatInt(n int64) string
	FormatDate(t time.Time) string
}

// Alternate is a language version of the current page.
type Alternate struct {
	Lang string
	Href string
}

// Base is the data every page layout needs.
type Base struct {
	Tr       Translator
	Meta     content.Meta
	Page     content.Page
	Title    string
	SiteName string
	BaseURL  string
	Path     string
	// DefaultLanguage is linked as x-default.
	DefaultLanguage string
	// Year is shown in the footer.
	Year int
}

// T translates key in the page language.
func (b Base) T(key string) string {
	return b.Tr.T(key)
}

// Lang is the page language code.
func (b Base) Lang() string {
	return b.Tr.Language()
}

// HTMLLang is the value of <html lang>.
func (b Base) HTMLLang() string {
	return b.Tr.HTMLLang()
}

// PageTitle is Title, or the SEO title of the page.
func (b Base) PageTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return b.Meta.Title
}

// Nav is the main navigation.
func (b Base) Nav() []content.Page {
	return content.Navigation
}

// Active reports whether p is the current page.
func (b Base) Active(p content.Page) bool {
	return b.Page == p
}

// Canonical is the absolute URL of the page without query.
func (b Base) Canonical() string {
	return strings.TrimRight(b.BaseURL, "/") + b.Path
}

// LangURL switches the current page to lang.
func (b Base) LangURL(lang string) string {
	return b.Path + "?lang=" + url.QueryEscape(lang)
}

// Alternates lists the page in every language for hreflang links.
func (b Base) Alternates() []Alternate {
	langs := b.Tr.Languages()
	alts := make([]Alternate, 0, len(langs))
	for _, l := range langs {
		alts = append(alts, Alternate{Lang: l, Href: b.Canonical() + "?lang=" + url.QueryEscape(l)})
	}
	return alts
}

// ImageURL makes a site path absolute for Open Graph.
func (b Base) ImageURL() string {
	if b.Meta.Image == "" || strings.HasPrefix(b.Meta.Image, "http") {
		return b.Meta.Image
	}
	return strings.TrimRight(b.BaseURL, "/") + b.Meta.Image
}

// Price formats a menu price.
func (b Base) Price(n int) string {
	return "NT$" + b.Tr.FormatInt(int64(n))
}

// Date formats a date in the page language.
func (b Base) Date(t time.Time) string {
	return b.Tr.FormatDate(t)
}

// NewsCard is a post summary in the page language.
type NewsCard struct {
	Date    time.Time
	Article content.Article
	Path    string
	Image   string
}

// NewsCards localizes posts.
func NewsCards(posts []content.Post, lang, fallback string) []NewsCard {
	cards := make([]NewsCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, NewsCard{Date: p.Date, Article: p.In(lang, fallback), Path: p.Path(), Image: p.Image})
	}
	return cards
}

// HomeData renders the home page.
type HomeData struct {
	Base
	Posts []NewsCard
}

// AboutData renders the about page.
type AboutData struct {
	Base
	Stores []content.Store
	// MapEmbedURL is an https iframe URL; empty renders the static map.
	MapEmbedURL string
	MapImage    string
}

// MenuData renders the menu page or one section of it.
type MenuData struct {
	Base
	Sections []content.Section
	Active   content.Section
}

// IsActive reports whether s is the shown section.
func (d MenuData) IsActive(s content.Section) bool {
	return d.Active.ID == s.ID
}

// NewsListData renders the news list.
type NewsListData struct {
	Base
	Posts []NewsCard
}

// NewsPostData renders one post.
type NewsPostData struct {
	Base
	Post NewsCard
}

// Counter is an animated love statistic.
type Counter struct {
	Key      string
	Category stats.Category
	Value    int64
}

// LoveData renders the love page.
type LoveData struct {
	Base
	UpdatedAt time.Time
	Counters  []Counter
	Donation  int64
	// DurationMS is the counter animation length.
	DurationMS int
}

// Count formats a counter value.
func (d LoveData) Count(n int64) string {
	return d.Tr.FormatInt(n)
}

// Raw is n without separators, for data-count-to.
func (d LoveData) Raw(n int64) string {
	return strconv.FormatInt(n, 10)
}

// NewLoveData builds counters for every category in display order.
func NewLoveData(base Base, snap stats.Snapshot, durationMS int) LoveData {
	d := LoveData{Base: base, Donation: snap.Donation, UpdatedAt: snap.UpdatedAt, DurationMS: durationMS}
	for _, c := range stats.Categories {
		d.Counters = append(d.Counters, Counter{
			Key:      "love.categories." + string(c),
			Category: c,
			Value:    snap.BenefitCategories[c],
		})
	}
	return d
}

// AdminData renders the admin page.
type AdminData struct {
	LoveData
}

// ErrorData renders an error page.
type ErrorData struct {
	Base
	TitleKey string
	TextKey  string
	Status   int
}
