package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/mazhu/website"
	"github.com/mazhu/website/content"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/htmx"
	"github.com/mazhu/website/stats"
	"github.com/mazhu/website/views"
)

// TitleEvent is raised through HX-Trigger when a menu section is swapped
// in, with the new document title as detail.
const TitleEvent = "title-update"

// StatsReader reads the current love statistics.
type StatsReader interface {
	Current(ctx context.Context) (stats.Snapshot, bool, error)
}

// PagesOption configures Pages.
type PagesOption func(*Pages)

// WithMapEmbedURL sets the iframe URL of the store map.
func WithMapEmbedURL(u string) PagesOption {
	return func(p *Pages) {
		p.mapEmbedURL = u
	}
}

// WithNewsOnHome sets how many posts the home page lists.
func WithNewsOnHome(n int) PagesOption {
	return func(p *Pages) {
		if n > 0 {
			p.homeNews = n
		}
	}
}

// Pages serves the HTML pages of the site.
type Pages struct {
	site        *Site
	stats       StatsReader
	mapEmbedURL string
	homeNews    int
}

// NewPages creates the page handler.
func NewPages(site *Site, sr StatsReader, opts ...PagesOption) *Pages {
	p := &Pages{site: site, stats: sr, homeNews: 3}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Routes implements website.Handler.
func (h *Pages) Routes(r website.Router) {
	r.GET("/", h.home)
	r.GET("/about", h.about)
	r.GET("/menu", h.menu)
	r.GET("/menu/sections/{id}", h.menuSection)
	r.GET("/news", h.news)
	r.GET("/news/{slug}", h.newsPost)
	r.GET("/love", h.love)
	r.GET("/admin", h.admin)
	r.GET("/lang/{code}", h.switchLanguage)
}

func (h *Pages) home(c website.Context) error {
	base := h.site.base(c, content.PageHome)
	return c.Render(http.StatusOK, h.site.Views.Page("home", views.HomeData{
		Base:  base,
		Posts: views.NewsCards(h.site.Content.News.Latest(h.homeNews), base.Lang(), base.DefaultLanguage),
	}))
}

func (h *Pages) about(c website.Context) error {
	return c.Render(http.StatusOK, h.site.Views.Page("about", views.AboutData{
		Base:        h.site.base(c, content.PageAbout),
		Stores:      content.Stores,
		MapEmbedURL: h.mapEmbedURL,
		MapImage:    "/static/img/map-fallback.svg",
	}))
}

func (h *Pages) menu(c website.Context) error {
	id := c.Query("section")
	data := h.menuData(c, id)
	if id == "" {
		data.Title = ""
	}
	return c.Render(http.StatusOK, h.site.Views.Page("menu", data))
}

// menuSection answers htmx with the section fragment and a title event,
// and everyone else with the full page. Unknown ids get the default
// section.
func (h *Pages) menuSection(c website.Context) error {
	data := h.menuData(c, c.Param("id"))
	return c.RenderPartial(http.StatusOK,
		h.site.Views.Page("menu", data),
		h.site.Views.Fragment("menu", "fragment", data),
		htmx.WithTriggerDetail(TitleEvent, map[string]string{"title": data.Title, "section": data.Active.ID}),
	)
}

func (h *Pages) menuData(c website.Context, id string) views.MenuData {
	catalog := h.site.Content.Menu
	section, found := catalog.Resolve(id)
	if !found && id != "" {
		c.LogDebug("unknown menu section", "section", id)
	}

	base := h.site.base(c, content.PageMenu)
	base.Path = content.PageMenu.Path()
	base.Title = title(base.T(section.Title), base.SiteName)

	return views.MenuData{
		Base:     base,
		Sections: catalog.Sections(),
		Active:   section,
	}
}

func (h *Pages) news(c website.Context) error {
	base := h.site.base(c, content.PageNews)
	return c.Render(http.StatusOK, h.site.Views.Page("news", views.NewsListData{
		Base:  base,
		Posts: views.NewsCards(h.site.Content.News.List(), base.Lang(), base.DefaultLanguage),
	}))
}

func (h *Pages) newsPost(c website.Context) error {
	post, err := h.site.Content.News.Get(c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) {
		return website.ErrNotFound("Not found", website.WithError(err))
	}
	if err != nil {
		return err
	}

	base := h.site.base(c, content.PageNews)
	card := views.NewsCards([]content.Post{post}, base.Lang(), base.DefaultLanguage)[0]
	base.Title = title(card.Article.Title, base.SiteName)
	if card.Article.Summary != "" {
		base.Meta.Description = card.Article.Summary
	}
	if post.Image != "" {
		base.Meta.Image = post.Image
	}

	return c.Render(http.StatusOK, h.site.Views.Page("news_post", views.NewsPostData{
		Base: base,
		Post: card,
	}))
}

func (h *Pages) love(c website.Context) error {
	return c.Render(http.StatusOK, h.site.Views.Page("love", h.loveData(c, content.PageLove)))
}

func (h *Pages) admin(c website.Context) error {
	c.SetHeader("Cache-Control", "no-store")
	return c.Render(http.StatusOK, h.site.Views.Page("admin", views.AdminData{
		LoveData: h.loveData(c, content.PageAdmin),
	}))
}

// loveData renders whatever the store returns. A failed read still
// renders the page; counter.js retries against the API.
func (h *Pages) loveData(c website.Context, page content.Page) views.LoveData {
	snap, _, err := h.stats.Current(c.Context())
	if err != nil {
		c.LogError("failed to load love stats", "error", err)
		snap = stats.Snapshot{}
	}
	return views.NewLoveData(h.site.base(c, page), snap, int(stats.DefaultCounterDuration.Milliseconds()))
}

// switchLanguage stores the language cookie and goes back to the page
// the visitor came from.
func (h *Pages) switchLanguage(c website.Context) error {
	lang := c.Param("code")
	if !h.site.I18n.Supports(lang) {
		return website.ErrNotFound("Not found")
	}
	c.SetCookie(middlewares.DefaultLangCookie, lang, middlewares.DefaultLangCookieMaxAge)
	return c.Redirect(http.StatusSeeOther, localReferer(c.Header("Referer"), c.Request().Host))
}

// localReferer returns the path of ref when it points at host, or "/".
func localReferer(ref, host string) string {
	u, err := url.Parse(ref)
	if err != nil || ref == "" || u.Host != host || u.Path == "" {
		return "/"
	}
	if u.RawQuery != "" {
		q := u.Query()
		q.Del(middlewares.DefaultLangQuery)
		u.RawQuery = q.Encode()
	}
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}
