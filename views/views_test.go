package views_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/content"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/stats"
	"github.com/mazhu/website/views"
	"github.com/mazhu/website/web"
)

var updated = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

func newI18n(t *testing.T) *i18n.I18n {
	t.Helper()
	inst, err := i18n.New(
		i18n.WithDefaultLanguage("zh"),
		i18n.WithJSONFiles(web.Static(), web.LangDir),
	)
	require.NoError(t, err)
	return inst
}

func base(inst *i18n.I18n, lang string, page content.Page, meta content.Meta) views.Base {
	return views.Base{
		Tr:              i18n.NewTranslator(inst, lang, i18n.FormatFor(lang)),
		Meta:            meta,
		Page:            page,
		SiteName:        "Mazhu",
		BaseURL:         "https://mazhu.example/",
		Path:            page.Path(),
		DefaultLanguage: "zh",
		Year:            2024,
	}
}

func render(t *testing.T, v *views.Views, page string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, v.Page(page, data).Render(context.Background(), &buf))
	return buf.String()
}

// pages renders every page of the site in lang.
func pages(t *testing.T, v *views.Views, inst *i18n.I18n, lang string) map[string]string {
	t.Helper()
	c := content.MustLoad()
	snap := stats.Seed(updated).Snapshot()
	meta := func(p content.Page) content.Meta { return c.SEO.Lookup(p, lang, "zh") }

	post := c.News.List()[0]
	card := views.NewsCards([]content.Post{post}, lang, "zh")[0]

	return map[string]string{
		"home": render(t, v, "home", views.HomeData{
			Base:  base(inst, lang, content.PageHome, meta(content.PageHome)),
			Posts: views.NewsCards(c.News.Latest(3), lang, "zh"),
		}),
		"about": render(t, v, "about", views.AboutData{
			Base:     base(inst, lang, content.PageAbout, meta(content.PageAbout)),
			Stores:   content.Stores,
			MapImage: "/static/img/map-fallback.svg",
		}),
		"menu": render(t, v, "menu", views.MenuData{
			Base:     base(inst, lang, content.PageMenu, meta(content.PageMenu)),
			Sections: c.Menu.Sections(),
			Active:   c.Menu.Default(),
		}),
		"news": render(t, v, "news", views.NewsListData{
			Base:  base(inst, lang, content.PageNews, meta(content.PageNews)),
			Posts: views.NewsCards(c.News.List(), lang, "zh"),
		}),
		"news_post": render(t, v, "news_post", views.NewsPostData{
			Base: base(inst, lang, content.PageNews, meta(content.PageNews)),
			Post: card,
		}),
		"love": render(t, v, "love", views.NewLoveData(
			base(inst, lang, content.PageLove, meta(content.PageLove)), snap, 2000,
		)),
		"admin": render(t, v, "admin", views.AdminData{LoveData: views.NewLoveData(
			base(inst, lang, content.PageAdmin, meta(content.PageAdmin)), snap, 0,
		)}),
		"error": render(t, v, "error", views.ErrorData{
			Base:     base(inst, lang, content.PageHome, meta(content.PageHome)),
			Status:   404,
			TitleKey: "error.not_found.title",
			TextKey:  "error.not_found.text",
		}),
	}
}

func TestViews_AllKeysTranslated(t *testing.T) {
	t.Parallel()

	v, err := views.New()
	require.NoError(t, err)
	inst := newI18n(t)

	// The menu shows one section at a time; the others only come in as
	// fragments.
	fragments := ""
	c := content.MustLoad()
	for _, s := range c.Menu.Sections() {
		var buf bytes.Buffer
		err := v.Fragment("menu", "fragment", views.MenuData{
			Base:     base(inst, "en", content.PageMenu, content.Meta{}),
			Sections: c.Menu.Sections(),
			Active:   s,
		}).Render(context.Background(), &buf)
		require.NoError(t, err)
		fragments += buf.String()
	}

	for _, lang := range []string{"zh", "en"} {
		for name, html := range pages(t, v, inst, lang) {
			keys, err := i18n.ExtractKeys(strings.NewReader(html))
			require.NoError(t, err)
			require.NotEmpty(t, keys, name)
			assert.Empty(t, inst.CheckCoverage(keys), "%s (%s)", name, lang)
		}
	}

	keys, err := i18n.ExtractKeys(strings.NewReader(fragments))
	require.NoError(t, err)
	assert.Empty(t, inst.CheckCoverage(keys))
	assert.Empty(t, inst.CheckCoverage(c.Menu.Keys()))
}

func TestViews_Layout(t *testing.T) {
	t.Parallel()

	v := views.MustNew()
	inst := newI18n(t)

	t.Run("chinese", func(t *testing.T) {
		t.Parallel()
		html := pages(t, v, inst, "zh")["home"]
		assert.Contains(t, html, `<html lang="zh-TW" data-lang="zh">`)
		assert.Contains(t, html, "<title>麻煮MINI石頭火鍋 | 一人一鍋的石頭火鍋</title>")
		assert.Contains(t, html, `<link rel="canonical" href="https://mazhu.example/">`)
		assert.Contains(t, html, `hreflang="en" href="https://mazhu.example/?lang=en"`)
		assert.Contains(t, html, `hreflang="x-default"`)
		assert.Contains(t, html, `<meta property="og:image" content="https://mazhu.example/static/img/og-default.svg">`)
		assert.Contains(t, html, `data-i18n="nav.menu">菜單</a>`)
		assert.Contains(t, html, `class="active" aria-current="page" data-i18n="nav.home"`)
	})

	t.Run("english", func(t *testing.T) {
		t.Parallel()
		html := pages(t, v, inst, "en")["about"]
		assert.Contains(t, html, `<html lang="en" data-lang="en">`)
		assert.Contains(t, html, `data-i18n="about.title">About Mazhu</h1>`)
		assert.Contains(t, html, `/static/js/map.js`)
		assert.NotContains(t, html, `/static/js/counter.js`)
	})

	t.Run("admin is not indexed", func(t *testing.T) {
		t.Parallel()
		html := pages(t, v, inst, "en")["admin"]
		assert.Contains(t, html, `<meta name="robots" content="noindex, nofollow">`)
		assert.Contains(t, html, `name="visually_impaired" data-category min="0" step="1" value="488540"`)
	})
}

func TestViews_Love(t *testing.T) {
	t.Parallel()

	v := views.MustNew()
	html := pages(t, v, newI18n(t), "en")["love"]

	assert.Contains(t, html, `data-stat="donation" data-count-to="714649" data-count-duration="2000">714,649</span>`)
	assert.Contains(t, html, `data-stat="visually_impaired" data-count-to="488540" data-count-duration="2000">488,540</span>`)
	assert.Contains(t, html, `data-stats-endpoint="/api/love-stats"`)
	assert.Contains(t, html, `datetime="2024-06-01T08:30:00Z"`)
	assert.Equal(t, len(stats.Categories), strings.Count(html, "data-subnav-link="))
}

func TestViews_Menu(t *testing.T) {
	t.Parallel()

	v := views.MustNew()
	inst := newI18n(t)
	c := content.MustLoad()

	drinks, ok := c.Menu.Resolve("drinks")
	require.True(t, ok)

	data := views.MenuData{
		Base:     base(inst, "en", content.PageMenu, content.Meta{Title: "Menu"}),
		Sections: c.Menu.Sections(),
		Active:   drinks,
	}
	data.Title = "Drinks | Mazhu"

	t.Run("full page marks the active tab", func(t *testing.T) {
		t.Parallel()
		html := render(t, v, "menu", data)
		assert.Contains(t, html, `data-menu-default="signature"`)
		assert.Contains(t, html, `data-menu-tab="drinks" hx-get="/menu/sections/drinks" hx-target="#menu-section" hx-swap="outerHTML" class="active"`)
		assert.Contains(t, html, `data-section="drinks"`)
		assert.Contains(t, html, "<title>Drinks | Mazhu</title>")
	})

	t.Run("fragment holds only the section", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, v.Fragment("menu", "fragment", data).Render(context.Background(), &buf))
		html := buf.String()

		assert.True(t, strings.HasPrefix(html, "<title>Drinks | Mazhu</title>"))
		assert.Contains(t, html, `data-i18n="menu.items.black_tea">Classic black tea</span>`)
		assert.Contains(t, html, "NT$35")
		assert.NotContains(t, html, "<html")
		assert.NotContains(t, html, "menu.items.mala_stone_pot")
	})

	t.Run("spicy dishes are flagged", func(t *testing.T) {
		t.Parallel()
		data := data
		data.Active = c.Menu.Default()
		var buf bytes.Buffer
		require.NoError(t, v.Fragment("menu", "section", data).Render(context.Background(), &buf))
		assert.Contains(t, buf.String(), `data-i18n="menu.spicy">Spicy</span>`)
		assert.Contains(t, buf.String(), "NT$268")
	})
}

func TestViews_AboutMap(t *testing.T) {
	t.Parallel()

	v := views.MustNew()
	inst := newI18n(t)

	about := func(embed string) string {
		return render(t, v, "about", views.AboutData{
			Base:        base(inst, "en", content.PageAbout, content.Meta{}),
			Stores:      content.Stores,
			MapEmbedURL: embed,
			MapImage:    "/static/img/map-fallback.svg",
		})
	}

	t.Run("embed url renders iframe with hidden fallback", func(t *testing.T) {
		t.Parallel()
		html := about("https://www.google.com/maps/embed?pb=abc")
		assert.Contains(t, html, `<iframe class="map-frame" src="https://www.google.com/maps/embed?pb=abc"`)
		assert.Contains(t, html, `data-map-fallback hidden>`)
	})

	t.Run("no embed url renders static map", func(t *testing.T) {
		t.Parallel()
		html := about("")
		assert.NotContains(t, html, "<iframe")
		assert.Contains(t, html, `data-map-fallback>`)
		assert.Contains(t, html, `src="/static/img/map-fallback.svg"`)
	})

	t.Run("non https url is ignored", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, about("javascript:alert(1)"), "<iframe")
	})
}

func TestViews_UnknownPage(t *testing.T) {
	t.Parallel()

	err := views.MustNew().Page("nope", nil).Render(context.Background(), &bytes.Buffer{})
	require.ErrorIs(t, err, views.ErrUnknownTemplate)
}
