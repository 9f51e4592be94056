// Package sitemap renders sitemaps.org XML with xhtml:link language
// alternates.
//
//	xml, err := sitemap.Generate("https://mazhu.example", []sitemap.Entry{
//		{Path: "/", ChangeFreq: sitemap.Weekly, Priority: 1},
//		{Path: "/menu", ChangeFreq: sitemap.Monthly, Priority: 0.8},
//	}, sitemap.Options{Languages: []string{"zh", "en"}, Default: "zh"})
package sitemap
