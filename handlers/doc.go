// Package handlers declares the routes of the site: the HTML pages, the
// love statistics API, the sitemap and the error renderer shared by all
// of them.
package handlers
