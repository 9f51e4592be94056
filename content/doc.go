// Package content loads the site's static content: the menu catalog,
// news posts and the SEO table. Content is embedded in the binary and
// read-only at runtime.
package content
