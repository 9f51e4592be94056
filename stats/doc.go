// Package stats owns the love (charity) statistics shown on the love page
// and served by /api/love-stats.
//
// The record is a donation total plus a fixed set of benefit categories,
// each a non-negative integer, and the time of the last update. Updates are
// partial: absent or null fields keep their value, and a single invalid
// field rejects the whole update.
package stats
