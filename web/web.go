// Package web embeds the browser assets served under /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// LangDir is the directory of the language files inside Static.
const LangDir = "lang"

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FS returns the embedded tree with static/ as its only top-level entry.
func FS() fs.FS {
	return static
}
