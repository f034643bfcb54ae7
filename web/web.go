// Package web embeds the landing page and its static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views/index.html
var IndexHTML []byte

//go:embed public
var public embed.FS

// Public returns the static assets rooted at the public directory.
func Public() fs.FS {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
