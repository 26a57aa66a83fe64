// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates parses every page template. Each page is addressable by its
// file name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
