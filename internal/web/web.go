// Package web embeds the static front-end served under /static/.
package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

//go:embed static
var assets embed.FS

// IndexPath is where the root redirect sends browsers.
const IndexPath = "/static/index.html"

// Static returns the embedded asset tree rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler serves embedded assets for requests under /static/.
// index.html is served directly; http.FileServer would redirect it to the directory.
func Handler() http.Handler {
	files := http.StripPrefix("/static/", http.FileServerFS(Static()))
	index, err := fs.ReadFile(Static(), "index.html")
	if err != nil {
		panic(err)
	}
	started := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == IndexPath {
			http.ServeContent(w, r, "index.html", started, bytes.NewReader(index))
			return
		}
		files.ServeHTTP(w, r)
	})
}
