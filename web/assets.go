//go:build !dev

package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// staticFS returns the embedded editor page.
func staticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// mountAssets serves the embedded editor page at the root.
func (s *Server) mountAssets(mux *http.ServeMux) {
	mux.Handle("GET /", http.FileServerFS(staticFS()))
}
