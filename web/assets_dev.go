//go:build dev

package web

import (
	"net/http"
	"os"
)

// mountAssets serves the editor page from the source tree so edits show up on
// reload. Run from the repository root.
func (s *Server) mountAssets(mux *http.ServeMux) {
	mux.Handle("GET /", http.FileServerFS(os.DirFS("web/static")))
}
