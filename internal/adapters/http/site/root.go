// Package site serves the embedded operator pages under /docs/.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded documentation site routes to mux.
//
//	GET /docs   -> redirect to /docs/
//	GET /docs/  -> embedded pages
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /docs", http.RedirectHandler("/docs/", http.StatusMovedPermanently))
	mux.Handle("GET /docs/", http.StripPrefix("/docs", http.FileServer(FS())))
}
