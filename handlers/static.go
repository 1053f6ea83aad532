package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static/*
var staticAssets embed.FS

// StaticHandler serves the embedded card-gallery page.
type StaticHandler struct {
	fileServer http.Handler
}

func NewStaticHandler() *StaticHandler {
	staticFS, err := fs.Sub(staticAssets, "static")
	if err != nil {
		panic("failed to get static subdirectory: " + err.Error())
	}

	return &StaticHandler{
		fileServer: http.FileServer(http.FS(staticFS)),
	}
}

// ServeHTTP serves static files, falling back to the gallery page for any
// path without a file extension.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" || !strings.Contains(path, ".") {
		r.URL.Path = "/"
	}
	h.fileServer.ServeHTTP(w, r)
}
