package rest

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexHTML []byte

// IndexHandler serves the single page; the page holds its game over /ws.
func IndexHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
