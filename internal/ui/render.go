// Package ui renders the server-side screens of the health hub.
package ui

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes c as the response, answering 500 if rendering fails.
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := c.Render(r.Context(), w)
	if err != nil {
		slog.Error("render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
