package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"healthhub/internal/app"
)

// htmlWriter keeps the first write error so components can write
// sequentially and check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

// TabNav renders the navigation bar with current highlighted.
func TabNav(current app.Tab, href func(app.Tab) string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<nav class="flex flex-wrap gap-1 rounded-lg bg-white p-1 shadow-sm">`)
		for _, tab := range app.Tabs {
			active := tab == current
			h.raw("<a")
			h.attr("href", string(templ.URL(href(tab))))
			h.attr("class", TabClass(active))
			if active {
				h.raw(` aria-current="page"`)
			}
			h.raw(">")
			h.text(tab.Label())
			h.raw("</a>")
		}
		h.raw("</nav>")
		return h.err
	})
}

// ToastBox renders t, or nothing when t is nil.
func ToastBox(t *Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if t == nil {
			return nil
		}
		bg := "bg-gray-900"
		if t.Error {
			bg = "bg-red-600"
		}
		h := &htmlWriter{w: w}
		h.raw(`<div role="status" data-toast`)
		h.attr("class", "fixed bottom-4 right-4 rounded-lg px-4 py-3 shadow-lg text-white "+bg)
		h.raw(`><p class="font-semibold">`)
		h.text(t.Title)
		h.raw("</p>")
		if t.Description != "" {
			h.raw(`<p class="text-sm opacity-90">`)
			h.text(t.Description)
			h.raw("</p>")
		}
		h.raw("</div>")
		return h.err
	})
}
