package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

// LayoutPage wraps content in the document shell and navigation.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(data.Title)
		h.raw("</title>")
		h.raw("<script src=\"https://unpkg.com/htmx.org@2.0.4\"></script>")
		h.raw("<script src=\"https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4\"></script>")
		h.raw("</head><body class=\"min-h-screen bg-gray-50 text-gray-900\" hx-boost=\"true\">")

		h.raw("<nav class=\"border-b bg-white\"><div class=\"mx-auto flex max-w-5xl items-center justify-between px-4 py-3\">")
		h.raw("<a href=\"/\" class=\"text-lg font-semibold\">Pet Portal</a><ul class=\"flex items-center gap-4\">")
		for _, item := range data.Nav.Items {
			h.raw("<li><a")
			h.attr("href", item.URL)
			if item.Name == data.ActiveNav {
				h.class("text-sm text-gray-600 hover:text-gray-900", "font-semibold text-indigo-600")
				h.attr("aria-current", "page")
			} else {
				h.class("text-sm text-gray-600 hover:text-gray-900")
			}
			h.raw(">")
			h.text(item.Name)
			h.raw("</a></li>")
		}
		if data.User != nil {
			h.raw("<li class=\"text-sm text-gray-500\" data-user>")
			h.text(data.User.Username)
			h.raw("</li><li><form method=\"post\" action=\"/logout\">")
			h.submit("Log out", "bg-gray-200 text-gray-800 hover:bg-gray-300 px-3 py-1")
			h.raw("</form></li>")
		}
		h.raw("</ul></div></nav>")

		h.raw("<main id=\"content\" class=\"mx-auto max-w-5xl px-4 py-8\">")
		h.component(data.Content)
		h.raw("</main></body></html>")
		return h.err
	})
}

// ErrorPage renders a status page for failures that have no form to return to.
func ErrorPage(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw("<section class=\"mx-auto max-w-md space-y-4 text-center\"><h1")
		h.attr("class", "text-4xl font-bold")
		h.attr("data-status", itoa(int64(status)))
		h.raw(">")
		h.text(itoa(int64(status)))
		h.raw("</h1>")
		h.alert("error", message)
		h.raw("<a href=\"/\" class=\"text-indigo-600 hover:underline\">Back to start</a></section>")
		return h.err
	})
}
