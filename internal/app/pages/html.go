// Package pages holds the HTML components rendered by the portal. Components
// are plain templ.Component values so they compose with the layout and can be
// rendered in isolation by tests.
package pages

import (
	"context"
	"io"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	inputClass  = "w-full rounded border border-gray-300 px-3 py-2 text-sm focus:border-indigo-500 focus:outline-none"
	buttonClass = "rounded bg-indigo-600 px-4 py-2 text-sm font-medium text-white hover:bg-indigo-700"
	labelClass  = "block text-sm font-medium text-gray-700"
	alertClass  = "rounded border px-4 py-3 text-sm"
)

// Label renders a stored value such as a species or role for display.
// Casers are stateful, so each call gets its own.
func Label(s string) string {
	return cases.Title(language.English).String(s)
}

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) class(classes ...string) {
	h.attr("class", twmerge.Merge(classes...))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *htmlWriter) alert(kind, message string) {
	if message == "" {
		return
	}
	tone := "border-red-300 bg-red-50 text-red-800"
	if kind == "success" {
		tone = "border-green-300 bg-green-50 text-green-800"
	}
	h.raw("<div")
	h.attr("role", "alert")
	h.attr("data-kind", kind)
	h.class(alertClass, tone)
	h.raw(">")
	h.text(message)
	h.raw("</div>")
}

// input renders a labelled field. fieldErr, when set, is shown under the
// field and switches the border to the error tone.
func (h *htmlWriter) input(typ, name, label, value, fieldErr string, extra ...string) {
	h.raw("<div class=\"space-y-1\"><label")
	h.attr("for", name)
	h.attr("class", labelClass)
	h.raw(">")
	h.text(label)
	h.raw("</label><input")
	h.attr("type", typ)
	h.attr("id", name)
	h.attr("name", name)
	if value != "" {
		h.attr("value", value)
	}
	if fieldErr != "" {
		h.class(inputClass, "border-red-500")
		h.attr("aria-invalid", "true")
	} else {
		h.class(inputClass)
	}
	for i := 0; i+1 < len(extra); i += 2 {
		h.attr(extra[i], extra[i+1])
	}
	h.raw(">")
	if fieldErr != "" {
		h.raw("<p")
		h.attr("data-error-for", name)
		h.attr("class", "text-xs text-red-600")
		h.raw(">")
		h.text(fieldErr)
		h.raw("</p>")
	}
	h.raw("</div>")
}

func (h *htmlWriter) submit(label string, extraClass ...string) {
	h.raw("<button type=\"submit\"")
	h.class(append([]string{buttonClass}, extraClass...)...)
	h.raw(">")
	h.text(label)
	h.raw("</button>")
}

func (h *htmlWriter) hidden(name, value string) {
	h.raw("<input type=\"hidden\"")
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
