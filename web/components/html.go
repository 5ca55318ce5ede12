package components

import (
	"context"
	"fmt"
	"io"
	"net/url"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/api"
)

// HTML accumulates markup and remembers the first write error, so
// components can be written as straight-line code.
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{ctx: ctx, w: w}
}

// Raw writes trusted markup.
func (h *HTML) Raw(s string) *HTML {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

// Rawf writes trusted markup with escaped arguments. URL attributes take a
// templ.SafeURL, built with templ.URL so unsafe schemes never reach them.
func (h *HTML) Rawf(format string, args ...any) *HTML {
	esc := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			esc[i] = templ.EscapeString(v)
		case templ.SafeURL:
			esc[i] = templ.EscapeString(string(v))
		default:
			esc[i] = v
		}
	}
	return h.Raw(fmt.Sprintf(format, esc...))
}

// Text writes escaped text.
func (h *HTML) Text(s string) *HTML {
	return h.Raw(templ.EscapeString(s))
}

// Open writes an opening tag with a merged class list.
func (h *HTML) Open(tag string, classes ...string) *HTML {
	return h.Rawf(`<%s class="%s">`, tag, Class(classes...))
}

func (h *HTML) Close(tag string) *HTML {
	return h.Raw("</" + tag + ">")
}

// Render writes a child component.
func (h *HTML) Render(c templ.Component) *HTML {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
	return h
}

func (h *HTML) Err() error { return h.err }

// QRURL is the dashboard URL of a code with suffix appended.
func QRURL(id api.ID, suffix string) templ.SafeURL {
	return templ.URL("/dashboard/qr/" + url.PathEscape(id.String()) + suffix)
}

// Class merges tailwind class lists; later classes win conflicts.
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}

// Func adapts a straight-line writer to templ.Component.
func Func(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(ctx, w)
		fn(h)
		return h.Err()
	})
}

// Group renders components one after another.
func Group(children ...templ.Component) templ.Component {
	return Func(func(h *HTML) {
		for _, c := range children {
			h.Render(c)
		}
	})
}
