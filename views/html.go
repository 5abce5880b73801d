package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so component bodies can be
// written as straight-line code.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(b *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &writer{ctx: ctx, w: w}
		fn(b)
		return b.err
	})
}

func (b *writer) raw(parts ...string) {
	for _, p := range parts {
		if b.err != nil {
			return
		}
		_, b.err = io.WriteString(b.w, p)
	}
}

func (b *writer) text(s string) {
	b.raw(templ.EscapeString(s))
}

// urlAttrs are attributes whose values are navigated to or fetched. Their
// values go through templ.URL, as templ does for href and src.
var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"poster":     true,
	"hx-get":     true,
	"hx-post":    true,
	"hx-delete":  true,
	"data-prev":  true,
	"data-next":  true,
	"data-close": true,
	"data-light": true,
	"data-dark":  true,
}

// attr writes name="val". URL attributes are sanitized first, and every
// value is HTML-escaped exactly once here.
func (b *writer) attr(name, val string) {
	if urlAttrs[name] {
		val = string(templ.URL(val))
	}
	b.raw(" ", name, `="`, templ.EscapeString(val), `"`)
}

func (b *writer) num(n int) {
	b.raw(strconv.Itoa(n))
}

// open writes a start tag with class and optional name/value attribute pairs.
func (b *writer) open(tag, class string, attrs ...string) {
	b.raw("<", tag)
	if class != "" {
		b.attr("class", class)
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		b.attr(attrs[i], attrs[i+1])
	}
	b.raw(">")
}

func (b *writer) close(tag string) {
	b.raw("</", tag, ">")
}

func (b *writer) render(c templ.Component) {
	if b.err != nil || c == nil {
		return
	}
	b.err = c.Render(b.ctx, b.w)
}
