package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio/markdown"
)

// Manifesto renders the long-form statement page.
func Manifesto(d ManifestoData) templ.Component {
	return Layout(d.Page, component(func(b *writer) {
		b.open("article", "manifesto prose", "data-reveal", "")
		b.raw(`<h1 class="page-title">Manifesto</h1>`)
		b.render(markdown.Markdown(d.Body))
		b.close("article")
	}))
}
