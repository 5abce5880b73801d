package views

import "github.com/a-h/templ"

// NotFound is rendered for unknown routes and missing projects.
func NotFound(p Page) templ.Component {
	p.Meta = Meta{Title: "Not found"}
	return Layout(p, errorBody("404", "This page does not exist.", "It may have moved, or the link is wrong."))
}

// ServerError is rendered for 5xx responses. It never shows error details.
func ServerError(p Page) templ.Component {
	p.Meta = Meta{Title: "Something went wrong"}
	return Layout(p, errorBody("500", "Something went wrong.", "Please try again in a moment."))
}

func errorBody(code, title, hint string) templ.Component {
	return component(func(b *writer) {
		b.open("section", "error-page")
		b.open("p", "error-code")
		b.text(code)
		b.close("p")
		b.open("h1", "page-title")
		b.text(title)
		b.close("h1")
		b.open("p", "")
		b.text(hint)
		b.close("p")
		b.raw(`<a class="button" href="/">Back to the work</a>`)
		b.close("section")
	})
}
