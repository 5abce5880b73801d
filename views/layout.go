package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/theme"
)

// Layout wraps body in the document shell: head metadata, the third-party
// analytics tag, navigation, and the theme toggle.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(b *writer) {
		b.raw("<!doctype html>")
		b.open("html", string(p.Theme), "lang", "en", "data-theme", string(p.Theme))
		head(b, p)
		bodyClass := "min-h-screen antialiased"
		if p.ScrollLock {
			bodyClass += " overflow-hidden"
		}
		b.open("body", bodyClass, "data-collect", collectFlag(p.Site.Collect))
		nav(b, p)
		b.open("main", "site-main", "id", "main")
		b.render(body)
		b.close("main")
		footer(b, p)
		b.close("body")
		b.close("html")
	})
}

func head(b *writer, p Page) {
	title := p.Site.Name
	if p.Meta.Title != "" && p.Meta.Title != p.Site.Name {
		title = p.Meta.Title + " | " + p.Site.Name
	}
	desc := p.Meta.Description
	if desc == "" {
		desc = p.Site.Description
	}
	ogType := p.Meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	b.raw("<head>")
	b.raw(`<meta charset="utf-8">`)
	b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.raw(`<meta name="color-scheme" content="light dark">`)
	b.raw("<title>")
	b.text(title)
	b.raw("</title>")
	if desc != "" {
		b.raw(`<meta name="description"`)
		b.attr("content", desc)
		b.raw(">")
	}
	if p.Meta.URL != "" {
		b.raw(`<link rel="canonical"`)
		b.attr("href", p.Meta.URL)
		b.raw(">")
		b.raw(`<meta property="og:url"`)
		b.attr("content", p.Meta.URL)
		b.raw(">")
	}
	b.raw(`<meta property="og:title"`)
	b.attr("content", title)
	b.raw(`><meta property="og:type"`)
	b.attr("content", ogType)
	b.raw(">")
	if p.Meta.Image != "" {
		b.raw(`<meta property="og:image"`)
		b.attr("content", p.Meta.Image)
		b.raw(">")
	}
	b.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
	b.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
	b.attr("title", p.Site.Name)
	b.raw(">")
	b.raw(`<link rel="stylesheet" href="/public/styles.css">`)
	if p.Meta.JSONLD != "" {
		// json.Marshal escapes <, > and &, so the payload cannot close the tag.
		b.raw(`<script type="application/ld+json">`, p.Meta.JSONLD, `</script>`)
	}
	b.render(p.Site.Analytics.Tag())
	if p.Site.Htmx != "" {
		b.raw("<script defer")
		b.attr("src", p.Site.Htmx)
		b.raw("></script>")
	}
	b.raw(`<script defer src="/public/folio.js"></script>`)
	b.raw("</head>")
}

var navLinks = []struct{ href, label string }{
	{"/", "Work"},
	{"/manifesto/", "Manifesto"},
}

func nav(b *writer, p Page) {
	b.open("header", "site-header")
	b.raw(`<a class="skip-link" href="#main">Skip to content</a>`)
	b.open("a", "site-name", "href", "/")
	b.text(p.Site.Name)
	b.close("a")
	b.open("nav", "site-nav", "aria-label", "Primary")
	for _, l := range navLinks {
		active := l.href == p.Path || (l.href != "/" && strings.HasPrefix(p.Path, l.href))
		attrs := []string{"href", l.href}
		if active {
			attrs = append(attrs, "aria-current", "page")
		}
		b.open("a", "nav-link", attrs...)
		b.text(l.label)
		b.close("a")
	}
	b.close("nav")
	themeToggle(b, p)
	b.close("header")
}

func themeToggle(b *writer, p Page) {
	next := p.Theme.Toggle()
	label := "Switch to dark theme"
	if next == theme.Light {
		label = "Switch to light theme"
	}
	b.open("form", "theme-toggle", "method", "post", "action", "/theme/")
	b.raw(`<input type="hidden" name="_csrf"`)
	b.attr("value", p.CSRF)
	b.raw(`><input type="hidden" name="return"`)
	b.attr("value", p.Path)
	b.raw(">")
	b.open("button", "theme-toggle-button", "type", "submit", "aria-label", label, "data-theme-next", string(next))
	if next == theme.Dark {
		b.raw("&#9790;")
	} else {
		b.raw("&#9728;")
	}
	b.close("button")
	b.close("form")
}

func footer(b *writer, p Page) {
	b.open("footer", "site-footer")
	b.open("p", "")
	b.raw("&copy; ")
	author := p.Site.Author
	if author == "" {
		author = p.Site.Name
	}
	b.text(author)
	b.close("p")
	b.raw(`<a href="/feed.xml">RSS</a>`)
	b.close("footer")
}

func collectFlag(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
