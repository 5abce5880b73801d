package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

// ProjectPage is a full case-study page, with the lightbox overlay when
// d.Lightbox is set.
func ProjectPage(d ProjectData) templ.Component {
	d.Page.ScrollLock = d.Lightbox != nil
	return Layout(d.Page, component(func(b *writer) {
		pr := d.Project
		b.open("article", "case-study", "data-slug", pr.Slug)
		b.open("header", "case-study-header", "data-reveal", "")
		b.raw(`<p class="breadcrumb"><a href="/">Work</a></p>`)
		b.open("h1", "case-study-title")
		b.text(pr.Title)
		b.close("h1")
		if pr.Summary != "" {
			b.open("p", "case-study-summary")
			b.text(pr.Summary)
			b.close("p")
		}
		tagList(b, pr.Tags)
		b.close("header")
		if pr.Cover.Src != "" {
			b.open("figure", "case-study-cover")
			media(b, d.Page, pr.Cover, "case-study-cover-media", false)
			b.close("figure")
		}
		b.render(TabBar(pr.Slug, SelectTab(d.Tab)))
		b.render(TabPanel(d))
		b.close("article")
		b.render(RelatedProjects(d.Page, d.Related))
		if d.Lightbox != nil {
			b.render(LightboxOverlay(d))
		}
	}))
}

// TabBar renders the tab links. Each link is a real URL so tabs work without
// script; with htmx the panel is swapped and the bar follows out of band.
func TabBar(slug, active string) templ.Component {
	return component(func(b *writer) {
		tabBar(b, slug, active, false)
	})
}

func tabBar(b *writer, slug, active string, oob bool) {
	attrs := []string{"id", "tabs", "role", "tablist", "aria-label", "Case study sections"}
	if oob {
		attrs = append(attrs, "hx-swap-oob", "true")
	}
	b.open("nav", "tabs", attrs...)
	for _, t := range Tabs {
		href := TabURL(slug, t.ID)
		selected := "false"
		class := "tab"
		if t.ID == active {
			selected = "true"
			class += " tab-active"
		}
		b.open("a", class, "role", "tab", "id", "tab-"+t.ID, "href", href,
			"aria-selected", selected, "aria-controls", "tab-panel",
			"hx-get", href, "hx-target", "#tab-panel", "hx-swap", "outerHTML", "hx-push-url", "true")
		b.text(t.Label)
		b.close("a")
	}
	b.close("nav")
}

// TabSwap is the htmx response to a tab click: the new panel plus the tab
// bar, swapped out of band so the selected state moves with it.
func TabSwap(d ProjectData) templ.Component {
	return component(func(b *writer) {
		b.render(TabPanel(d))
		tabBar(b, d.Project.Slug, SelectTab(d.Tab), true)
	})
}

// TabPanel renders the body of the selected tab.
func TabPanel(d ProjectData) templ.Component {
	return component(func(b *writer) {
		tab := SelectTab(d.Tab)
		b.open("section", "tab-panel", "id", "tab-panel", "role", "tabpanel", "aria-labelledby", "tab-"+tab, "data-tab", tab)
		switch tab {
		case "gallery":
			b.render(GalleryGrid(d.Page, d.Project))
		case "details":
			details(b, d.Project)
		default:
			b.open("div", "prose")
			b.render(markdown.Markdown(d.Project.Body))
			b.close("div")
		}
		b.close("section")
	})
}

func details(b *writer, pr content.Project) {
	b.raw(`<dl class="details">`)
	if pr.Role != "" {
		b.raw("<dt>Role</dt><dd>")
		b.text(pr.Role)
		b.raw("</dd>")
	}
	if pr.Year > 0 {
		b.raw("<dt>Year</dt><dd>")
		b.num(pr.Year)
		b.raw("</dd>")
	}
	if len(pr.Tags) > 0 {
		b.raw("<dt>Stack</dt><dd>")
		b.text(JoinTags(pr.Tags))
		b.raw("</dd>")
	}
	b.raw("</dl>")
	if len(pr.Links) > 0 {
		b.open("ul", "project-links")
		for _, l := range pr.Links {
			b.raw("<li>")
			b.open("a", "project-link", "href", markdown.SafeURL(l.URL), "target", "_blank", "rel", "noopener noreferrer")
			b.text(l.Label)
			b.close("a")
			b.raw("</li>")
		}
		b.close("ul")
	}
}

// GalleryGrid renders thumbnails that open the lightbox at their index.
func GalleryGrid(p Page, pr content.Project) templ.Component {
	return component(func(b *writer) {
		if len(pr.Gallery) == 0 {
			b.raw(`<p class="empty-state">No gallery for this project.</p>`)
			return
		}
		b.open("ul", "gallery-grid", "data-gallery", strconv.Itoa(len(pr.Gallery)))
		for i, m := range pr.Gallery {
			href := LightboxURL(pr.Slug, i)
			b.open("li", "gallery-item", "data-reveal", "")
			b.open("a", "gallery-link", "href", href, "data-index", strconv.Itoa(i),
				"hx-get", href, "hx-target", "#lightbox-root", "hx-swap", "innerHTML")
			media(b, p, m, "gallery-thumb", i > 2)
			b.close("a")
			if m.Caption != "" {
				b.open("p", "gallery-caption")
				b.text(m.Caption)
				b.close("p")
			}
			b.close("li")
		}
		b.close("ul")
		b.raw(`<div id="lightbox-root"></div>`)
	})
}

// LightboxOverlay renders the open lightbox for d.Lightbox. The prev/next
// links already carry the wrapped indexes.
func LightboxOverlay(d ProjectData) templ.Component {
	return component(func(b *writer) {
		lb := d.Lightbox
		if lb == nil {
			return
		}
		slug := d.Project.Slug
		closeURL := TabURL(slug, "gallery")
		b.open("div", "lightbox", "id", "lightbox", "role", "dialog", "aria-modal", "true",
			"aria-label", "Gallery", "data-lightbox", "",
			"data-prev", LightboxURL(slug, lb.Prev), "data-next", LightboxURL(slug, lb.Next),
			"data-close", closeURL)
		b.open("a", "lightbox-close", "href", closeURL, "aria-label", "Close")
		b.raw("&times;")
		b.close("a")
		b.open("figure", "lightbox-figure")
		media(b, d.Page, lb.Item, "lightbox-media", false)
		b.open("figcaption", "lightbox-caption")
		if lb.Item.Caption != "" {
			b.text(lb.Item.Caption)
			b.raw(" ")
		}
		b.open("span", "lightbox-count")
		b.num(lb.Index + 1)
		b.raw(" / ")
		b.num(lb.Total)
		b.close("span")
		b.close("figcaption")
		b.close("figure")
		if lb.Total > 1 {
			b.open("a", "lightbox-prev", "href", LightboxURL(slug, lb.Prev), "rel", "prev", "aria-label", "Previous")
			b.raw("&larr;")
			b.close("a")
			b.open("a", "lightbox-next", "href", LightboxURL(slug, lb.Next), "rel", "next", "aria-label", "Next")
			b.raw("&rarr;")
			b.close("a")
		}
		b.close("div")
	})
}

// RelatedProjects lists other projects sharing a tag.
func RelatedProjects(p Page, related []content.Project) templ.Component {
	return component(func(b *writer) {
		if len(related) == 0 {
			return
		}
		b.open("aside", "related", "aria-labelledby", "related-title")
		b.raw(`<h2 id="related-title" class="section-title">Related work</h2>`)
		b.open("ul", "project-grid")
		for _, pr := range related {
			b.open("li", "project-grid-item")
			b.render(ProjectCard(p, pr, true))
			b.close("li")
		}
		b.close("ul")
		b.close("aside")
	})
}
