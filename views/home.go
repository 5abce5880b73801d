package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/counter"
)

// Home is the full landing page.
func Home(d HomeData) templ.Component {
	return Layout(d.Page, component(func(b *writer) {
		b.render(HeroSection(d.Hero))
		b.render(Counters(d.Counters))
		b.render(HomePartial(d))
	}))
}

// HomePartial is the filterable work section, swapped in place on HX-Request.
func HomePartial(d HomeData) templ.Component {
	return component(func(b *writer) {
		b.open("section", "work", "id", "work", "aria-labelledby", "work-title")
		b.raw(`<h2 id="work-title" class="section-title">Selected work</h2>`)
		b.render(TagFilter(d.Tags, d.Selected))
		b.render(ProjectGrid(d.Page, d.Projects, d.Selected))
		b.close("section")
	})
}

// HeroSection renders the banner. The phrase schedule rides along as JSON for
// the client to replay; without script the last committed state is visible.
func HeroSection(h Hero) templ.Component {
	return component(func(b *writer) {
		b.open("section", "hero", "data-reveal", "")
		b.open("h1", "hero-title")
		b.text(h.Title)
		b.close("h1")
		if h.Tagline != "" {
			b.open("p", "hero-tagline")
			b.text(h.Tagline)
			b.close("p")
		}
		if len(h.Phrases) > 0 {
			b.open("div", "typewriter", "data-typewriter", jsonAttr(h.Schedule), "aria-live", "off")
			b.open("ul", "typewriter-committed", "aria-label", "Focus areas")
			for _, p := range h.Phrases {
				b.open("li", TagClass(false))
				b.text(p)
				b.close("li")
			}
			b.close("ul")
			b.raw(`<span class="typewriter-line" aria-hidden="true"></span><span class="typewriter-caret" aria-hidden="true">|</span>`)
			b.close("div")
		}
		b.close("section")
	})
}

// Counters renders the headline statistics. The markup holds the final
// values; data-frames lets the script count up once the block is visible.
func Counters(cs []counter.Counter) templ.Component {
	return component(func(b *writer) {
		if len(cs) == 0 {
			return
		}
		b.open("section", "counters", "aria-label", "At a glance")
		b.raw(`<dl class="counter-list">`)
		for _, c := range cs {
			b.open("div", "counter", "data-reveal", "", "data-frames", jsonAttr(counter.Frames(c.Target, counter.DefaultSteps)), "data-suffix", c.Suffix)
			b.open("dt", "counter-label")
			b.text(c.Label)
			b.close("dt")
			b.open("dd", "counter-value")
			b.num(c.Target)
			b.text(c.Suffix)
			b.close("dd")
			b.close("div")
		}
		b.raw("</dl>")
		b.close("section")
	})
}

// TagFilter renders the filter chips; each chip links to the selection with
// that tag toggled.
func TagFilter(tags, selected []string) templ.Component {
	return component(func(b *writer) {
		if len(tags) == 0 {
			return
		}
		b.open("nav", "tag-filter", "aria-label", "Filter by tag")
		for _, t := range tags {
			active := contains(selected, t)
			href := ToggleURL(selected, t)
			attrs := []string{"href", href, "hx-get", href, "hx-target", "#work", "hx-swap", "outerHTML", "hx-push-url", "true"}
			if active {
				attrs = append(attrs, "aria-pressed", "true")
			} else {
				attrs = append(attrs, "aria-pressed", "false")
			}
			b.open("a", TagClass(active), attrs...)
			b.text(t)
			b.close("a")
		}
		if len(selected) > 0 {
			b.open("a", "tag-clear", "href", "/", "hx-get", "/", "hx-target", "#work", "hx-swap", "outerHTML", "hx-push-url", "true")
			b.raw("Clear")
			b.close("a")
		}
		b.close("nav")
	})
}

// ProjectGrid renders the project cards, or an empty state naming the filter.
func ProjectGrid(p Page, projects []content.Project, selected []string) templ.Component {
	return component(func(b *writer) {
		if len(projects) == 0 {
			b.open("p", "empty-state")
			if len(selected) > 0 {
				b.raw("No projects match ")
				b.text(JoinTags(selected))
				b.raw(". ")
				b.raw(`<a href="/">Show all work</a>`)
			} else {
				b.raw("Nothing published yet.")
			}
			b.close("p")
			return
		}
		b.open("ul", "project-grid", "data-count", strconv.Itoa(len(projects)))
		for i, pr := range projects {
			b.open("li", "project-grid-item", "data-reveal", "")
			b.render(ProjectCard(p, pr, i > 1))
			b.close("li")
		}
		b.close("ul")
	})
}

// ProjectCard is one entry in the grid.
func ProjectCard(p Page, pr content.Project, lazy bool) templ.Component {
	return component(func(b *writer) {
		class := "project-card"
		if pr.Featured {
			class += " project-card-featured"
		}
		b.open("article", class)
		b.open("a", "project-card-link", "href", pr.Link())
		if pr.Cover.Src != "" {
			media(b, p, pr.Cover, "project-card-cover", lazy)
		}
		b.open("h3", "project-card-title")
		b.text(pr.Title)
		b.close("h3")
		b.close("a")
		if pr.Summary != "" {
			b.open("p", "project-card-summary")
			b.text(pr.Summary)
			b.close("p")
		}
		b.open("p", "project-card-meta")
		if pr.Year > 0 {
			b.num(pr.Year)
		}
		b.close("p")
		tagList(b, pr.Tags)
		b.close("article")
	})
}

func tagList(b *writer, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.open("ul", "tag-list")
	for _, t := range tags {
		b.open("li", "")
		b.open("a", TagClass(false), "href", FilterURL([]string{t}))
		b.text(t)
		b.close("a")
		b.close("li")
	}
	b.close("ul")
}

// media writes an image or video for the page theme. Both variants are kept
// in data attributes so the script can swap them when the theme toggles.
func media(b *writer, p Page, m content.Media, class string, lazy bool) {
	pair := p.Asset(m)
	src := pair.Select(p.Theme)
	attrs := []string{"src", src, "data-light", pair.Light}
	if pair.Dark != "" {
		attrs = append(attrs, "data-dark", pair.Dark)
	}
	if m.Width > 0 && m.Height > 0 {
		attrs = append(attrs, "width", strconv.Itoa(m.Width), "height", strconv.Itoa(m.Height))
	}
	if m.IsVideo() {
		attrs = append(attrs, "muted", "", "loop", "", "playsinline", "", "autoplay", "", "preload", "metadata")
		if m.Alt != "" {
			attrs = append(attrs, "aria-label", m.Alt)
		}
		b.open("video", class, attrs...)
		b.close("video")
		return
	}
	attrs = append(attrs, "alt", m.Alt, "decoding", "async")
	if lazy {
		attrs = append(attrs, "loading", "lazy")
	}
	b.open("img", class, attrs...)
}
