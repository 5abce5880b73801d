// Package views holds the default templ components for every folio page and
// the view models handlers pass into them.
package views

import (
	"github.com/eringen/folio/analytics"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/counter"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/typewriter"
)

// Site holds site-wide settings every page needs.
type Site struct {
	Name        string
	Tagline     string
	Description string
	Author      string
	URL         string
	Analytics   analytics.Script
	Collect     bool   // first-party collector enabled
	Htmx        string // htmx script URL; empty leaves htmx out
}

// Meta carries per-page OpenGraph and SEO metadata into the <head>.
type Meta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// Page is the per-request frame shared by every full page.
type Page struct {
	Site       Site
	Meta       Meta
	Theme      theme.Theme
	Path       string
	CSRF       string
	ScrollLock bool
	Assets     *theme.Resolver
}

// Asset resolves m to its light/dark pair.
func (p Page) Asset(m content.Media) theme.Asset {
	if p.Assets == nil {
		return theme.Asset{Light: m.Src, Dark: m.Dark}
	}
	return p.Assets.ResolvePair(m.Src, m.Dark)
}

// Src picks the path of m for the page's theme.
func (p Page) Src(m content.Media) string {
	return p.Asset(m).Select(p.Theme)
}

// Hero is the home page banner with its typewriter phrases.
type Hero struct {
	Title    string
	Tagline  string
	Phrases  []string
	Schedule []typewriter.Frame
}

// HomeData feeds the home page.
type HomeData struct {
	Page
	Hero     Hero
	Counters []counter.Counter
	Projects []content.Project
	Tags     []string
	Selected []string
}

// ProjectData feeds the case-study page, its tab panels and the lightbox.
type ProjectData struct {
	Page
	Project  content.Project
	Tab      string
	Related  []content.Project
	Lightbox *Lightbox
}

// Lightbox is the open lightbox state rendered over a project page.
type Lightbox struct {
	Index int
	Prev  int
	Next  int
	Total int
	Item  content.Media
}

// ManifestoData feeds the manifesto page.
type ManifestoData struct {
	Page
	Body string
}

// Image is an uploaded file shown in the admin media library.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// AdminData feeds the admin dashboard.
type AdminData struct {
	Page
	Projects []content.Project
	Message  string
}

// AdminFormData feeds the project editor.
type AdminFormData struct {
	Page
	Project content.Project
	IsNew   bool
}

// AdminImagesData feeds the media library.
type AdminImagesData struct {
	Page
	Images []Image
}
