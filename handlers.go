package folio

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/counter"
	"github.com/eringen/folio/gallery"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/typewriter"
	"github.com/eringen/folio/views"
)

const maxRelated = 3

func (a *App) handleHome(c echo.Context) error {
	selected := content.NormalizeTags(c.QueryParams()["tag"])
	projects, err := a.Cache.ListProjects(selected)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	site := a.site()
	d := views.HomeData{
		Page: a.page(c, views.Meta{
			Title:  site.Name,
			URL:    BuildURL(site.URL),
			JSONLD: WebsiteJsonLD(site),
		}),
		Projects: projects,
		Tags:     tags,
		Selected: selected,
	}
	if isHX(c) {
		return Render(c, a.Views.HomePartial(d))
	}
	all, err := a.Cache.ListProjects(nil)
	if err != nil {
		return err
	}
	since := 0
	if a.Catalog != nil {
		since = a.Catalog.Site.Since
	}
	d.Counters = counter.FromProjects(all, since, a.now())
	d.Hero = a.hero(site)
	return Render(c, a.Views.Home(d))
}

func (a *App) phrases() []string {
	if a.Catalog == nil {
		return nil
	}
	return a.Catalog.Phrases
}

func (a *App) hero(site views.Site) views.Hero {
	phrases := a.phrases()
	return views.Hero{
		Title:    site.Name,
		Tagline:  site.Tagline,
		Phrases:  phrases,
		Schedule: typewriter.Schedule(phrases, a.Config.Typing),
	}
}

func (a *App) handleManifesto(c echo.Context) error {
	body := ""
	if a.Catalog != nil {
		body = a.Catalog.Manifesto
	}
	if strings.TrimSpace(body) == "" {
		return echo.ErrNotFound
	}
	site := a.site()
	return Render(c, a.Views.Manifesto(views.ManifestoData{
		Page: a.page(c, views.Meta{
			Title: "Manifesto",
			URL:   BuildURL(site.URL, "manifesto"),
		}),
		Body: body,
	}))
}

// projectData loads the project named by the :slug param along with its
// related work.
func (a *App) projectData(c echo.Context) (views.ProjectData, error) {
	p, err := a.Cache.GetProject(c.Param("slug"))
	if err != nil {
		return views.ProjectData{}, err
	}
	all, err := a.Cache.ListProjects(nil)
	if err != nil {
		return views.ProjectData{}, err
	}
	related := content.RelatedProjects(p, all)
	if len(related) > maxRelated {
		related = related[:maxRelated]
	}
	site := a.site()
	meta := views.Meta{
		Title:       p.Title,
		Description: p.Summary,
		URL:         BuildURL(site.URL, "projects", p.Slug),
		OGType:      "article",
		JSONLD:      CreativeWorkJsonLD(p, site),
	}
	if p.Cover.Src != "" {
		meta.Image = AbsoluteURL(site.URL, p.Cover.Src)
	}
	return views.ProjectData{
		Page:    a.page(c, meta),
		Project: p,
		Tab:     views.SelectTab(c.QueryParam("tab")),
		Related: related,
	}, nil
}

func (a *App) handleProject(c echo.Context) error {
	d, err := a.projectData(c)
	if err != nil {
		return a.notFoundOr(c, err)
	}
	if isHX(c) {
		return Render(c, a.Views.TabPanel(d))
	}
	return Render(c, a.Views.Project(d))
}

// handleLightbox renders the project page with the lightbox open. The
// gallery state machine decides the item: out-of-range indexes redirect to
// the clamped one, and ?key= applies a keyboard key for clients without
// script.
func (a *App) handleLightbox(c echo.Context) error {
	d, err := a.projectData(c)
	if err != nil {
		return a.notFoundOr(c, err)
	}
	slug := d.Project.Slug
	n := len(d.Project.Gallery)
	if n == 0 {
		return c.Redirect(http.StatusFound, views.TabURL(slug, ""))
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.ErrNotFound
	}

	g := gallery.New(n)
	g.Open(i)
	if key := c.QueryParam("key"); key != "" && g.HandleKey(key) {
		if !g.IsOpen() {
			return c.Redirect(http.StatusSeeOther, views.TabURL(slug, "gallery"))
		}
		return c.Redirect(http.StatusSeeOther, views.LightboxURL(slug, g.Current()))
	}
	if g.Current() != i {
		return c.Redirect(http.StatusFound, views.LightboxURL(slug, g.Current()))
	}

	prev, next := gallery.Neighbors(g.Current(), n)
	d.Tab = "gallery"
	d.Lightbox = &views.Lightbox{
		Index: g.Current(),
		Prev:  prev,
		Next:  next,
		Total: n,
		Item:  d.Project.Gallery[g.Current()],
	}
	d.Page.ScrollLock = g.ScrollLocked()
	if isHX(c) {
		return Render(c, a.Views.Lightbox(d))
	}
	return Render(c, a.Views.Project(d))
}

type typewriterResponse struct {
	Phrases []string           `json:"phrases"`
	Frames  []typewriter.Frame `json:"frames"`
	CycleMS int64              `json:"cycle_ms"`
}

func (a *App) handleTypewriter(c echo.Context) error {
	phrases := a.phrases()
	if phrases == nil {
		phrases = []string{}
	}
	frames := typewriter.Schedule(phrases, a.Config.Typing)
	var total int64
	for _, f := range frames {
		total += f.DelayMS
	}
	return c.JSON(http.StatusOK, typewriterResponse{Phrases: phrases, Frames: frames, CycleMS: total})
}

// handleThemeToggle flips the theme (or applies an explicit theme field) and
// redirects back to the page the form was posted from.
func (a *App) handleThemeToggle(c echo.Context) error {
	next, ok := theme.Parse(c.FormValue("theme"))
	if !ok {
		next = ThemeOf(c).Toggle()
	}
	a.setThemeCookie(c, next)
	if isHX(c) {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, safeReturn(c.FormValue("return")))
}

func (a *App) handleSitemap(c echo.Context) error {
	projects, err := a.Cache.ListProjects(nil)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, projects)
}

func (a *App) handleFeed(c echo.Context) error {
	projects, err := a.Cache.ListProjects(nil)
	if err != nil {
		return err
	}
	return a.renderRSS(c, projects)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "favicon.svg"))
}

// handleRobots serves public/robots.txt, or a default that keeps crawlers
// out of the admin and points at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + AbsoluteURL(a.Config.URL, "/sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) notFoundOr(c echo.Context, err error) error {
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, views.Meta{})))
	}
	return err
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, views.Meta{})))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c, views.Meta{})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
