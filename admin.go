package folio

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.page(c, views.Meta{}), false))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminForm(views.AdminFormData{
		Page:    a.page(c, views.Meta{}),
		Project: content.Project{Published: true},
		IsNew:   true,
	}))
}

func (a *App) handleAdminProject(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	p, err := a.Store.GetProjectAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, a.Views.AdminForm(views.AdminFormData{
		Page:    a.page(c, views.Meta{}),
		Project: p,
	}))
}

// handleAdminLogin counts only failed attempts against the per-IP limit.
func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("failed admin login from %s", ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.page(c, views.Meta{}), true))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// projectFromForm reads the editor form. The returned message is non-empty
// when the input is rejected.
func projectFromForm(c echo.Context) (content.Project, string) {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return content.Project{}, "Title is required."
	}
	slug := content.Slugify(c.FormValue("slug"))
	if slug == "" {
		slug = content.Slugify(title)
	}
	if slug == "" {
		return content.Project{}, "Slug is required. Add a title or slug."
	}
	tags := content.NormalizeTags(FilterEmpty(strings.Split(c.FormValue("tags"), ",")))
	if len(tags) == 0 {
		return content.Project{}, "At least one tag is required."
	}
	p := content.Project{
		Slug:    slug,
		Title:   title,
		Summary: strings.TrimSpace(c.FormValue("summary")),
		Body:    c.FormValue("body"),
		Role:    strings.TrimSpace(c.FormValue("role")),
		Year:    atoiDefault(c.FormValue("year"), 0),
		Order:   atoiDefault(c.FormValue("order"), 0),
		Tags:    tags,
		Cover: content.Media{
			Kind: content.KindImage,
			Src:  strings.TrimSpace(c.FormValue("cover_src")),
			Dark: strings.TrimSpace(c.FormValue("cover_dark")),
			Alt:  strings.TrimSpace(c.FormValue("cover_alt")),
		},
		Gallery:   parseMediaList(c.FormValue("gallery")),
		Links:     parseLinkList(c.FormValue("links")),
		Featured:  c.FormValue("featured") != "",
		Published: c.FormValue("published") != "",
	}
	if p.Cover.IsVideo() {
		p.Cover.Kind = content.KindVideo
	}
	p.Draft = !p.Published
	return p, ""
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	p, msg := projectFromForm(c)
	if msg != "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
	}
	orig := c.FormValue("original_slug")
	if orig != p.Slug {
		taken, err := a.slugTaken(p.Slug)
		if err != nil {
			return err
		}
		if taken {
			c.Logger().Warnf("admin save rejected: slug %s already in use", p.Slug)
			return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("Slug \""+p.Slug+"\" is already in use."))
		}
	}
	if err := a.Store.SaveProject(p); err != nil {
		return err
	}
	// A changed slug renames the project.
	if orig != "" && orig != p.Slug {
		if err := a.Store.DeleteProject(orig); err != nil {
			return err
		}
	}
	a.Cache.Invalidate()
	c.Logger().Infof("admin saved project %s", p.Slug)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=saved")
}

// slugTaken reports whether any project, draft or published, owns slug.
func (a *App) slugTaken(slug string) (bool, error) {
	_, err := a.Store.GetProjectAny(slug)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeleteProject(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	c.Logger().Infof("admin deleted project %s", slug)
	if isHX(c) {
		c.Response().Header().Set("HX-Redirect", "/admin/?msg=deleted")
		return c.NoContent(http.StatusOK)
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	projects, err := a.Store.ListAllProjects()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(views.AdminData{
		Page:     a.page(c, views.Meta{}),
		Projects: projects,
		Message:  msg,
	}))
}
