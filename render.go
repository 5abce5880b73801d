package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/analytics"
	"github.com/eringen/folio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// isHX reports whether the request came from htmx and wants a fragment.
func isHX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// site merges configured identity over the content file's site block.
func (a *App) site() views.Site {
	s := views.Site{
		Name:        a.Config.Name,
		Tagline:     a.Config.Tagline,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		URL:         a.Config.URL,
		Analytics: analytics.Script{
			Src:    a.Config.AnalyticsScriptURL,
			SiteID: a.Config.AnalyticsSiteID,
		},
		Collect: a.Config.AnalyticsEnabled,
		Htmx:    a.htmxSrc,
	}
	if a.Catalog != nil {
		info := a.Catalog.Site
		if s.Name == "" {
			s.Name = info.Name
		}
		if s.Tagline == "" {
			s.Tagline = info.Tagline
		}
		if s.Description == "" {
			s.Description = info.Description
		}
		if s.Author == "" {
			s.Author = info.Author
		}
	}
	if s.Name == "" {
		s.Name = "Portfolio"
	}
	return s
}

// page builds the per-request frame shared by every full page.
func (a *App) page(c echo.Context, meta views.Meta) views.Page {
	return views.Page{
		Site:   a.site(),
		Meta:   meta,
		Theme:  ThemeOf(c),
		Path:   c.Request().URL.Path,
		CSRF:   CsrfToken(c),
		Assets: a.Assets,
	}
}
