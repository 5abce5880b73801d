package folio

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, projects []content.Project) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base), ChangeFreq: "weekly", Priority: "1.0"},
	}
	if a.Catalog != nil && strings.TrimSpace(a.Catalog.Manifesto) != "" {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "manifesto"), ChangeFreq: "yearly", Priority: "0.5"})
	}
	for _, p := range projects {
		priority := "0.7"
		if p.Featured {
			priority = "0.9"
		}
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, "projects", p.Slug),
			ChangeFreq: "monthly",
			Priority:   priority,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
