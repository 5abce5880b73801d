package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// projectPubDate dates a project at the start of its year; projects carry
// no finer date.
func projectPubDate(year int) string {
	if year <= 0 {
		return ""
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC1123Z)
}

func (a *App) renderRSS(c echo.Context, projects []content.Project) error {
	site := a.site()
	items := make([]rssItem, 0, len(projects))
	for _, p := range projects {
		projectURL := BuildURL(site.URL, "projects", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        projectURL,
			Description: p.Summary,
			PubDate:     projectPubDate(p.Year),
			GUID:        projectURL,
			Categories:  p.Tags,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        BuildURL(site.URL),
			Description: site.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
