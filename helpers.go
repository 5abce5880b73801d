package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsoluteURL resolves a site-relative path such as "/public/a.png"
// against base. Absolute URLs are returned unchanged.
func AbsoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// safeReturn accepts only same-site absolute paths as redirect targets.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

// parseMediaList reads the editor's "src | dark | alt | caption" lines.
func parseMediaList(s string) []content.Media {
	var out []content.Media
	for _, line := range strings.Split(s, "\n") {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" {
			continue
		}
		m := content.Media{Src: parts[0]}
		if len(parts) > 1 {
			m.Dark = parts[1]
		}
		if len(parts) > 2 {
			m.Alt = parts[2]
		}
		if len(parts) > 3 {
			m.Caption = strings.Join(parts[3:], " | ")
		}
		m.Kind = content.KindImage
		if m.IsVideo() {
			m.Kind = content.KindVideo
		}
		out = append(out, m)
	}
	return out
}

// parseLinkList reads the editor's "label | url" lines. A bare URL is its
// own label.
func parseLinkList(s string) []content.Link {
	var out []content.Link
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, target, ok := strings.Cut(line, "|")
		if !ok {
			out = append(out, content.Link{Label: line, URL: line})
			continue
		}
		out = append(out, content.Link{Label: strings.TrimSpace(label), URL: strings.TrimSpace(target)})
	}
	return out
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema.
func WebsiteJsonLD(site views.Site) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         BuildURL(site.URL),
		"description": site.Description,
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	return marshalJSONLD(data)
}

// CreativeWorkJsonLD returns a JSON-LD string describing a project.
func CreativeWorkJsonLD(p content.Project, site views.Site) string {
	projectURL := BuildURL(site.URL, "projects", p.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        p.Title,
		"headline":    p.Title,
		"description": p.Summary,
		"url":         projectURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   projectURL,
		},
	}
	if p.Year > 0 {
		data["dateCreated"] = strconv.Itoa(p.Year)
	}
	if p.Cover.Src != "" {
		data["image"] = AbsoluteURL(site.URL, p.Cover.Src)
	}
	if site.Author != "" {
		data["creator"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	if len(p.Tags) > 0 {
		data["keywords"] = strings.Join(p.Tags, ", ")
	}
	return marshalJSONLD(data)
}

func marshalJSONLD(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
