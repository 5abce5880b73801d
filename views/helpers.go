package views

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/eringen/folio/content"
)

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag inline-flex items-center rounded border px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] transition"
	if active {
		base += " tag-active"
	}
	return base
}

// JoinTags formats a tag slice as a comma-separated string for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// FilterURL is the home page URL with the given tag selection.
func FilterURL(selected []string) string {
	if len(selected) == 0 {
		return "/"
	}
	q := url.Values{"tag": selected}
	return "/?" + q.Encode()
}

// ToggleURL is the filter URL after toggling tag within selected.
func ToggleURL(selected []string, tag string) string {
	return FilterURL(content.ToggleTag(selected, tag))
}

// LightboxURL is the path of gallery item i of project slug.
func LightboxURL(slug string, i int) string {
	return "/projects/" + url.PathEscape(slug) + "/gallery/" + strconv.Itoa(i) + "/"
}

// TabURL is the path of a project page with tab selected.
func TabURL(slug, tab string) string {
	u := "/projects/" + url.PathEscape(slug) + "/"
	if tab == "" || tab == DefaultTab {
		return u
	}
	return u + "?tab=" + url.QueryEscape(tab)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func jsonAttr(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// MediaList formats gallery media for the editor's textarea, one
// "src | dark | alt | caption" line per item.
func MediaList(items []content.Media) string {
	lines := make([]string, 0, len(items))
	for _, m := range items {
		lines = append(lines, strings.TrimRight(strings.Join([]string{m.Src, m.Dark, m.Alt, m.Caption}, " | "), " |"))
	}
	return strings.Join(lines, "\n")
}

// LinkList formats links for the editor's textarea, one "label | url" line each.
func LinkList(links []content.Link) string {
	lines := make([]string, 0, len(links))
	for _, l := range links {
		lines = append(lines, l.Label+" | "+l.URL)
	}
	return strings.Join(lines, "\n")
}
