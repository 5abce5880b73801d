// Package content holds the hand-authored portfolio records (projects, media,
// links, manifesto copy) and the operations that select from them.
package content

import (
	"sort"
	"strings"
)

// MediaKind distinguishes gallery images from looping videos.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Media is one theme-aware gallery or cover asset. Src is the light (default)
// variant; Dark is optional and may be derived from the -light/-dark naming
// convention when left empty.
type Media struct {
	Kind    MediaKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Src     string    `yaml:"src" json:"src"`
	Dark    string    `yaml:"dark,omitempty" json:"dark,omitempty"`
	Alt     string    `yaml:"alt,omitempty" json:"alt,omitempty"`
	Caption string    `yaml:"caption,omitempty" json:"caption,omitempty"`
	Width   int       `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int       `yaml:"height,omitempty" json:"height,omitempty"`
}

// IsVideo reports whether m should be rendered with a <video> element.
func (m Media) IsVideo() bool {
	if m.Kind == KindVideo {
		return true
	}
	switch strings.ToLower(extOf(m.Src)) {
	case ".mp4", ".webm", ".mov":
		return true
	}
	return false
}

// Link is an outbound link shown on a case study (repository, live site...).
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Project is a single case study.
type Project struct {
	Slug      string   `yaml:"slug"`
	Title     string   `yaml:"title"`
	Summary   string   `yaml:"summary"`
	Body      string   `yaml:"body"`
	Role      string   `yaml:"role,omitempty"`
	Year      int      `yaml:"year"`
	Order     int      `yaml:"order"`
	Tags      []string `yaml:"tags"`
	Cover     Media    `yaml:"cover"`
	Gallery   []Media  `yaml:"gallery"`
	Links     []Link   `yaml:"links"`
	Featured  bool     `yaml:"featured"`
	Draft     bool     `yaml:"draft,omitempty"`
	Published bool     `yaml:"-"`
}

// Link returns the canonical path of the project page.
func (p Project) Link() string {
	return "/projects/" + p.Slug + "/"
}

// HasTag reports whether the project carries tag (case-insensitive).
func (p Project) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, t := range p.Tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// SiteInfo is the identity block at the top of the content file.
type SiteInfo struct {
	Name        string `yaml:"name"`
	Tagline     string `yaml:"tagline"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Since       int    `yaml:"since"`
}

// Catalog is the parsed content file.
type Catalog struct {
	Site      SiteInfo  `yaml:"site"`
	Phrases   []string  `yaml:"phrases"`
	Manifesto string    `yaml:"manifesto"`
	Projects  []Project `yaml:"projects"`
}

// NormalizeTag lowercases and trims a tag.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// NormalizeTags normalizes, drops empties and de-duplicates while keeping order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SortProjects orders projects by Order ascending, then Year descending, then title.
func SortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Title < b.Title
	})
}

// Published returns the published subset, preserving order.
func Published(projects []Project) []Project {
	var out []Project
	for _, p := range projects {
		if p.Published {
			out = append(out, p)
		}
	}
	return out
}

func extOf(p string) string {
	if i := strings.LastIndexByte(p, '.'); i >= 0 && !strings.ContainsRune(p[i:], '/') {
		return p[i:]
	}
	return ""
}
