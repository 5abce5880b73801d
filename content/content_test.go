package content

import (
	"strings"
	"testing"
	"testing/fstest"
)

func sampleProjects() []Project {
	return []Project{
		{Slug: "atlas", Title: "Atlas", Tags: []string{"go", "web"}},
		{Slug: "beacon", Title: "Beacon", Tags: []string{"go", "sqlite", "web"}},
		{Slug: "cinder", Title: "Cinder", Tags: []string{"rust"}},
	}
}

func slugs(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func TestFilterByTags(t *testing.T) {
	projects := sampleProjects()
	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{"empty selection restores full list", nil, []string{"atlas", "beacon", "cinder"}},
		{"single tag", []string{"go"}, []string{"atlas", "beacon"}},
		{"superset required", []string{"go", "sqlite"}, []string{"beacon"}},
		{"case insensitive", []string{" WEB "}, []string{"atlas", "beacon"}},
		{"no match", []string{"go", "rust"}, []string{}},
		{"unknown tag", []string{"haskell"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugs(FilterByTags(projects, tt.selected))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("FilterByTags(%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestToggleTag(t *testing.T) {
	got := ToggleTag([]string{"go", "web"}, "Web")
	if strings.Join(got, ",") != "go" {
		t.Errorf("remove: got %v", got)
	}
	got = ToggleTag([]string{"go"}, "sqlite")
	if strings.Join(got, ",") != "go,sqlite" {
		t.Errorf("add: got %v", got)
	}
	got = ToggleTag(nil, "  ")
	if len(got) != 0 {
		t.Errorf("blank tag should not be added, got %v", got)
	}
}

func TestAllTags(t *testing.T) {
	got := AllTags(sampleProjects())
	want := "go,rust,sqlite,web"
	if strings.Join(got, ",") != want {
		t.Errorf("AllTags = %v, want %s", got, want)
	}
}

func TestRelatedProjects(t *testing.T) {
	projects := sampleProjects()
	got := slugs(RelatedProjects(projects[0], projects))
	if strings.Join(got, ",") != "beacon" {
		t.Errorf("RelatedProjects = %v, want [beacon]", got)
	}
}

const sampleYAML = `
site:
  name: Jane Doe
  tagline: Builder of small, sharp tools
  since: 2016
phrases: [Go, Distributed systems, Typography]
manifesto: |
  # Manifesto
  Ship small things.
projects:
  - title: Second Project
    order: 2
    year: 2023
    tags: [Go, go, " Web "]
    cover: {src: /public/img/second.png}
  - title: First Project
    order: 1
    year: 2021
    tags: [rust]
    cover: {src: /public/img/first.png, dark: /public/img/first-dark.png}
    gallery:
      - src: /public/img/demo.mp4
`

func TestParseCatalogNormalizes(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	if len(cat.Projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(cat.Projects))
	}
	first := cat.Projects[0]
	if first.Slug != "first-project" {
		t.Errorf("first slug = %q, want first-project", first.Slug)
	}
	if first.Gallery[0].Kind != KindVideo {
		t.Errorf("mp4 gallery item kind = %q, want video", first.Gallery[0].Kind)
	}
	second := cat.Projects[1]
	if strings.Join(second.Tags, ",") != "go,web" {
		t.Errorf("tags = %v, want [go web]", second.Tags)
	}
	if cat.Site.Since != 2016 || len(cat.Phrases) != 3 {
		t.Errorf("site/phrases not decoded: %+v %v", cat.Site, cat.Phrases)
	}
}

func TestValidate(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	assets := fstest.MapFS{
		"img/second.png":     {Data: []byte("x")},
		"img/first.png":      {Data: []byte("x")},
		"img/first-dark.png": {Data: []byte("x")},
		"img/demo.mp4":       {Data: []byte("x")},
	}
	if err := Validate(cat, assets); err != nil {
		t.Fatalf("Validate on complete assets: %v", err)
	}

	delete(assets, "img/first-dark.png")
	cat.Projects[1].Tags = nil
	err = Validate(cat, assets)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "first-dark.png") {
		t.Errorf("missing asset not reported: %s", msg)
	}
	if !strings.Contains(msg, "at least one tag") {
		t.Errorf("empty tags not reported: %s", msg)
	}
}

func TestValidateDuplicateSlug(t *testing.T) {
	cat := &Catalog{Projects: []Project{
		{Slug: "a", Title: "A", Tags: []string{"x"}},
		{Slug: "a", Title: "A again", Tags: []string{"x"}},
	}}
	err := Validate(cat, nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate slug") {
		t.Errorf("expected duplicate slug error, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello, World!":      "hello-world",
		"  Go & SQLite  ":    "go-sqlite",
		"Already-a-slug":     "already-a-slug",
		"---":                "",
		"Case Study #2 (v1)": "case-study-2-v1",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
