package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AssetPrefix is the URL prefix under which the asset filesystem is served.
const AssetPrefix = "/public/"

// LoadCatalog reads and parses the YAML content file at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse content %s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes YAML content and normalizes it: tags are lowercased and
// de-duplicated, missing slugs are derived from titles, media kinds default to
// image and projects are sorted.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}
	for i := range cat.Projects {
		normalizeProject(&cat.Projects[i])
	}
	SortProjects(cat.Projects)
	return &cat, nil
}

// Marshal encodes the catalog back to YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func normalizeProject(p *Project) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Tags = NormalizeTags(p.Tags)
	p.Published = !p.Draft
	normalizeMedia(&p.Cover)
	for i := range p.Gallery {
		normalizeMedia(&p.Gallery[i])
	}
}

func normalizeMedia(m *Media) {
	if m.Src == "" {
		return
	}
	if m.Kind == "" {
		if m.IsVideo() {
			m.Kind = KindVideo
		} else {
			m.Kind = KindImage
		}
	}
}

// Validate checks the content-authoring invariants: titles and unique slugs,
// non-empty tag lists, and every referenced local asset existing in assets.
// All problems are reported together. A nil assets skips the file checks.
func Validate(cat *Catalog, assets fs.FS) error {
	var errs []error
	slugs := make(map[string]bool, len(cat.Projects))
	for i, p := range cat.Projects {
		name := p.Slug
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("project %s: title is required", name))
		}
		if p.Slug == "" {
			errs = append(errs, fmt.Errorf("project %s: slug is required", name))
		} else if slugs[p.Slug] {
			errs = append(errs, fmt.Errorf("project %s: duplicate slug", name))
		}
		slugs[p.Slug] = true
		if len(p.Tags) == 0 {
			errs = append(errs, fmt.Errorf("project %s: at least one tag is required", name))
		}
		if assets == nil {
			continue
		}
		for _, ref := range mediaRefs(p) {
			if err := checkAsset(assets, ref); err != nil {
				errs = append(errs, fmt.Errorf("project %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func mediaRefs(p Project) []string {
	var refs []string
	add := func(m Media) {
		if m.Src != "" {
			refs = append(refs, m.Src)
		}
		if m.Dark != "" {
			refs = append(refs, m.Dark)
		}
	}
	add(p.Cover)
	for _, m := range p.Gallery {
		add(m)
	}
	return refs
}

// AssetPath maps a public URL path to a path inside the asset filesystem.
// External URLs report ok=false.
func AssetPath(ref string) (string, bool) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	return strings.TrimPrefix(strings.TrimPrefix(ref, AssetPrefix), "/"), true
}

func checkAsset(assets fs.FS, ref string) error {
	name, ok := AssetPath(ref)
	if !ok {
		return nil
	}
	if _, err := fs.Stat(assets, name); err != nil {
		return fmt.Errorf("asset %s: %w", ref, err)
	}
	return nil
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
