// Package theme resolves the viewer's display theme and picks the matching
// variant of theme-aware images and videos.
package theme

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
)

// Theme is the display theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// CookieName is the cookie that persists an explicit theme choice.
const CookieName = "theme"

// HintHeader is the client hint carrying the OS-level color preference.
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// Parse returns the theme named by s and whether s named one.
func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return Light, false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// FromRequest resolves the theme for r: an explicit ?theme= query wins, then
// the theme cookie, then the color-scheme client hint. Light is the default.
func FromRequest(r *http.Request) Theme {
	if t, ok := Parse(r.URL.Query().Get("theme")); ok {
		return t
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if t, ok := Parse(c.Value); ok {
			return t
		}
	}
	if t, ok := Parse(r.Header.Get(HintHeader)); ok {
		return t
	}
	return Light
}

// Asset is a light/dark pair of paths for one resource. Dark may be empty.
type Asset struct {
	Light string
	Dark  string
}

// Select picks the dark variant when t is dark and one exists; otherwise it
// falls back to the light variant.
func (a Asset) Select(t Theme) string {
	if t == Dark && a.Dark != "" {
		return a.Dark
	}
	return a.Light
}

// Variants derives the conventional -light and -dark file names for p.
// "img/hero.png" yields "img/hero-light.png" and "img/hero-dark.png"; a path
// that already carries one of the suffixes is mapped onto its sibling.
func Variants(p string) (light, dark string) {
	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	switch {
	case strings.HasSuffix(base, "-light"):
		base = strings.TrimSuffix(base, "-light")
	case strings.HasSuffix(base, "-dark"):
		base = strings.TrimSuffix(base, "-dark")
	}
	return base + "-light" + ext, base + "-dark" + ext
}

// Resolver maps public asset URLs to theme pairs by probing a filesystem for
// the -light/-dark variants. Lookups are cached; Resolver is safe for
// concurrent use.
type Resolver struct {
	fsys   fs.FS
	prefix string
	cache  sync.Map // string -> Asset
}

// NewResolver returns a Resolver over fsys, which is served under prefix
// (for example "/public/").
func NewResolver(fsys fs.FS, prefix string) *Resolver {
	return &Resolver{fsys: fsys, prefix: prefix}
}

// Resolve returns the pair for src. Variant files found on disk take
// precedence; when no light variant exists src itself is used, and when no
// dark variant exists Dark is left empty so Select falls back to Light.
func (r *Resolver) Resolve(src string) Asset {
	if src == "" {
		return Asset{}
	}
	if v, ok := r.cache.Load(src); ok {
		return v.(Asset)
	}
	a := Asset{Light: src}
	if r.fsys != nil && r.local(src) {
		light, dark := Variants(src)
		if r.exists(light) {
			a.Light = light
		}
		if r.exists(dark) {
			a.Dark = dark
		}
	}
	r.cache.Store(src, a)
	return a
}

// ResolvePair resolves src and overrides the dark side with an explicit dark
// path when one is authored.
func (r *Resolver) ResolvePair(src, dark string) Asset {
	a := r.Resolve(src)
	if dark != "" {
		a.Dark = dark
	}
	return a
}

// Forget drops cached lookups, e.g. after new files are uploaded.
func (r *Resolver) Forget() {
	r.cache.Range(func(k, _ any) bool {
		r.cache.Delete(k)
		return true
	})
}

func (r *Resolver) local(src string) bool {
	return strings.HasPrefix(src, r.prefix)
}

func (r *Resolver) exists(p string) bool {
	name := strings.TrimPrefix(p, r.prefix)
	if name == "" {
		return false
	}
	_, err := fs.Stat(r.fsys, name)
	return err == nil
}
