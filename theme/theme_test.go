package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestSelect(t *testing.T) {
	pair := Asset{Light: "/a-light.png", Dark: "/a-dark.png"}
	if got := pair.Select(Dark); got != "/a-dark.png" {
		t.Errorf("dark with variant = %q", got)
	}
	if got := pair.Select(Light); got != "/a-light.png" {
		t.Errorf("light = %q", got)
	}
	lightOnly := Asset{Light: "/a.png"}
	if got := lightOnly.Select(Dark); got != "/a.png" {
		t.Errorf("dark without variant should fall back to light, got %q", got)
	}
}

func TestVariants(t *testing.T) {
	tests := []struct{ in, light, dark string }{
		{"/public/img/hero.png", "/public/img/hero-light.png", "/public/img/hero-dark.png"},
		{"/public/img/hero-dark.webp", "/public/img/hero-light.webp", "/public/img/hero-dark.webp"},
		{"/public/img/hero-light.jpg", "/public/img/hero-light.jpg", "/public/img/hero-dark.jpg"},
		{"/public/video/demo", "/public/video/demo-light", "/public/video/demo-dark"},
	}
	for _, tt := range tests {
		light, dark := Variants(tt.in)
		if light != tt.light || dark != tt.dark {
			t.Errorf("Variants(%q) = %q, %q; want %q, %q", tt.in, light, dark, tt.light, tt.dark)
		}
	}
}

func TestResolver(t *testing.T) {
	fsys := fstest.MapFS{
		"img/both-light.png":    {Data: []byte("l")},
		"img/both-dark.png":     {Data: []byte("d")},
		"img/plain.png":         {Data: []byte("p")},
		"img/darkonly.png":      {Data: []byte("p")},
		"img/darkonly-dark.png": {Data: []byte("d")},
	}
	r := NewResolver(fsys, "/public/")

	both := r.Resolve("/public/img/both.png")
	if both.Light != "/public/img/both-light.png" || both.Dark != "/public/img/both-dark.png" {
		t.Errorf("both = %+v", both)
	}
	plain := r.Resolve("/public/img/plain.png")
	if plain.Light != "/public/img/plain.png" || plain.Dark != "" {
		t.Errorf("plain = %+v", plain)
	}
	if got := plain.Select(Dark); got != "/public/img/plain.png" {
		t.Errorf("plain dark fallback = %q", got)
	}
	darkOnly := r.Resolve("/public/img/darkonly.png")
	if darkOnly.Light != "/public/img/darkonly.png" || darkOnly.Dark != "/public/img/darkonly-dark.png" {
		t.Errorf("darkonly = %+v", darkOnly)
	}
	ext := r.Resolve("https://cdn.example.com/x.png")
	if ext.Light != "https://cdn.example.com/x.png" || ext.Dark != "" {
		t.Errorf("external = %+v", ext)
	}
	explicit := r.ResolvePair("/public/img/plain.png", "/public/img/other.png")
	if explicit.Select(Dark) != "/public/img/other.png" {
		t.Errorf("explicit dark ignored: %+v", explicit)
	}
}

func TestResolverCacheAndForget(t *testing.T) {
	fsys := fstest.MapFS{"img/a.png": {Data: []byte("a")}}
	r := NewResolver(fsys, "/public/")
	if got := r.Resolve("/public/img/a.png"); got.Dark != "" {
		t.Fatalf("unexpected dark %q", got.Dark)
	}
	fsys["img/a-dark.png"] = &fstest.MapFile{Data: []byte("d")}
	if got := r.Resolve("/public/img/a.png"); got.Dark != "" {
		t.Fatalf("cached result should be reused, got %q", got.Dark)
	}
	r.Forget()
	if got := r.Resolve("/public/img/a.png"); got.Dark != "/public/img/a-dark.png" {
		t.Fatalf("after Forget dark = %q", got.Dark)
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		cookie string
		hint   string
		want   Theme
	}{
		{"default", "/", "", "", Light},
		{"hint", "/", "", "dark", Dark},
		{"cookie beats hint", "/", "light", "dark", Light},
		{"query beats cookie", "/?theme=dark", "light", "", Dark},
		{"invalid query ignored", "/?theme=sepia", "dark", "", Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.hint != "" {
				req.Header.Set(HintHeader, tt.hint)
			}
			if got := FromRequest(req); got != tt.want {
				t.Errorf("FromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAndToggle(t *testing.T) {
	if th, ok := Parse(" DARK "); !ok || th != Dark {
		t.Errorf("Parse(DARK) = %q, %v", th, ok)
	}
	if _, ok := Parse("blue"); ok {
		t.Error("Parse(blue) should fail")
	}
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Error("Toggle mismatch")
	}
}
