package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := InitSalt(s); err != nil {
		t.Fatalf("InitSalt failed: %v", err)
	}
	return s
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		ua                  string
		browser, os, device string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", "Chrome", "Windows", "Desktop"},
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 Edg/120.0", "Edge", "Windows", "Desktop"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1", "Safari", "iOS", "Mobile"},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148 Safari/604.1", "Safari", "iOS", "Tablet"},
		{"Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36", "Chrome", "Android", "Mobile"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox", "Linux", "Desktop"},
	}
	for _, tt := range tests {
		b, o, d := ParseUserAgent(tt.ua)
		if b != tt.browser || o != tt.os || d != tt.device {
			t.Errorf("ParseUserAgent(%q) = %s/%s/%s, want %s/%s/%s", tt.ua, b, o, d, tt.browser, tt.os, tt.device)
		}
	}
}

func TestBots(t *testing.T) {
	if !IsBot("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)") {
		t.Error("Googlebot not detected")
	}
	if got := BotName("Mozilla/5.0 (compatible; bingbot/2.0)"); got != "Bingbot" {
		t.Errorf("BotName = %q, want Bingbot", got)
	}
	if got := BotName("SomethingBot/1.0"); got != "Other Bot" {
		t.Errorf("BotName generic = %q", got)
	}
	if IsBot("Mozilla/5.0 (X11; Linux x86_64) Firefox/121.0") {
		t.Error("Firefox flagged as bot")
	}
}

func TestCleanReferrer(t *testing.T) {
	tests := map[string]string{
		"":                                   "Direct",
		"https://www.google.com/search?q=go": "Google",
		"https://github.com/eringen":         "GitHub",
		"https://www.example.org/post/1":     "example.org",
		"not a url":                          "Other",
	}
	for in, want := range tests {
		if got := CleanReferrer(in); got != want {
			t.Errorf("CleanReferrer(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScriptTag(t *testing.T) {
	render := func(s Script) string {
		var buf bytes.Buffer
		if err := s.Tag().Render(context.Background(), &buf); err != nil {
			t.Fatalf("render: %v", err)
		}
		return buf.String()
	}
	got := render(Script{Src: "https://plausible.io/js/script.js", SiteID: "example.com"})
	want := `<script defer data-domain="example.com" src="https://plausible.io/js/script.js"></script>`
	if got != want {
		t.Errorf("tag = %q, want %q", got, want)
	}
	got = render(Script{Src: "https://umami.example/script.js", SiteID: "abc", Attr: "data-website-id"})
	if !strings.Contains(got, `data-website-id="abc"`) {
		t.Errorf("custom attr missing: %q", got)
	}
	if got := render(Script{Src: "http://insecure.example/s.js"}); got != "" {
		t.Errorf("insecure script should be dropped, got %q", got)
	}
	if got := render(Script{}); got != "" {
		t.Errorf("empty script should render nothing, got %q", got)
	}
	if o := (Script{Src: "https://plausible.io/js/script.js"}).Origin(); o != "https://plausible.io" {
		t.Errorf("Origin = %q", o)
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)
	if v, err := s.GetSetting("missing"); err != nil || v != "" {
		t.Fatalf("GetSetting(missing) = %q, %v", v, err)
	}
	if err := s.SetSetting("k", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("k", "2"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.GetSetting("k"); v != "2" {
		t.Errorf("upsert lost: %q", v)
	}
}

func postBeacon(t *testing.T, e *echo.Echo, body any, ua string) int {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/collect", bytes.NewReader(b))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("User-Agent", ua)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestCollectAndStats(t *testing.T) {
	s := newTestStore(t)
	h := NewHandler(s)
	t.Cleanup(h.Close)
	fixed := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	e := echo.New()
	h.RegisterRoutes(e, func(next echo.HandlerFunc) echo.HandlerFunc { return next })

	firefox := "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	if code := postBeacon(t, e, CollectRequest{Path: "/", Theme: "dark", Referrer: "https://github.com/x"}, firefox); code != http.StatusNoContent {
		t.Fatalf("collect = %d", code)
	}
	postBeacon(t, e, CollectRequest{Path: "/projects/atlas/", Theme: "light"}, firefox)
	postBeacon(t, e, CollectRequest{Path: "/", DurationSec: 42}, firefox)
	postBeacon(t, e, CollectRequest{Path: "/"}, "Googlebot/2.1")
	if code := postBeacon(t, e, CollectRequest{}, firefox); code != http.StatusBadRequest {
		t.Fatalf("empty path = %d, want 400", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics/api/stats?days=7", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats = %d: %s", rec.Code, rec.Body.String())
	}
	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalViews != 2 || stats.UniqueVisitors != 1 || stats.BotVisits != 1 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.AvgDuration != 42 {
		t.Errorf("avg duration = %d, want 42", stats.AvgDuration)
	}
	if len(stats.Themes) != 2 {
		t.Errorf("themes = %+v", stats.Themes)
	}
	if len(stats.DailyViews) != 1 || stats.DailyViews[0].Date != "2026-05-04" {
		t.Errorf("daily = %+v", stats.DailyViews)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/analytics/api/stats?days=0", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("days=0 -> %d, want 400", rec.Code)
	}
}

func TestCollectHonorsDNT(t *testing.T) {
	s := newTestStore(t)
	h := NewHandler(s)
	t.Cleanup(h.Close)
	e := echo.New()
	h.RegisterRoutes(e, func(next echo.HandlerFunc) echo.HandlerFunc { return next })

	req := httptest.NewRequest(http.MethodPost, "/api/analytics/collect", strings.NewReader(`{"path":"/"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("DNT", "1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DNT collect = %d", rec.Code)
	}
	stats, err := s.GetStats(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalViews != 0 {
		t.Errorf("DNT visit was stored: %+v", stats)
	}
}
