package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig(filepath.Join(dir, "missing.yml"), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := folio.DefaultConfig()
	if cfg.Addr != want.Addr || cfg.ContentPath != want.ContentPath || cfg.CacheTTL != want.CacheTTL {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yml")
	writeFile(t, path, `
name: Studio North
addr: ":8080"
cache_ttl: 90s
content_overwrite: true
log_level: debug
`)
	t.Setenv("FOLIO_ADDR", ":9090")
	t.Setenv("FOLIO_ADMIN_PASSWORD", "hunter2")

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Name != "Studio North" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want env override :9090", cfg.Addr)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
	if !cfg.ContentOverwrite {
		t.Error("ContentOverwrite should be true")
	}
	if cfg.AdminPassword != "hunter2" {
		t.Errorf("AdminPassword = %q", cfg.AdminPassword)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("StaticDir = %q, want default to survive", cfg.StaticDir)
	}
}

func TestLoadConfigDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	writeFile(t, dotenv, "FOLIO_AUTHOR=Ada\nFOLIO_TAGLINE=from dotenv\n")
	t.Setenv("FOLIO_TAGLINE", "from environment")
	t.Cleanup(func() { os.Unsetenv("FOLIO_AUTHOR") })

	cfg, err := loadConfig(filepath.Join(dir, "folio.yml"), dotenv)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Author != "Ada" {
		t.Errorf("Author = %q, want Ada", cfg.Author)
	}
	if cfg.Tagline != "from environment" {
		t.Errorf("Tagline = %q, environment should win over dotenv", cfg.Tagline)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yml")
	writeFile(t, path, "name: [unclosed\n")
	if _, err := loadConfig(path, ""); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestSaveConfigOmitsSecrets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yml")
	cfg := folio.DefaultConfig()
	cfg.Name = "Round Trip"
	cfg.AdminPassword = "secret-password"
	cfg.SessionSecret = strings.Repeat("s", 32)
	if err := saveConfig(cfg, path); err != nil {
		t.Fatalf("saveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret-password") || strings.Contains(string(data), "session_secret") {
		t.Errorf("secrets written to config:\n%s", data)
	}

	got, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got.Name != "Round Trip" || got.CacheTTL != cfg.CacheTTL {
		t.Errorf("reloaded config = %+v", got)
	}
}

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-folio")
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runInit(cmd, dir); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	for _, name := range []string{"folio.yml", "content.yml", ".env.example"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
	cfg, err := loadConfig(filepath.Join(dir, "folio.yml"), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "My Folio" {
		t.Errorf("Name = %q, want My Folio", cfg.Name)
	}

	out.Reset()
	if err := runInit(cmd, dir); err != nil {
		t.Fatalf("second runInit: %v", err)
	}
	if !strings.Contains(out.String(), "kept") {
		t.Errorf("second run should keep existing config:\n%s", out.String())
	}
}
