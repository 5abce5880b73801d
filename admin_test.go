package folio

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAdminSaveRejectsTakenSlug(t *testing.T) {
	a := newTestApp(t)
	c := newClient(t, a)
	c.login()

	tests := []struct {
		name string
		form url.Values
	}{
		{"new project with an existing title", url.Values{
			"title":     {"Atlas"},
			"summary":   {"clobbered"},
			"tags":      {"go"},
			"published": {"on"},
		}},
		{"rename onto an existing slug", url.Values{
			"original_slug": {"beacon"},
			"title":         {"Beacon"},
			"slug":          {"atlas"},
			"tags":          {"go"},
			"published":     {"on"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.post("/admin/save/", tt.form)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d", rec.Code)
			}
			if loc := rec.Header().Get("Location"); !strings.Contains(loc, "already+in+use") {
				t.Errorf("Location = %q, want slug-in-use message", loc)
			}
		})
	}

	atlas, err := a.Store.GetProjectAny("atlas")
	if err != nil {
		t.Fatalf("atlas lost: %v", err)
	}
	if atlas.Summary != "Map tiles" || len(atlas.Gallery) != 3 {
		t.Errorf("atlas overwritten: summary=%q gallery=%d", atlas.Summary, len(atlas.Gallery))
	}
	if _, err := a.Store.GetProjectAny("beacon"); err != nil {
		t.Errorf("beacon lost: %v", err)
	}
}

func TestAdminSaveEditsAndRenames(t *testing.T) {
	a := newTestApp(t)
	c := newClient(t, a)
	c.login()

	rec := c.post("/admin/save/", url.Values{
		"original_slug": {"atlas"},
		"title":         {"Atlas"},
		"slug":          {"atlas"},
		"summary":       {"Vector tiles"},
		"tags":          {"go, maps"},
		"published":     {"on"},
	})
	if loc := rec.Header().Get("Location"); loc != "/admin/?msg=saved" {
		t.Fatalf("editing in place: Location = %q", loc)
	}
	if p, _ := a.Store.GetProject("atlas"); p.Summary != "Vector tiles" {
		t.Errorf("edit not saved: %q", p.Summary)
	}

	rec = c.post("/admin/save/", url.Values{
		"original_slug": {"beacon"},
		"title":         {"Lighthouse"},
		"tags":          {"go"},
		"published":     {"on"},
	})
	if loc := rec.Header().Get("Location"); loc != "/admin/?msg=saved" {
		t.Fatalf("rename: Location = %q", loc)
	}
	if _, err := a.Store.GetProject("lighthouse"); err != nil {
		t.Errorf("renamed project missing: %v", err)
	}
	if _, err := a.Store.GetProjectAny("beacon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old slug should be gone, err = %v", err)
	}
	body := c.get("/").Body.String()
	if !strings.Contains(body, "Lighthouse") || strings.Contains(body, ">Beacon<") {
		t.Error("home should list the renamed project only")
	}
}

func TestAdminDeleteProject(t *testing.T) {
	a := newTestApp(t)
	c := newClient(t, a)
	c.get("/")

	if rec := c.delete("/admin/project/beacon/"); rec.Code != http.StatusSeeOther {
		t.Errorf("anonymous delete: status = %d, want 303", rec.Code)
	}
	c.login()

	rec := c.delete("/admin/project/beacon/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Atlas") {
		t.Errorf("delete: status = %d, want dashboard", rec.Code)
	}
	if _, err := a.Store.GetProjectAny("beacon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("beacon still stored: %v", err)
	}

	rec = c.delete("/admin/project/atlas/", "HX-Request", "true")
	if rec.Code != http.StatusOK {
		t.Fatalf("HX delete: status = %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/admin/?msg=deleted" {
		t.Errorf("HX-Redirect = %q", got)
	}
	if body := c.get("/").Body.String(); strings.Contains(body, "Atlas") {
		t.Error("deleted project still listed on home")
	}
}

func (c *client) upload(target, filename string, data []byte, fields map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if ck, ok := c.cookies["_csrf"]; ok {
		w.WriteField("_csrf", ck.Value)
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		c.t.Fatal(err)
	}
	part.Write(data)
	if err := w.Close(); err != nil {
		c.t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func TestAdminImageUploadAndDelete(t *testing.T) {
	a := newTestApp(t)
	c := newClient(t, a)
	c.login()

	rec := c.upload("/admin/images/upload/", "Cover Shot.png", pngBytes(t, 40, 20), map[string]string{"variant": "dark"})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/images/" {
		t.Fatalf("upload: %d %q %s", rec.Code, rec.Header().Get("Location"), rec.Body.String())
	}
	path := filepath.Join(a.Config.StaticDir, uploadsSubdir, "cover-shot-dark.jpg")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
	if ok, _ := a.Store.ImageExists("cover-shot-dark.jpg"); !ok {
		t.Error("upload not recorded")
	}
	if body := c.get("/admin/images/").Body.String(); !strings.Contains(body, "cover-shot-dark.jpg") {
		t.Error("media page should list the upload")
	}

	rec = c.upload("/admin/images/upload/", "x.png", pngBytes(t, 4, 4), map[string]string{"variant": "sepia"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad variant: status = %d, want 400", rec.Code)
	}

	rec = c.delete("/admin/images/cover-shot-dark.jpg/", "HX-Request", "true")
	if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/admin/images/" {
		t.Errorf("HX image delete: %d %q", rec.Code, rec.Header().Get("HX-Redirect"))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be removed, stat err = %v", err)
	}
	if ok, _ := a.Store.ImageExists("cover-shot-dark.jpg"); ok {
		t.Error("image record should be deleted")
	}
}
