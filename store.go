package folio

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// Image is an uploaded file in the media library.
type Image = views.Image

// Store wraps a SQLite database holding projects and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page reads proceed while the admin writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS projects (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL DEFAULT '',
    year INTEGER NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '[]',
    cover TEXT NOT NULL DEFAULT '{}',
    gallery TEXT NOT NULL DEFAULT '[]',
    links TEXT NOT NULL DEFAULT '[]',
    featured INTEGER NOT NULL DEFAULT 0,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const projectColumns = `slug, title, summary, body, role, year, sort_order, tags, cover, gallery, links, featured, published`

const projectOrder = ` ORDER BY sort_order ASC, year DESC, title ASC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (content.Project, error) {
	var (
		p                     content.Project
		tags, cover, gal, lnk string
		featured, published   int
	)
	if err := row.Scan(&p.Slug, &p.Title, &p.Summary, &p.Body, &p.Role, &p.Year, &p.Order,
		&tags, &cover, &gal, &lnk, &featured, &published); err != nil {
		return content.Project{}, err
	}
	p.Tags = ParseTags(tags)
	if err := json.Unmarshal([]byte(cover), &p.Cover); err != nil {
		return content.Project{}, fmt.Errorf("project %s: cover: %w", p.Slug, err)
	}
	if err := json.Unmarshal([]byte(gal), &p.Gallery); err != nil {
		return content.Project{}, fmt.Errorf("project %s: gallery: %w", p.Slug, err)
	}
	if err := json.Unmarshal([]byte(lnk), &p.Links); err != nil {
		return content.Project{}, fmt.Errorf("project %s: links: %w", p.Slug, err)
	}
	p.Featured = featured == 1
	p.Published = published == 1
	p.Draft = !p.Published
	return p, nil
}

func (s *Store) queryProjects(query string, args ...any) ([]content.Project, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []content.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListProjects returns published projects in display order.
func (s *Store) ListProjects() ([]content.Project, error) {
	return s.queryProjects(`SELECT ` + projectColumns + ` FROM projects WHERE published = 1` + projectOrder)
}

// ListAllProjects returns every project, drafts included (for admin).
func (s *Store) ListAllProjects() ([]content.Project, error) {
	return s.queryProjects(`SELECT ` + projectColumns + ` FROM projects` + projectOrder)
}

// GetProject returns a single published project by slug.
func (s *Store) GetProject(slug string) (content.Project, error) {
	return scanProject(s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = ? AND published = 1`, slug))
}

// GetProjectAny returns a project by slug regardless of published status.
func (s *Store) GetProjectAny(slug string) (content.Project, error) {
	return scanProject(s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug))
}

// SaveProject upserts a project. Tags are normalized to lowercase.
func (s *Store) SaveProject(p content.Project) error {
	return s.saveProject(s.db, p, true)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *Store) saveProject(db execer, p content.Project, replace bool) error {
	cover, err := json.Marshal(p.Cover)
	if err != nil {
		return err
	}
	gallery := p.Gallery
	if gallery == nil {
		gallery = []content.Media{}
	}
	gal, err := json.Marshal(gallery)
	if err != nil {
		return err
	}
	links := p.Links
	if links == nil {
		links = []content.Link{}
	}
	lnk, err := json.Marshal(links)
	if err != nil {
		return err
	}
	verb := "INSERT OR IGNORE"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	_, err = db.Exec(verb+` INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Summary, p.Body, p.Role, p.Year, p.Order,
		FormatTags(p.Tags), string(cover), string(gal), string(lnk),
		boolInt(p.Featured), boolInt(p.Published))
	return err
}

// ImportProjects copies projects from the content file into the store in
// one transaction. Existing rows are kept unless overwrite is set, so edits
// made in the admin survive restarts. It returns the number of rows written.
func (s *Store) ImportProjects(projects []content.Project, overwrite bool) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n := 0
	for _, p := range projects {
		if !overwrite {
			var exists int
			err := tx.QueryRow(`SELECT COUNT(*) FROM projects WHERE slug = ?`, p.Slug).Scan(&exists)
			if err != nil {
				return 0, err
			}
			if exists > 0 {
				continue
			}
		}
		if err := s.saveProject(tx, p, overwrite); err != nil {
			return 0, fmt.Errorf("import %s: %w", p.Slug, err)
		}
		n++
	}
	return n, tx.Commit()
}

// DeleteProject removes a project by slug.
func (s *Store) DeleteProject(slug string) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE slug = ?`, slug)
	return err
}

// SaveImage records metadata for an uploaded file.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploads, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// DeleteImage removes an image record.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// FormatTags encodes normalized tags as a JSON array.
func FormatTags(tags []string) string {
	data, err := json.Marshal(content.NormalizeTags(tags))
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ParseTags decodes a tag column. Rows written before tags were stored as
// JSON hold the comma-delimited form ",go,web,".
func ParseTags(tagString string) []string {
	if strings.HasPrefix(tagString, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(tagString), &tags); err != nil || len(tags) == 0 {
			return nil
		}
		return tags
	}
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
