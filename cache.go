package folio

import (
	"database/sql"
	"sync"
	"time"

	"github.com/eringen/folio/content"
)

// ErrNotFound is returned when a requested project does not exist.
var ErrNotFound = sql.ErrNoRows

// ProjectCache is an in-memory, TTL-bounded copy of the published projects
// and their tags.
type ProjectCache struct {
	mu       sync.RWMutex
	projects []content.Project
	tags     []string
	fetched  time.Time
	ttl      time.Duration
	store    *Store
	now      func() time.Time
}

// NewProjectCache creates a ProjectCache backed by the given Store.
func NewProjectCache(s *Store, ttl time.Duration) *ProjectCache {
	return &ProjectCache{store: s, ttl: ttl, now: time.Now}
}

func (c *ProjectCache) valid() bool {
	return c.projects != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ProjectCache) Invalidate() {
	c.mu.Lock()
	c.projects = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *ProjectCache) load() error {
	if c.valid() {
		return nil
	}
	projects, err := c.store.ListProjects()
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []content.Project{}
	}
	c.projects = projects
	c.tags = content.AllTags(projects)
	c.fetched = c.now()
	return nil
}

// ensureLoaded returns cached projects and tags after ensuring the cache is
// fresh. It only takes the write lock when a reload is needed.
func (c *ProjectCache) ensureLoaded() ([]content.Project, []string, error) {
	c.mu.RLock()
	if c.valid() {
		projects, tags := c.projects, c.tags
		c.mu.RUnlock()
		return projects, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.projects, c.tags, nil
}

// ListProjects returns published projects carrying every selected tag.
func (c *ProjectCache) ListProjects(selected []string) ([]content.Project, error) {
	projects, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return content.FilterByTags(projects, selected), nil
}

// ListTags returns all unique tags from published projects.
func (c *ProjectCache) ListTags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// GetProject returns a single published project by slug from the cache.
func (c *ProjectCache) GetProject(slug string) (content.Project, error) {
	projects, _, err := c.ensureLoaded()
	if err != nil {
		return content.Project{}, err
	}
	for _, p := range projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Project{}, ErrNotFound
}
