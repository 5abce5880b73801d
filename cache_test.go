package folio

import (
	"testing"
	"time"
)

func TestProjectCacheTTLAndInvalidate(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SaveProject(testProject("a", 1, "go")); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewProjectCache(s, time.Minute)
	c.now = func() time.Time { return now }

	count := func() int {
		t.Helper()
		ps, err := c.ListProjects(nil)
		if err != nil {
			t.Fatal(err)
		}
		return len(ps)
	}

	if n := count(); n != 1 {
		t.Fatalf("initial load = %d, want 1", n)
	}
	if err := s.SaveProject(testProject("b", 2, "web")); err != nil {
		t.Fatal(err)
	}
	if n := count(); n != 1 {
		t.Errorf("within TTL = %d, want cached 1", n)
	}
	now = now.Add(2 * time.Minute)
	if n := count(); n != 2 {
		t.Errorf("after TTL = %d, want 2", n)
	}

	if err := s.SaveProject(testProject("c", 3, "go")); err != nil {
		t.Fatal(err)
	}
	if n := count(); n != 2 {
		t.Errorf("before Invalidate = %d, want cached 2", n)
	}
	c.Invalidate()
	if n := count(); n != 3 {
		t.Errorf("after Invalidate = %d, want 3", n)
	}
	tags, err := c.ListTags()
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v, want go and web", tags)
	}
	if _, err := c.GetProject("c"); err != nil {
		t.Errorf("GetProject(c): %v", err)
	}
}
