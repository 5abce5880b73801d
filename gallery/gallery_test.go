package gallery

import "testing"

func TestNextWrapsToFirst(t *testing.T) {
	g := New(4)
	g.Open(3)
	if got := g.Next(); got != 0 {
		t.Fatalf("Next from last = %d, want 0", got)
	}
}

func TestPrevWrapsToLast(t *testing.T) {
	g := New(4)
	g.Open(0)
	if got := g.Prev(); got != 3 {
		t.Fatalf("Prev from first = %d, want 3", got)
	}
}

func TestFullCycleReturnsToStart(t *testing.T) {
	for n := 1; n <= 6; n++ {
		g := New(n)
		g.Open(0)
		for i := 0; i < n; i++ {
			g.Next()
		}
		if g.Current() != 0 {
			t.Errorf("n=%d: after %d Next calls index = %d, want 0", n, n, g.Current())
		}
		for i := 0; i < n; i++ {
			g.Prev()
		}
		if g.Current() != 0 {
			t.Errorf("n=%d: after %d Prev calls index = %d, want 0", n, n, g.Current())
		}
	}
}

func TestOpenClamps(t *testing.T) {
	g := New(3)
	g.Open(10)
	if g.Current() != 2 || !g.IsOpen() {
		t.Errorf("Open(10) -> index %d open %v, want 2 true", g.Current(), g.IsOpen())
	}
	g.Open(-5)
	if g.Current() != 0 {
		t.Errorf("Open(-5) -> index %d, want 0", g.Current())
	}
}

func TestEmptyGalleryNeverOpens(t *testing.T) {
	g := New(0)
	g.Open(0)
	if g.IsOpen() {
		t.Fatal("empty gallery should stay closed")
	}
	if g.Next() != 0 || g.Prev() != 0 {
		t.Fatal("navigation on empty gallery should be a no-op")
	}
}

func TestHandleKey(t *testing.T) {
	g := New(3)
	if g.HandleKey(KeyNext) {
		t.Fatal("keys must be ignored while closed")
	}
	g.Open(1)
	if !g.HandleKey(KeyNext) || g.Current() != 2 {
		t.Fatalf("ArrowRight -> %d, want 2", g.Current())
	}
	if !g.HandleKey("Right") || g.Current() != 0 {
		t.Fatalf("Right -> %d, want 0", g.Current())
	}
	if !g.HandleKey(KeyPrev) || g.Current() != 2 {
		t.Fatalf("ArrowLeft -> %d, want 2", g.Current())
	}
	if g.HandleKey("Enter") {
		t.Fatal("Enter should not be handled")
	}
	if !g.ScrollLocked() {
		t.Fatal("scroll should be locked while open")
	}
	if !g.HandleKey(KeyEscape) || g.IsOpen() {
		t.Fatal("Escape should close the lightbox")
	}
	if g.ScrollLocked() {
		t.Fatal("scroll lock should be released on close")
	}
	if g.Current() != 2 {
		t.Errorf("close should keep index, got %d", g.Current())
	}
}

func TestWrapAndNeighbors(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 5, 0}, {5, 5, 0}, {-1, 5, 4}, {-6, 5, 4}, {12, 5, 2},
	}
	for _, tt := range tests {
		if got := Wrap(tt.i, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
	prev, next := Neighbors(0, 3)
	if prev != 2 || next != 1 {
		t.Errorf("Neighbors(0, 3) = %d, %d, want 2, 1", prev, next)
	}
	prev, next = Neighbors(0, 1)
	if prev != 0 || next != 0 {
		t.Errorf("Neighbors(0, 1) = %d, %d, want 0, 0", prev, next)
	}
}
