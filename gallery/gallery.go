// Package gallery tracks the open/closed state and current item of a
// lightbox over a fixed list of media.
package gallery

// Key names accepted by HandleKey. Both the KeyboardEvent.key values and their
// legacy short forms are recognized.
const (
	KeyNext   = "ArrowRight"
	KeyPrev   = "ArrowLeft"
	KeyEscape = "Escape"
)

// Gallery is the navigation state of a lightbox. The zero value is an empty,
// closed gallery.
type Gallery struct {
	n     int
	index int
	open  bool
}

// New returns a closed gallery over n items.
func New(n int) *Gallery {
	if n < 0 {
		n = 0
	}
	return &Gallery{n: n}
}

// Len returns the number of items.
func (g *Gallery) Len() int { return g.n }

// Current returns the index of the focused item.
func (g *Gallery) Current() int { return g.index }

// IsOpen reports whether the lightbox is showing.
func (g *Gallery) IsOpen() bool { return g.open }

// ScrollLocked reports whether page scrolling must be suppressed.
func (g *Gallery) ScrollLocked() bool { return g.open }

// Open shows the lightbox on item i, clamped into range. Empty galleries
// stay closed.
func (g *Gallery) Open(i int) {
	if g.n == 0 {
		return
	}
	g.index = Clamp(i, g.n)
	g.open = true
}

// Close hides the lightbox. The current index is kept.
func (g *Gallery) Close() {
	g.open = false
}

// Next moves to the following item, wrapping from the last to the first.
func (g *Gallery) Next() int {
	if g.n > 0 {
		g.index = Wrap(g.index+1, g.n)
	}
	return g.index
}

// Prev moves to the preceding item, wrapping from the first to the last.
func (g *Gallery) Prev() int {
	if g.n > 0 {
		g.index = Wrap(g.index-1, g.n)
	}
	return g.index
}

// HandleKey applies a keyboard key while the lightbox is open and reports
// whether the key was consumed.
func (g *Gallery) HandleKey(key string) bool {
	if !g.open {
		return false
	}
	switch key {
	case KeyNext, "Right":
		g.Next()
	case KeyPrev, "Left":
		g.Prev()
	case KeyEscape, "Esc":
		g.Close()
	default:
		return false
	}
	return true
}

// Wrap maps any integer onto [0, n) circularly. n must be positive.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Clamp bounds i into [0, n-1]. n must be positive.
func Clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Neighbors returns the previous and next indexes around i.
func Neighbors(i, n int) (prev, next int) {
	return Wrap(i-1, n), Wrap(i+1, n)
}
