// Package typewriter models the hero "typewriter" effect: a fixed list of
// phrases typed one rune at a time, each held, then committed to a growing
// tag list, with the whole cycle restarting once every phrase is committed.
package typewriter

import "time"

// Phase is the machine's current activity.
type Phase int

const (
	Typing Phase = iota
	Holding
	Resting
)

func (p Phase) String() string {
	switch p {
	case Typing:
		return "typing"
	case Holding:
		return "holding"
	case Resting:
		return "resting"
	}
	return "unknown"
}

// Timing controls the delay after each kind of step.
type Timing struct {
	Type  time.Duration // between typed runes
	Hold  time.Duration // once a phrase is fully typed
	Cycle time.Duration // after the last phrase is committed
}

// DefaultTiming matches the pacing used on the home page hero.
var DefaultTiming = Timing{
	Type:  90 * time.Millisecond,
	Hold:  1200 * time.Millisecond,
	Cycle: 2500 * time.Millisecond,
}

// Frame is the visible state after one step and how long it stays on screen.
type Frame struct {
	Text      string        `json:"text"`
	Committed []string      `json:"committed"`
	Delay     time.Duration `json:"-"`
	DelayMS   int64         `json:"delay_ms"`
}

// Machine is the typewriter state. It is not safe for concurrent use.
type Machine struct {
	phrases   [][]rune
	timing    Timing
	phase     Phase
	phrase    int
	typed     int
	committed []string
}

// New returns a machine positioned before the first rune of the first phrase.
func New(phrases []string, timing Timing) *Machine {
	m := &Machine{timing: timing}
	for _, p := range phrases {
		m.phrases = append(m.phrases, []rune(p))
	}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// PhraseIndex returns the index of the phrase being typed or held.
func (m *Machine) PhraseIndex() int { return m.phrase }

// Committed returns a copy of the phrases committed so far in this cycle.
func (m *Machine) Committed() []string {
	return append([]string(nil), m.committed...)
}

// Text returns the partially typed phrase currently on screen.
func (m *Machine) Text() string {
	if m.phase == Resting || len(m.phrases) == 0 {
		return ""
	}
	return string(m.phrases[m.phrase][:m.typed])
}

// Step advances the animation by one tick and returns the resulting frame.
func (m *Machine) Step() Frame {
	if len(m.phrases) == 0 {
		return m.frame(m.timing.Cycle)
	}
	switch m.phase {
	case Typing:
		cur := m.phrases[m.phrase]
		if m.typed < len(cur) {
			m.typed++
		}
		if m.typed >= len(cur) {
			m.phase = Holding
			return m.frame(m.timing.Hold)
		}
		return m.frame(m.timing.Type)
	case Holding:
		m.committed = append(m.committed, string(m.phrases[m.phrase]))
		m.typed = 0
		m.phrase++
		if m.phrase == len(m.phrases) {
			m.phrase = len(m.phrases) - 1
			m.phase = Resting
			return m.frame(m.timing.Cycle)
		}
		m.phase = Typing
		return m.frame(m.timing.Type)
	default:
		m.Reset()
		return m.frame(m.timing.Type)
	}
}

// Reset returns to the first phrase with nothing typed or committed.
func (m *Machine) Reset() {
	m.phase = Typing
	m.phrase = 0
	m.typed = 0
	m.committed = nil
}

func (m *Machine) frame(d time.Duration) Frame {
	return Frame{
		Text:      m.Text(),
		Committed: m.Committed(),
		Delay:     d,
		DelayMS:   d.Milliseconds(),
	}
}

// CycleLen is the number of steps in one full cycle over phrases.
func CycleLen(phrases []string) int {
	if len(phrases) == 0 {
		return 0
	}
	n := 1 // final reset
	for _, p := range phrases {
		runes := len([]rune(p))
		if runes == 0 {
			runes = 1
		}
		n += runes + 1
	}
	return n
}

// Schedule returns the frames of exactly one cycle, ending with the reset to
// the first phrase. Clients replay it in a loop.
func Schedule(phrases []string, timing Timing) []Frame {
	m := New(phrases, timing)
	steps := CycleLen(phrases)
	frames := make([]Frame, 0, steps)
	for i := 0; i < steps; i++ {
		frames = append(frames, m.Step())
	}
	return frames
}
