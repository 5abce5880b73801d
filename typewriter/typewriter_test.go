package typewriter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

var testTiming = Timing{Type: 10 * time.Millisecond, Hold: 100 * time.Millisecond, Cycle: 500 * time.Millisecond}

func TestTypesOneRunePerStep(t *testing.T) {
	m := New([]string{"Go", "héllo"}, testTiming)
	want := []string{"G", "Go"}
	for i, w := range want {
		f := m.Step()
		if f.Text != w {
			t.Fatalf("step %d text = %q, want %q", i, f.Text, w)
		}
	}
	if m.Phase() != Holding {
		t.Fatalf("phase = %v, want holding", m.Phase())
	}
	f := m.Step()
	if strings.Join(f.Committed, ",") != "Go" {
		t.Fatalf("committed = %v, want [Go]", f.Committed)
	}
	if m.PhraseIndex() != 1 || f.Text != "" {
		t.Fatalf("after commit phrase=%d text=%q", m.PhraseIndex(), f.Text)
	}
	m.Step()
	m.Step()
	if got := m.Text(); got != "hé" {
		t.Fatalf("multi-byte typing = %q, want hé", got)
	}
}

func TestCycleResetsAfterAllPhrases(t *testing.T) {
	phrases := []string{"Go", "SQL", "UX"}
	m := New(phrases, testTiming)
	// type + hold/commit every phrase
	for _, p := range phrases {
		for range []rune(p) {
			m.Step()
		}
		m.Step()
	}
	if m.Phase() != Resting {
		t.Fatalf("phase = %v, want resting", m.Phase())
	}
	if got := strings.Join(m.Committed(), ","); got != "Go,SQL,UX" {
		t.Fatalf("committed = %q", got)
	}
	f := m.Step()
	if m.PhraseIndex() != 0 || m.Phase() != Typing {
		t.Fatalf("after cycle phrase=%d phase=%v, want 0 typing", m.PhraseIndex(), m.Phase())
	}
	if len(f.Committed) != 0 || f.Text != "" {
		t.Fatalf("after cycle frame = %+v, want empty", f)
	}
}

func TestDelays(t *testing.T) {
	frames := Schedule([]string{"ab"}, testTiming)
	want := []time.Duration{testTiming.Type, testTiming.Hold, testTiming.Cycle, testTiming.Type}
	if len(frames) != len(want) {
		t.Fatalf("frames = %d, want %d", len(frames), len(want))
	}
	for i, d := range want {
		if frames[i].Delay != d || frames[i].DelayMS != d.Milliseconds() {
			t.Errorf("frame %d delay = %v (%dms), want %v", i, frames[i].Delay, frames[i].DelayMS, d)
		}
	}
}

func TestScheduleIsOneCycle(t *testing.T) {
	phrases := []string{"Go", "", "Web"}
	frames := Schedule(phrases, testTiming)
	if len(frames) != CycleLen(phrases) {
		t.Fatalf("frames = %d, want %d", len(frames), CycleLen(phrases))
	}
	last := frames[len(frames)-1]
	if last.Text != "" || len(last.Committed) != 0 {
		t.Fatalf("last frame should be the reset, got %+v", last)
	}
	rest := frames[len(frames)-2]
	if strings.Join(rest.Committed, "|") != "Go||Web" {
		t.Fatalf("resting frame committed = %q", rest.Committed)
	}
	b, err := json.Marshal(frames[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"delay_ms":10`) {
		t.Errorf("json frame = %s", b)
	}
}

func TestNoPhrases(t *testing.T) {
	if frames := Schedule(nil, testTiming); len(frames) != 0 {
		t.Fatalf("Schedule(nil) = %d frames", len(frames))
	}
	m := New(nil, testTiming)
	if f := m.Step(); f.Text != "" || f.Delay != testTiming.Cycle {
		t.Fatalf("empty machine frame = %+v", f)
	}
}
