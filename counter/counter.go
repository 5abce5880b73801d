// Package counter computes the headline numbers on the home page and the
// eased frame sequence the client plays once a counter scrolls into view.
package counter

import (
	"math"
	"time"

	"github.com/eringen/folio/content"
)

// DefaultSteps is the number of frames a counter animation uses.
const DefaultSteps = 40

// Counter is one animated statistic.
type Counter struct {
	Label  string
	Target int
	Suffix string
}

// Ease is an ease-out cubic curve on [0, 1].
func Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

// Frames returns steps values rising from near zero to exactly target. The
// sequence never decreases. A non-positive target yields a single frame.
func Frames(target, steps int) []int {
	if steps < 1 {
		steps = 1
	}
	if target <= 0 {
		return []int{target}
	}
	out := make([]int, steps)
	prev := 0
	for i := 0; i < steps; i++ {
		v := int(math.Round(Ease(float64(i+1)/float64(steps)) * float64(target)))
		if v < prev {
			v = prev
		}
		out[i] = v
		prev = v
	}
	out[steps-1] = target
	return out
}

// FromProjects derives the home page counters: published projects, distinct
// technologies, and years active since the given year (or since the earliest
// project when since is zero). Years active is never below one.
func FromProjects(projects []content.Project, since int, now time.Time) []Counter {
	start := since
	if start == 0 {
		for _, p := range projects {
			if p.Year > 0 && (start == 0 || p.Year < start) {
				start = p.Year
			}
		}
	}
	years := 1
	if start > 0 && now.Year()-start > years {
		years = now.Year() - start
	}
	return []Counter{
		{Label: "Projects shipped", Target: len(projects)},
		{Label: "Technologies", Target: len(content.AllTags(projects))},
		{Label: "Years building", Target: years, Suffix: "+"},
	}
}
