// Package ratelimit is a per-key sliding-window limiter used for admin login
// attempts and the analytics collector.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows at most max events per key within window.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// New creates a Limiter and starts a background sweeper that drops idle
// keys every window. Call Stop to end the sweeper.
func New(max int, window time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Stop ends the background sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			cutoff := l.now().Add(-l.window)
			for key := range l.hits {
				l.pruneLocked(key, cutoff)
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// pruneLocked drops expired hits for key and returns how many remain.
func (l *Limiter) pruneLocked(key string, cutoff time.Time) int {
	hits := l.hits[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.hits, key)
		return 0
	}
	l.hits[key] = kept
	return len(kept)
}

// Check reports whether key is under the limit without recording anything.
func (l *Limiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(key, l.now().Add(-l.window)) < l.max
}

// Record registers one event for key.
func (l *Limiter) Record(key string) {
	l.mu.Lock()
	l.hits[key] = append(l.hits[key], l.now())
	l.mu.Unlock()
}

// Allow checks the limit and, when under it, records the event.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if l.pruneLocked(key, now.Add(-l.window)) >= l.max {
		return false
	}
	l.hits[key] = append(l.hits[key], now)
	return true
}
