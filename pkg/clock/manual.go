package clock

import (
	"sync"
	"time"
)

// Manual is a simulated Clock that only moves when Advance or Set is called.
// Callbacks run synchronously on the goroutine that advances time, in deadline
// order, with Now reporting each timer's deadline while its callback runs.
// A stopped timer is removed immediately and can never fire.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers map[*manualTimer]struct{}
}

// NewManual creates a Manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:    start,
		timers: make(map[*manualTimer]struct{}),
	}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the clock has advanced by d.
// Non-positive durations fire on the next Advance, even Advance(0).
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		clock:    m,
		deadline: m.now.Add(max(d, 0)),
		seq:      m.seq,
		fn:       f,
	}
	m.timers[t] = struct{}{}
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers armed by callbacks are fired too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		delete(m.timers, next)
		if next.deadline.After(m.now) {
			m.now = next.deadline
		}
		m.mu.Unlock()

		// Callbacks run unlocked so they can use the clock.
		next.fn()
	}
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// nextDue returns the earliest timer with deadline <= target. Ties go to the
// timer armed first. Caller must hold m.mu.
func (m *Manual) nextDue(target time.Time) *manualTimer {
	var next *manualTimer
	for t := range m.timers {
		if t.deadline.After(target) {
			continue
		}
		if next == nil || t.deadline.Before(next.deadline) ||
			(t.deadline.Equal(next.deadline) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      uint64
	fn       func()
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if _, ok := t.clock.timers[t]; !ok {
		return false
	}
	delete(t.clock.timers, t)
	return true
}
