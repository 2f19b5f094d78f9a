package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by Advance. It never starts
// goroutines: callbacks run on the goroutine calling Advance, in due-time
// order, with the scheduler unlocked so they may schedule or stop timers.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers map[uint64]*manualTimer
}

// NewManual creates a Manual scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{timers: make(map[uint64]*manualTimer)}
}

type manualTimer struct {
	m        *Manual
	id       uint64
	due      time.Duration
	interval time.Duration
	f        func()
}

// Stop removes the timer from its scheduler.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if _, ok := t.m.timers[t.id]; !ok {
		return false
	}
	delete(t.m.timers, t.id)
	return true
}

// AfterFunc schedules f to run once d after the current manual time.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	return m.add(d, 0, f)
}

// Every schedules f to run every d, starting d after the current manual time.
// Intervals below one nanosecond are raised to one.
func (m *Manual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		d = 1
	}
	return m.add(d, d, f)
}

func (m *Manual) add(d, interval time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, id: m.seq, due: m.now + d, interval: interval, f: f}
	m.timers[t.id] = t
	return t
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of active timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers with equal due times fire in scheduling order. Periodic timers fire
// once per elapsed interval.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			delete(m.timers, next.id)
		}
		f := next.f
		m.mu.Unlock()

		f()
	}
}

// nextDue returns the earliest timer due at or before target. m.mu must be held.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

var _ Scheduler = (*Manual)(nil)
