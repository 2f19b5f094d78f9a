// Package debounce coalesces bursts of calls into a single delayed call.
//
// A [Debouncer] fires its function once per quiet period: every Trigger
// replaces the pending call and restarts the wait, and the function receives
// the argument of the last Trigger in the burst.
//
//	d := debounce.New(schedule.Real(), 60*time.Millisecond, func(w float64) {
//	    relayout(w)
//	})
//	d.Trigger(898)
//	d.Trigger(900) // only relayout(900) runs, 60ms after this call
package debounce

import (
	"sync"
	"time"

	"github.com/matzehuels/masonry/pkg/schedule"
)

// Debouncer delays calls to a function until no Trigger has happened for the
// configured wait. It is safe for concurrent use.
type Debouncer[T any] struct {
	sched schedule.Scheduler
	wait  time.Duration
	fn    func(T)

	mu      sync.Mutex
	gen     uint64
	pending schedule.Timer
	stopped bool
}

// New returns a Debouncer that calls fn on s after wait of quiet.
func New[T any](s schedule.Scheduler, wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{sched: s, wait: wait, fn: fn}
}

// Trigger schedules fn(arg), cancelling any call still waiting.
// Triggers after Stop are ignored.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.sched.AfterFunc(d.wait, func() { d.fire(gen, arg) })
}

// fire runs fn unless a newer Trigger or Stop superseded this call. A timer
// that already started when Stop was called is dropped here.
func (d *Debouncer[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.fn(arg)
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Cancel drops the waiting call, if any, and reports whether there was one.
// The Debouncer remains usable.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Stop drops the waiting call and disables future Triggers.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	return d.cancelLocked()
}

func (d *Debouncer[T]) cancelLocked() bool {
	d.gen++
	if d.pending == nil {
		return false
	}
	d.pending.Stop()
	d.pending = nil
	return true
}
