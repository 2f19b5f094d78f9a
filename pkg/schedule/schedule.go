// Package schedule abstracts timers so the layout driver can run against the
// runtime clock in production and a manually advanced clock in tests.
//
// Two capabilities are provided:
//   - AfterFunc: run f once after a delay (debounce windows)
//   - Every: run f repeatedly at an interval (background polling)
//
// Both return a [Timer] whose Stop releases the underlying resources.
// Callbacks run on scheduler-owned goroutines for [Real] and synchronously
// inside [Manual.Advance] for [Manual]; callers that need serialization must
// provide it themselves.
package schedule

import (
	"sync"
	"time"
)

// Timer is a handle to scheduled work.
type Timer interface {
	// Stop cancels future invocations. It reports whether the timer was
	// still active. Stop does not wait for a callback already running.
	Stop() bool
}

// Scheduler schedules deferred and periodic callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// Real returns a Scheduler backed by the runtime clock.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realScheduler) Every(d time.Duration, f func()) Timer {
	t := &ticker{stop: make(chan struct{}), done: make(chan struct{})}
	go t.run(d, f)
	return t
}

type ticker struct {
	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func (t *ticker) run(d time.Duration, f func()) {
	defer close(t.done)
	tk := time.NewTicker(d)
	defer tk.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-tk.C:
			// Stop may race with a tick that was already delivered.
			select {
			case <-t.stop:
				return
			default:
			}
			f()
		}
	}
}

// Stop halts the ticker. It is safe to call from inside the callback.
func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.stop)
		stopped = true
	})
	return stopped
}

// Wait blocks until the ticker goroutine has exited. It must not be called
// from the callback.
func (t *ticker) Wait() { <-t.done }

// Waiter is implemented by timers that can report when their goroutine has
// exited.
type Waiter interface {
	Wait()
}
