package masonry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/debounce"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/schedule"
	"github.com/matzehuels/masonry/pkg/scrollbar"
)

// State is a stage of a layout pass.
type State int

const (
	StateIdle State = iota
	StateProbing
	StateMeasuring
	StatePacking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbing:
		return "probing"
	case StateMeasuring:
		return "measuring"
	case StatePacking:
		return "packing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Trigger names what started a layout pass.
type Trigger string

const (
	TriggerAttach   Trigger = "attach"
	TriggerResize   Trigger = "resize"
	TriggerContent  Trigger = "content"
	TriggerChildren Trigger = "children"
	TriggerPoll     Trigger = "poll"
)

// Pass describes the most recent layout pass.
type Pass struct {
	Trigger Trigger
	Resized bool // the tracker accepted a new width
	Changed bool // the measurer found a changed box or child set
	Packed  bool
	Path    []State // states visited, ending in StateIdle
}

// Stats counts driver activity since creation.
type Stats struct {
	Passes  int
	Packs   int
	Resizes int
	Last    Pass
}

// DriverOption configures a [Driver].
type DriverOption func(*Driver)

// WithOptions sets the layout options.
func WithOptions(o Options) DriverOption { return func(d *Driver) { d.opts = o } }

// WithScheduler sets the timer source for the resize debounce and the poll.
func WithScheduler(s schedule.Scheduler) DriverOption { return func(d *Driver) { d.sched = s } }

// WithProbe sets the scrollbar probe used to filter width noise.
func WithProbe(p scrollbar.Probe) DriverOption { return func(d *Driver) { d.probe = p } }

// WithLogger sets the logger for pass decisions (debug level) and errors.
func WithLogger(l *log.Logger) DriverOption { return func(d *Driver) { d.logger = l } }

// WithPublisher sets the function receiving every repacked frame. Frames
// arrive in pass order. fn is called without the driver lock held but must
// not call back into the driver: a later pass may be waiting on it.
func WithPublisher(fn func(Frame)) DriverOption { return func(d *Driver) { d.publish = fn } }

// WithErrorHandler sets the function receiving errors from passes started
// by timers (resize debounce, poll). The default logs the error.
func WithErrorHandler(fn func(error)) DriverOption { return func(d *Driver) { d.onError = fn } }

// Driver keeps a container laid out. It runs a pass on attach, on debounced
// resizes, on content readiness and child-set changes, and on a background
// poll that catches changes no signal reported.
//
// Passes are serialized: every entry point holds the driver lock for the
// whole pass and a pass never blocks. A pass whose inputs did not change
// returns to idle without packing or publishing.
//
// Contract violations (MISSING_KEY, DUPLICATE_KEY) detach the driver.
type Driver struct {
	container Container
	opts      Options
	sched     schedule.Scheduler
	probe     scrollbar.Probe
	logger    *log.Logger
	publish   func(Frame)
	onError   func(error)

	mu       sync.Mutex
	pubMu    sync.Mutex
	ctx      context.Context
	attached bool
	tracker  *DimensionTracker
	snapshot Snapshot
	frame    Frame
	state    State
	stats    Stats
	err      error
	resize   *debounce.Debouncer[struct{}]
	poll     schedule.Timer
	unwatch  func() bool
}

// NewDriver creates a detached driver for container.
func NewDriver(container Container, opts ...DriverOption) (*Driver, error) {
	if container == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "driver needs a container")
	}
	d := &Driver{container: container, ctx: context.Background()}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if d.sched == nil {
		d.sched = schedule.Real()
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	if d.onError == nil {
		d.onError = func(err error) { d.logger.Error("layout pass failed", "err", err) }
	}
	d.tracker = NewDimensionTracker(d.opts.ReferenceColumnWidth, d.probe)
	return d, nil
}

// Attach runs the first pass and starts the background poll. The driver
// detaches itself when ctx is cancelled; a nil ctx is never cancelled.
// Attaching an attached driver does nothing.
func (d *Driver) Attach(ctx context.Context) error {
	d.mu.Lock()
	if d.attached {
		d.mu.Unlock()
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	d.ctx = ctx
	d.attached = true
	d.err = nil
	d.resize = debounce.New(d.sched, d.opts.ResizeDebounce, func(struct{}) {
		d.fromTimer(TriggerResize)
	})

	frame, packed, err := d.passLocked(TriggerAttach)
	if err != nil {
		d.detachLocked()
		d.mu.Unlock()
		return err
	}

	d.poll = d.sched.Every(d.opts.PollInterval, func() { d.fromTimer(TriggerPoll) })
	d.unwatch = context.AfterFunc(ctx, d.Detach)
	d.logger.Debug("layout attached", "width", d.tracker.Width(), "columns", d.tracker.Columns())
	d.finish(frame, packed)
	return nil
}

// Detach stops the poll and any pending resize. It is safe to call more than
// once and from any goroutine.
func (d *Driver) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detachLocked()
}

func (d *Driver) detachLocked() {
	if !d.attached {
		return
	}
	d.attached = false
	if d.poll != nil {
		d.poll.Stop()
		d.poll = nil
	}
	if d.resize != nil {
		d.resize.Stop()
	}
	if d.unwatch != nil {
		d.unwatch()
		d.unwatch = nil
	}
	d.logger.Debug("layout detached")
}

// Resize reports a container resize. Bursts are coalesced into one pass
// after the resize debounce period.
func (d *Driver) Resize() {
	d.mu.Lock()
	r, attached := d.resize, d.attached
	d.mu.Unlock()
	if attached {
		r.Trigger(struct{}{})
	}
}

// ContentReady reports that content finished loading (fonts, images) and
// heights may have changed. It runs a pass immediately.
func (d *Driver) ContentReady() error { return d.run(TriggerContent) }

// ChildrenChanged reports that children were added, removed or reordered.
// It runs a pass immediately.
func (d *Driver) ChildrenChanged() error { return d.run(TriggerChildren) }

// Refresh runs a pass as if the poll had fired.
func (d *Driver) Refresh() error { return d.run(TriggerPoll) }

func (d *Driver) fromTimer(t Trigger) {
	if err := d.run(t); err != nil {
		d.onError(err)
	}
}

// run executes one pass if the driver is attached.
func (d *Driver) run(t Trigger) error {
	d.mu.Lock()
	if !d.attached {
		d.mu.Unlock()
		return nil
	}
	frame, packed, err := d.passLocked(t)
	if err != nil {
		if errors.IsFatal(err) {
			d.detachLocked()
		}
		d.mu.Unlock()
		return err
	}
	d.finish(frame, packed)
	return nil
}

// finish releases the driver lock and publishes frame if the pass packed.
// pubMu is taken before mu is released so frames publish in pass order.
func (d *Driver) finish(frame Frame, packed bool) {
	if !packed || d.publish == nil {
		d.mu.Unlock()
		return
	}
	d.pubMu.Lock()
	d.mu.Unlock()
	defer d.pubMu.Unlock()
	d.publish(frame)
}

// passLocked runs probing, measuring and packing. d.mu must be held.
func (d *Driver) passLocked(t Trigger) (Frame, bool, error) {
	start := time.Now()
	hooks := observability.Layout()
	hooks.OnPassStart(d.ctx, string(t))

	pass := Pass{Trigger: t}
	d.stats.Passes++
	d.enter(&pass, StateProbing)

	pass.Resized = d.tracker.UpdateWidth(d.container.Width())
	columns := d.tracker.Columns()
	if pass.Resized {
		d.stats.Resizes++
		hooks.OnResize(d.ctx, d.tracker.Width(), columns)
		d.logger.Debug("container resized", "trigger", t, "width", d.tracker.Width(), "columns", columns)
	}

	if !pass.Resized {
		d.enter(&pass, StateMeasuring)
	}
	next, changed, err := Remeasure(d.snapshot, d.container.Children(), columns)
	if err != nil {
		d.err = err
		d.enter(&pass, StateIdle)
		d.stats.Last = pass
		hooks.OnPassComplete(d.ctx, string(t), false, time.Since(start), err)
		return Frame{}, false, fmt.Errorf("layout pass (%s): %w", t, err)
	}
	pass.Changed = changed

	if !pass.Resized && !changed {
		d.snapshot = next
		d.enter(&pass, StateIdle)
		d.stats.Last = pass
		hooks.OnPassComplete(d.ctx, string(t), false, time.Since(start), nil)
		return Frame{}, false, nil
	}

	d.enter(&pass, StatePacking)
	res := Pack(columns, next.Items())
	d.snapshot = next.place(res)
	d.frame = newFrame(d.tracker.Width(), res)
	d.stats.Packs++
	pass.Packed = true
	hooks.OnPack(d.ctx, columns, next.Len(), res.Height)
	d.logger.Debug("layout packed", "trigger", t, "boxes", next.Len(), "columns", columns, "height", res.Height)

	d.enter(&pass, StateIdle)
	d.stats.Last = pass
	hooks.OnPassComplete(d.ctx, string(t), true, time.Since(start), nil)
	return d.frame.Clone(), true, nil
}

func (d *Driver) enter(p *Pass, s State) {
	d.state = s
	p.Path = append(p.Path, s)
}

// Frame returns the most recently packed frame.
func (d *Driver) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame.Clone()
}

// Lookup returns the placement for key. Keys that have not been packed yet
// get a hidden placement.
func (d *Driver) Lookup(key string) Placement {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, _ := d.frame.Lookup(key)
	return p
}

// Box returns the driver's record for key.
func (d *Driver) Box(key string) (Box, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot.Box(key)
}

// Columns returns the current column count.
func (d *Driver) Columns() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.Columns()
}

// State returns the driver's current state. Outside a pass it is always
// [StateIdle].
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Stats returns activity counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	s.Last.Path = append([]State(nil), d.stats.Last.Path...)
	return s
}

// Attached reports whether the driver is running.
func (d *Driver) Attached() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attached
}

// Err returns the error of the last failed pass since Attach.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
