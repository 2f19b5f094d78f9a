package debounce

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/matzehuels/masonry/pkg/schedule"
)

const wait = 60 * time.Millisecond

func TestDebouncerCoalesces(t *testing.T) {
	clock := schedule.NewManual()
	var got []int
	d := New(clock, wait, func(v int) { got = append(got, v) })

	d.Trigger(1)
	clock.Advance(20 * time.Millisecond)
	d.Trigger(2)
	clock.Advance(20 * time.Millisecond)
	d.Trigger(3)

	clock.Advance(59 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired before quiet period ended: %v", got)
	}

	clock.Advance(time.Millisecond)
	if diff := cmp.Diff([]int{3}, got); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if d.Pending() {
		t.Error("Pending() = true after fire")
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	clock := schedule.NewManual()
	var got []string
	d := New(clock, wait, func(v string) { got = append(got, v) })

	d.Trigger("a")
	clock.Advance(wait)
	d.Trigger("b")
	d.Trigger("c")
	clock.Advance(wait)

	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDebouncerCancel(t *testing.T) {
	clock := schedule.NewManual()
	calls := 0
	d := New(clock, wait, func(struct{}) { calls++ })

	if d.Cancel() {
		t.Error("Cancel() with nothing pending = true")
	}

	d.Trigger(struct{}{})
	if !d.Pending() {
		t.Fatal("Pending() = false after Trigger")
	}
	if !d.Cancel() {
		t.Error("Cancel() = false with a pending call")
	}
	clock.Advance(time.Second)
	if calls != 0 {
		t.Errorf("calls = %d after Cancel, want 0", calls)
	}

	d.Trigger(struct{}{})
	clock.Advance(wait)
	if calls != 1 {
		t.Errorf("calls = %d after re-Trigger, want 1", calls)
	}
}

func TestDebouncerStop(t *testing.T) {
	clock := schedule.NewManual()
	calls := 0
	d := New(clock, wait, func(int) { calls++ })

	d.Trigger(1)
	d.Stop()
	d.Trigger(2)
	clock.Advance(time.Second)

	if calls != 0 {
		t.Errorf("calls = %d after Stop, want 0", calls)
	}
	if clock.Pending() != 0 {
		t.Errorf("scheduler still holds %d timers", clock.Pending())
	}
}

func TestDebouncerRealClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := make(chan int, 4)
	d := New(schedule.Real(), 5*time.Millisecond, func(v int) { got <- v })
	for i := 1; i <= 3; i++ {
		d.Trigger(i)
	}

	select {
	case v := <-got:
		if v != 3 {
			t.Errorf("fired with %d, want 3", v)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	select {
	case v := <-got:
		t.Errorf("unexpected second call with %d", v)
	case <-time.After(20 * time.Millisecond):
	}
}
