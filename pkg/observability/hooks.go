// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of layout passes without
// adding hard dependencies on specific observability backends. Consumers
// register hooks at startup to receive events about driver passes, packing
// and container resizes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetSinkHooks(&mySinkHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnPassStart(ctx, "resize")
//	// ... probe, measure, pack ...
//	observability.Layout().OnPassComplete(ctx, "resize", true, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout driver.
type LayoutHooks interface {
	// Pass events. trigger names what started the pass (attach, resize,
	// content, children, poll). packed is false when the pass found nothing
	// to do.
	OnPassStart(ctx context.Context, trigger string)
	OnPassComplete(ctx context.Context, trigger string, packed bool, duration time.Duration, err error)

	// OnPack records a packing run over boxes placed into columns.
	OnPack(ctx context.Context, columns, boxes int, height float64)

	// OnResize records a width change that survived scrollbar filtering.
	OnResize(ctx context.Context, width float64, columns int)
}

// =============================================================================
// Sink Hooks
// =============================================================================

// SinkHooks receives events from frame exporters.
type SinkHooks interface {
	// OnExport records a frame written in format with the output size in bytes.
	OnExport(ctx context.Context, format string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPassStart(context.Context, string)                                {}
func (NoopLayoutHooks) OnPassComplete(context.Context, string, bool, time.Duration, error) {}
func (NoopLayoutHooks) OnPack(context.Context, int, int, float64)                          {}
func (NoopLayoutHooks) OnResize(context.Context, float64, int)                             {}

// NoopSinkHooks is a no-op implementation of SinkHooks.
type NoopSinkHooks struct{}

func (NoopSinkHooks) OnExport(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	sinkHooks   SinkHooks   = NoopSinkHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any driver is attached.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetSinkHooks registers custom sink hooks.
func SetSinkHooks(h SinkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sinkHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Sink returns the registered sink hooks.
func Sink() SinkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sinkHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	sinkHooks = NoopSinkHooks{}
}
