// Package pkg provides the libraries behind the masonry layout engine.
//
// # Overview
//
// Masonry packs variable-height boxes into columns. Each box spans one or
// more columns and is dropped onto the run of columns whose tallest column
// is shortest, leftmost on ties. The layout follows container resizes and
// box height changes and is only recomputed when its inputs change.
//
// # Architecture
//
// The data flow of one layout pass:
//
//	container width / child set
//	         ↓
//	    [masonry] DimensionTracker (column count, scrollbar tolerance)
//	         ↓
//	    [masonry] Remeasure (heights, spans, change detection)
//	         ↓
//	    [masonry] Pack (greedy skyline placement)
//	         ↓
//	    Frame → rendering layer ([sink] JSON or terminal canvas)
//
// # Quick Start
//
// Lay out boxes once:
//
//	import "github.com/matzehuels/masonry/pkg/masonry"
//
//	f, _ := masonry.Compute(1200, []masonry.Element{
//	    masonry.NewElement("intro", 2, 180),
//	    masonry.NewElement("notes", 1, 90),
//	}, masonry.Options{})
//	p, _ := f.Lookup("notes")
//
// Keep a live container laid out:
//
//	d, _ := masonry.NewDriver(container, masonry.WithPublisher(render))
//	_ = d.Attach(ctx)
//	defer d.Detach()
//	// on resize:        d.Resize()
//	// on font load:     d.ContentReady()
//	// on add/remove:    d.ChildrenChanged()
//
// # Main Packages
//
// [masonry] - Boxes, the packing engine, the dimension tracker, the
// measurer and the layout driver.
//
// [schedule] - Injectable timers: the runtime clock and a manual clock for
// deterministic tests.
//
// [debounce] - Trailing-edge debouncing over a scheduler.
//
// [scrollbar] - One-shot scrollbar width probes.
//
// [config] - masonry.toml loading.
//
// [boxfile] - TOML and JSON box files and sample generation.
//
// [sink] - Frame export as JSON and terminal compositing.
//
// [errors] - Coded errors, including the fatal MISSING_KEY and DUPLICATE_KEY.
//
// [observability] - Hooks for layout and export events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/masonry/...         # Specific package
//	go test -run Driver ./pkg/...     # Driver tests only
//
// [masonry]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/masonry
// [schedule]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/schedule
// [debounce]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/debounce
// [scrollbar]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/scrollbar
// [config]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/config
// [boxfile]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/boxfile
// [sink]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/sink
// [errors]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/buildinfo
package pkg
