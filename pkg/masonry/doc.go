// Package masonry implements a multi-column "masonry" layout engine.
//
// # Overview
//
// Boxes of varying height are packed into columns so that column heights
// stay as even as a greedy heuristic allows. A box may span several
// columns; spans are clamped to the current column count. The layout adapts
// to container resizes and to boxes whose height changes after their content
// settles (late fonts, images, streamed text).
//
// The package is split along the stages of a layout pass:
//
//  1. [DimensionTracker]: derive the column count from the container width,
//     ignoring width changes caused by a scrollbar appearing.
//  2. [Remeasure]: read every child's key, span and height and decide whether
//     anything changed since the previous pass.
//  3. [Pack]: place boxes with the greedy shortest-column (skyline) rule.
//  4. [Driver]: run passes on attach, resize (debounced), content readiness,
//     child-set changes and a background poll, publishing a [Frame] only when
//     a pass actually repacked.
//
// # Rendering Layer Contract
//
// The rendering layer implements [Container] and [Element]. Each element
// reports a non-empty unique key, a declared span (0 means 1) and its
// natural content height. The driver answers with one [Placement] per key:
// hidden until first measured, then a fractional left offset, a top offset
// and a fractional width.
//
//	d, err := masonry.NewDriver(container,
//	    masonry.WithPublisher(func(f masonry.Frame) { render(f) }),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := d.Attach(ctx); err != nil {
//	    return err
//	}
//	defer d.Detach()
//
// For a single static layout use [Compute].
package masonry
