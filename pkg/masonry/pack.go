package masonry

import "math"

// Item is the packing engine's input for one box.
type Item struct {
	Key    string
	Span   int
	Height float64
}

// Result is the output of [Pack].
type Result struct {
	Columns       int
	Placements    []Placement // same order as the input items
	ColumnHeights []float64   // skyline after the last item
	Height        float64     // tallest column
}

// Pack places items into columns with the greedy skyline rule.
//
// Items are processed in order. Each item's span is clamped to columns, and
// every start offset where the span fits is scored by the tallest column it
// would cover. The lowest score wins; on ties the leftmost start wins. The
// covered columns then rise to score + item height.
//
// Pack is pure: identical inputs always produce identical results. It runs
// in O(items × columns × span).
func Pack(columns int, items []Item) Result {
	if columns < 1 {
		columns = 1
	}
	heights := make([]float64, columns)
	placements := make([]Placement, len(items))

	for n, it := range items {
		span := ClampSpan(it.Span, columns)
		starts := columns - span + 1

		best, top := 0, math.Inf(1)
		for i := 0; i < starts; i++ {
			if h := maxHeight(heights[i : i+span]); h < top {
				best, top = i, h
			}
		}

		bottom := top + it.Height
		for i := best; i < best+span; i++ {
			heights[i] = bottom
		}

		placements[n] = Placement{
			Key:     it.Key,
			Visible: true,
			Left:    float64(best) / float64(columns),
			Top:     top,
			Width:   float64(span) / float64(columns),
			Column:  best,
			Span:    span,
			Height:  it.Height,
		}
	}

	return Result{
		Columns:       columns,
		Placements:    placements,
		ColumnHeights: heights,
		Height:        maxHeight(heights),
	}
}

// maxHeight returns the largest value in hs, which must not be empty.
func maxHeight(hs []float64) float64 {
	m := hs[0]
	for _, h := range hs[1:] {
		if h > m {
			m = h
		}
	}
	return m
}
