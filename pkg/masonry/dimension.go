package masonry

import (
	"math"

	"github.com/matzehuels/masonry/pkg/scrollbar"
)

// ColumnsForWidth returns max(1, round(width / columnWidth)). A non-positive
// columnWidth falls back to [DefaultReferenceColumnWidth].
func ColumnsForWidth(width, columnWidth float64) int {
	if columnWidth <= 0 || math.IsNaN(columnWidth) {
		columnWidth = DefaultReferenceColumnWidth
	}
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return 1
	}
	return max(1, int(math.Round(width/columnWidth)))
}

// DimensionTracker owns the container width and the column count derived
// from it.
type DimensionTracker struct {
	columnWidth float64
	probe       scrollbar.Probe
	width       float64
	observed    bool
}

// NewDimensionTracker creates a tracker deriving columns from columnWidth.
// A nil probe means the container has no scrollbar.
func NewDimensionTracker(columnWidth float64, probe scrollbar.Probe) *DimensionTracker {
	if probe == nil {
		probe = scrollbar.None
	}
	return &DimensionTracker{columnWidth: columnWidth, probe: probe}
}

// UpdateWidth records the container's current width and reports whether it
// is a real change. The first observation is always a change. After that, a
// width equal to the stored width, or to the stored width plus the scrollbar
// size, is scrollbar noise and leaves the tracker untouched.
func (t *DimensionTracker) UpdateWidth(current float64) bool {
	if t.observed && (current == t.width || current == t.width+t.probe.Size()) {
		return false
	}
	t.width = current
	t.observed = true
	return true
}

// Width returns the last stored width.
func (t *DimensionTracker) Width() float64 { return t.width }

// Columns returns the column count for the stored width.
func (t *DimensionTracker) Columns() int {
	return ColumnsForWidth(t.width, t.columnWidth)
}
