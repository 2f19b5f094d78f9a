package masonry

import "slices"

// Placement is the output contract for one box.
type Placement struct {
	Key     string  `json:"key"`
	Visible bool    `json:"visible"`
	Left    float64 `json:"left"`  // fraction of container width, 0..1
	Top     float64 `json:"top"`   // vertical offset
	Width   float64 `json:"width"` // fraction of container width
	Column  int     `json:"column"`
	Span    int     `json:"span"`
	Height  float64 `json:"height"`
}

// Bottom returns the vertical offset just below the box.
func (p Placement) Bottom() float64 { return p.Top + p.Height }

// Right returns the fractional offset just right of the box.
func (p Placement) Right() float64 { return p.Left + p.Width }

// Hidden returns the placement of a box that has not been measured yet.
func Hidden(key string) Placement {
	return Placement{Key: key}
}

// Frame is the published result of a layout pass.
type Frame struct {
	Width      float64     `json:"width"`  // container width the frame was computed for
	Columns    int         `json:"columns"`
	Height     float64     `json:"height"` // container height
	Placements []Placement `json:"placements"`
}

// Lookup returns the placement for key, or a hidden placement if the key
// was not part of the frame.
func (f Frame) Lookup(key string) (Placement, bool) {
	for _, p := range f.Placements {
		if p.Key == key {
			return p, true
		}
	}
	return Hidden(key), false
}

// Equal reports whether two frames place every box identically.
func (f Frame) Equal(o Frame) bool {
	if f.Width != o.Width || f.Columns != o.Columns || f.Height != o.Height {
		return false
	}
	if len(f.Placements) != len(o.Placements) {
		return false
	}
	for i := range f.Placements {
		if f.Placements[i] != o.Placements[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of f that shares no placements with it.
func (f Frame) Clone() Frame {
	f.Placements = slices.Clone(f.Placements)
	return f
}

func newFrame(width float64, r Result) Frame {
	return Frame{
		Width:      width,
		Columns:    r.Columns,
		Height:     r.Height,
		Placements: slices.Clone(r.Placements),
	}
}
