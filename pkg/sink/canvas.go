package sink

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
)

// FormatCanvas names the terminal export in observability events.
const FormatCanvas = "canvas"

// Canvas composites styled text blocks at cell offsets. Blocks may carry
// ANSI escapes; widths are measured with lipgloss. Blocks must not overlap.
type Canvas struct {
	width  int
	height int
	rows   map[int][]segment
}

type segment struct {
	x    int
	text string
}

// NewCanvas creates a canvas width cells wide. Rows grow as blocks are placed.
func NewCanvas(width int) *Canvas {
	return &Canvas{width: width, rows: make(map[int][]segment)}
}

// Place draws block with its top-left corner at (x, y).
func (c *Canvas) Place(x, y int, block string) {
	if block == "" {
		return
	}
	x, y = max(x, 0), max(y, 0)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		c.rows[y+i] = append(c.rows[y+i], segment{x: x, text: line})
	}
	c.height = max(c.height, y+len(lines))
}

// Height returns the number of rows drawn so far.
func (c *Canvas) Height() int { return c.height }

// String renders the canvas. Rows end after their last block.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		segs := c.rows[y]
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].x < segs[j].x })
		cursor := 0
		for _, s := range segs {
			if s.x > cursor {
				b.WriteString(strings.Repeat(" ", s.x-cursor))
				cursor = s.x
			}
			b.WriteString(s.text)
			cursor += lipgloss.Width(s.text)
		}
	}
	return b.String()
}

// RenderCanvas draws every visible placement of f on a canvas width cells
// wide. card returns the rendered block for a placement; it is called with
// the placement's cell width. Hidden placements are skipped.
func RenderCanvas(ctx context.Context, f masonry.Frame, width int, card func(p masonry.Placement, cells int) string) string {
	c := NewCanvas(width)
	for _, p := range f.Placements {
		if !p.Visible {
			continue
		}
		x, cells := CellSpan(p, width)
		c.Place(x, int(math.Round(p.Top)), card(p, cells))
	}
	out := c.String()
	observability.Sink().OnExport(ctx, FormatCanvas, len(out))
	return out
}

// CellSpan converts a placement's fractional offset and width to cells.
// Adjacent placements share edges exactly, so columns never overlap.
func CellSpan(p masonry.Placement, width int) (x, cells int) {
	x = int(math.Round(p.Left * float64(width)))
	right := int(math.Round(p.Right() * float64(width)))
	return x, max(right-x, 0)
}
