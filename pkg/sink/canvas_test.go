package sink

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/masonry/pkg/masonry"
)

func TestCanvasPlace(t *testing.T) {
	c := NewCanvas(10)
	c.Place(0, 0, "aa\naa")
	c.Place(5, 1, "bbb")
	c.Place(3, 3, "c")

	want := "aa\naa   bbb\n\n   c"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if c.Height() != 4 {
		t.Errorf("Height() = %d, want 4", c.Height())
	}
}

func TestCanvasOrdersSegments(t *testing.T) {
	c := NewCanvas(10)
	c.Place(6, 0, "right")
	c.Place(0, 0, "left")
	if got, want := c.String(), "left  right"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvasMeasuresStyledText(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("ab")
	c := NewCanvas(10)
	c.Place(0, 0, styled)
	c.Place(4, 0, "cd")

	got := c.String()
	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("rendered width = %d, want 6 (styled text must not count escapes)", w)
	}
	if !strings.HasSuffix(got, "  cd") {
		t.Errorf("String() = %q, want two cells of padding before cd", got)
	}
}

func TestCanvasIgnoresEmptyBlocks(t *testing.T) {
	c := NewCanvas(4)
	c.Place(0, 5, "")
	if c.Height() != 0 || c.String() != "" {
		t.Errorf("empty block drew rows: height %d, %q", c.Height(), c.String())
	}
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		name      string
		p         masonry.Placement
		width     int
		wantX     int
		wantCells int
	}{
		{"first of three", masonry.Placement{Left: 0, Width: 1.0 / 3}, 90, 0, 30},
		{"middle of three", masonry.Placement{Left: 1.0 / 3, Width: 1.0 / 3}, 90, 30, 30},
		{"two of three", masonry.Placement{Left: 1.0 / 3, Width: 2.0 / 3}, 90, 30, 60},
		{"uneven width", masonry.Placement{Left: 1.0 / 3, Width: 1.0 / 3}, 80, 27, 26},
		{"full width", masonry.Placement{Left: 0, Width: 1}, 80, 0, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, cells := CellSpan(tt.p, tt.width)
			if x != tt.wantX || cells != tt.wantCells {
				t.Errorf("CellSpan() = (%d, %d), want (%d, %d)", x, cells, tt.wantX, tt.wantCells)
			}
		})
	}
}

func TestRenderCanvas(t *testing.T) {
	f, err := masonry.Compute(600, []masonry.Element{
		masonry.NewElement("a", 1, 2),
		masonry.NewElement("b", 1, 1),
		masonry.NewElement("c", 1, 1),
	}, masonry.Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	f.Placements = append(f.Placements, masonry.Hidden("pending"))

	var calls []string
	out := RenderCanvas(context.Background(), f, 8, func(p masonry.Placement, cells int) string {
		calls = append(calls, p.Key)
		lines := make([]string, int(p.Height))
		for i := range lines {
			lines[i] = strings.Repeat(p.Key, cells)
		}
		return strings.Join(lines, "\n")
	})

	want := "aaaabbbb\naaaacccc"
	if out != want {
		t.Errorf("RenderCanvas() = %q, want %q", out, want)
	}
	if strings.Join(calls, ",") != "a,b,c" {
		t.Errorf("card called for %v, want visible boxes only", calls)
	}
}
