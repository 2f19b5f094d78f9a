package cli

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/masonry/pkg/boxfile"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/scrollbar"
)

// =============================================================================
// Card Container
// =============================================================================

// scrollGutter is the width in cells of the scroll indicator.
const scrollGutter = 1

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

var cardMetaStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)

// cardContainer is the container the driver lays out: the terminal width and
// boxes rendered as cards whose heights are measured in rows. It is read by
// driver passes on timer goroutines and written by the bubbletea loop.
//
// Cards are measured at the width the driver lays out at, not the terminal
// width: the container tracks width with the same probe as the driver, so
// when the scroll indicator disappears cards keep the width of the frame
// they are drawn in.
type cardContainer struct {
	mu          sync.Mutex
	columnWidth float64
	width       int
	gutter      bool
	expanded    bool
	boxes       []boxfile.Box
	index       map[string]int
	probe       scrollbar.Probe
	layout      *masonry.DimensionTracker
	sized       bool
}

func newCardContainer(boxes []boxfile.Box, columnWidth float64) *cardContainer {
	c := &cardContainer{
		columnWidth: columnWidth,
		boxes:       append([]boxfile.Box(nil), boxes...),
		probe:       scrollbar.Once(measureGutter),
	}
	c.layout = masonry.NewDimensionTracker(columnWidth, c.probe)
	c.reindexLocked()
	return c
}

func (c *cardContainer) reindexLocked() {
	c.index = make(map[string]int, len(c.boxes))
	for i, b := range c.boxes {
		c.index[b.Key] = i
	}
}

// Width returns the terminal width less the scroll indicator when shown.
// The driver calls it once per pass, before Children.
func (c *cardContainer) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observeLocked()
}

func (c *cardContainer) observeLocked() float64 {
	w := c.innerWidthLocked()
	c.layout.UpdateWidth(w)
	c.sized = true
	return w
}

func (c *cardContainer) innerWidthLocked() float64 {
	w := c.width
	if c.gutter {
		w -= scrollGutter
	}
	return float64(max(w, 0))
}

// Children renders every card at its column width and reports its height.
func (c *cardContainer) Children() []masonry.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sized {
		c.observeLocked()
	}
	width, columns := c.layout.Width(), c.layout.Columns()
	out := make([]masonry.Element, len(c.boxes))
	for i, b := range c.boxes {
		span := masonry.ClampSpan(b.Span, columns)
		card := renderCard(b, cardCells(width, span, columns), c.expanded)
		out[i] = masonry.NewElement(b.Key, b.Span, float64(lipgloss.Height(card)))
	}
	return out
}

// measureGutter renders a row with and without an indicator cell.
func measureGutter() float64 {
	row := " "
	return scrollbar.Gutter(float64(lipgloss.Width(row+StyleDim.Render("│"))), float64(lipgloss.Width(row)))
}

// card renders the box for p at the width it was measured with in f.
func (c *cardContainer) card(p masonry.Placement, f masonry.Frame) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[p.Key]
	if !ok {
		return ""
	}
	return renderCard(c.boxes[i], cardCells(f.Width, p.Span, f.Columns), c.expanded)
}

func (c *cardContainer) setWidth(w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = w
}

// setGutter shows or hides the scroll indicator and reports whether that
// changed the container width.
func (c *cardContainer) setGutter(on bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gutter == on {
		return false
	}
	c.gutter = on
	return true
}

func (c *cardContainer) hasGutter() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gutter
}

func (c *cardContainer) add(b boxfile.Box) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boxes = append(c.boxes, b)
	c.reindexLocked()
}

func (c *cardContainer) removeLast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.boxes) == 0 {
		return false
	}
	c.boxes = c.boxes[:len(c.boxes)-1]
	c.reindexLocked()
	return true
}

// rotate moves the last box to the front.
func (c *cardContainer) rotate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.boxes)
	if n < 2 {
		return false
	}
	last := c.boxes[n-1]
	copy(c.boxes[1:], c.boxes[:n-1])
	c.boxes[0] = last
	c.reindexLocked()
	return true
}

func (c *cardContainer) toggleExpanded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded = !c.expanded
}

func (c *cardContainer) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.boxes)
}

// cardCells is the width in cells of a card spanning span of columns. One
// cell on the right separates neighbouring cards.
func cardCells(width float64, span, columns int) int {
	if columns < 1 {
		columns = 1
	}
	return int(width*float64(span)/float64(columns)) - 1
}

// minCardCells fits the border, the padding and one cell of text.
const minCardCells = 5

// renderCard draws b in a bordered card cells wide. Slots too narrow for the
// border get the bare text clipped to the slot.
func renderCard(b boxfile.Box, cells int, expanded bool) string {
	if cells < 1 {
		return ""
	}
	var body strings.Builder
	body.WriteString(StyleTitle.Render(b.Title))
	if b.Body != "" {
		body.WriteString("\n")
		body.WriteString(b.Body)
	}
	if expanded && (b.Author != "" || b.Genre != "") {
		body.WriteString("\n")
		body.WriteString(cardMetaStyle.Render(strings.Trim(b.Author+" · "+b.Genre, " ·")))
	}
	if cells < minCardCells {
		return lipgloss.NewStyle().Width(cells).MaxWidth(cells).Render(body.String())
	}
	return cardStyle.Width(cells - 2).Render(body.String()) // border excluded, padding included
}
