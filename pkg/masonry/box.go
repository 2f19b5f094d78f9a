package masonry

// Element is one child of the masonry container as seen by the rendering
// layer.
type Element interface {
	// Key identifies the child across passes. It must be non-empty and
	// unique within the container.
	Key() string
	// Span is the requested width in columns. Values below 1 mean 1.
	Span() int
	// Height is the child's natural rendered height.
	Height() float64
}

// Container is the rendering layer's view of the masonry container.
type Container interface {
	// Width is the container's inner (client) width.
	Width() float64
	// Children returns the current children in declaration order.
	Children() []Element
}

// NewElement returns a fixed Element, useful for static layouts and tests.
func NewElement(key string, span int, height float64) Element {
	return element{key: key, span: span, height: height}
}

type element struct {
	key    string
	span   int
	height float64
}

func (e element) Key() string     { return e.key }
func (e element) Span() int       { return e.span }
func (e element) Height() float64 { return e.height }

// Position is where the packing engine put a box.
type Position struct {
	Column         int     // first covered column, 0-based
	ColumnOffset   float64 // Column / columns, a fraction of the container width
	VerticalOffset float64 // distance from the container top
}

// BoxState is either [Unmeasured] or [Positioned].
type BoxState interface {
	boxState()
}

// Unmeasured boxes have been seen but not packed yet. Renderers draw them
// invisibly so their natural height can be read.
type Unmeasured struct{}

// Positioned boxes have been placed by the packing engine.
type Positioned struct {
	Position Position
}

func (Unmeasured) boxState() {}
func (Positioned) boxState() {}

// Box is the layout's record of one child.
type Box struct {
	Key           string
	DeclaredSpan  int
	EffectiveSpan int
	Height        float64
	State         BoxState
}

// Position returns the box position and whether the box has one.
func (b Box) Position() (Position, bool) {
	if p, ok := b.State.(Positioned); ok {
		return p.Position, true
	}
	return Position{}, false
}

// Measured reports whether the box has completed its first pass.
func (b Box) Measured() bool {
	_, ok := b.State.(Positioned)
	return ok
}

// ClampSpan returns the span a box with the declared span occupies in a
// layout with the given column count: at least 1, at most columns.
func ClampSpan(declared, columns int) int {
	if declared < 1 {
		declared = 1
	}
	if columns < 1 {
		columns = 1
	}
	return min(declared, columns)
}
