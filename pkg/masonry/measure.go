package masonry

import (
	"slices"

	"github.com/matzehuels/masonry/pkg/errors"
)

// Snapshot is the layout's record of every box, keyed for lookup and
// ordered as the children were declared.
type Snapshot struct {
	Boxes map[string]Box
	Order []string
}

// Len returns the number of boxes.
func (s Snapshot) Len() int { return len(s.Order) }

// Box returns the box recorded for key.
func (s Snapshot) Box(key string) (Box, bool) {
	b, ok := s.Boxes[key]
	return b, ok
}

// Items returns the packing input for every box, in order.
func (s Snapshot) Items() []Item {
	items := make([]Item, 0, len(s.Order))
	for _, key := range s.Order {
		b := s.Boxes[key]
		items = append(items, Item{Key: key, Span: b.DeclaredSpan, Height: b.Height})
	}
	return items
}

// Remeasure reads every child and reports whether the layout needs to be
// repacked.
//
// The returned snapshot holds exactly one box per current child; keys that
// are no longer children are dropped. A box counts as changed when:
//   - it has no prior geometry, or was never positioned (first pass)
//   - its height differs from the stored height
//   - its span clamped to columns differs from the stored effective span
//
// Adding, removing or reordering children also counts as a change. Boxes
// keep their previous state; only packing moves them to [Positioned].
//
// Remeasure fails with a MISSING_KEY error when a child has no key and a
// DUPLICATE_KEY error when two children share one. Both are contract
// violations by the rendering layer.
func Remeasure(prev Snapshot, children []Element, columns int) (Snapshot, bool, error) {
	next := Snapshot{
		Boxes: make(map[string]Box, len(children)),
		Order: make([]string, 0, len(children)),
	}
	seen := make(map[string]int, len(children))
	changed := false

	for i, child := range children {
		key := child.Key()
		if key == "" {
			return Snapshot{}, false, errors.MissingKey(i)
		}
		if first, dup := seen[key]; dup {
			return Snapshot{}, false, errors.DuplicateKey(key, first, i)
		}
		seen[key] = i

		declared := max(child.Span(), 1)
		box := Box{
			Key:           key,
			DeclaredSpan:  declared,
			EffectiveSpan: ClampSpan(declared, columns),
			Height:        child.Height(),
			State:         Unmeasured{},
		}

		old, ok := prev.Boxes[key]
		switch {
		case !ok || !old.Measured():
			changed = true
		case old.Height != box.Height || old.EffectiveSpan != box.EffectiveSpan:
			box.State = old.State
			changed = true
		default:
			box.State = old.State
		}

		next.Boxes[key] = box
		next.Order = append(next.Order, key)
	}

	if !slices.Equal(prev.Order, next.Order) {
		changed = true
	}
	return next, changed, nil
}

// place records the packing result on every box. r must come from packing
// s.Items().
func (s Snapshot) place(r Result) Snapshot {
	boxes := make(map[string]Box, len(s.Boxes))
	for _, p := range r.Placements {
		b := s.Boxes[p.Key]
		b.EffectiveSpan = p.Span
		b.State = Positioned{Position: Position{
			Column:         p.Column,
			ColumnOffset:   p.Left,
			VerticalOffset: p.Top,
		}}
		boxes[p.Key] = b
	}
	return Snapshot{Boxes: boxes, Order: slices.Clone(s.Order)}
}
