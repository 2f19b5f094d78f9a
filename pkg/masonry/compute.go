package masonry

import "fmt"

// Compute lays out children once for a container of the given width. It is
// the single-pass equivalent of attaching a [Driver] and reading its first
// frame.
func Compute(width float64, children []Element, opts Options) (Frame, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Frame{}, fmt.Errorf("invalid options: %w", err)
	}
	columns := ColumnsForWidth(width, opts.ReferenceColumnWidth)
	snap, _, err := Remeasure(Snapshot{}, children, columns)
	if err != nil {
		return Frame{}, err
	}
	return newFrame(width, Pack(columns, snap.Items())), nil
}
