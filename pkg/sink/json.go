// Package sink exports layout frames: as JSON documents for other tools and
// as composited terminal text for the CLI.
package sink

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
)

// FormatJSON names the JSON export in observability events.
const FormatJSON = "json"

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	titles    map[string]string
	hidden    bool
	opts      *masonry.Options
	generator string
}

// WithJSONTitles attaches display titles by box key.
func WithJSONTitles(titles map[string]string) JSONOption {
	return func(r *jsonRenderer) { r.titles = titles }
}

// WithJSONHidden keeps hidden placements in the output. By default only
// visible boxes are exported.
func WithJSONHidden() JSONOption { return func(r *jsonRenderer) { r.hidden = true } }

// WithJSONOptions records the layout options the frame was computed with, so
// the document can be re-packed identically.
func WithJSONOptions(o masonry.Options) JSONOption {
	return func(r *jsonRenderer) { r.opts = &o }
}

// WithJSONGenerator records the program that produced the document.
func WithJSONGenerator(name string) JSONOption {
	return func(r *jsonRenderer) { r.generator = name }
}

type jsonOutput struct {
	Generator   string    `json:"generator,omitempty"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Columns     int       `json:"columns"`
	ColumnWidth float64   `json:"column_width"`
	Layout      *jsonOpts `json:"layout,omitempty"`
	Boxes       []jsonBox `json:"boxes"`
}

type jsonOpts struct {
	ReferenceColumnWidth float64 `json:"reference_column_width"`
	ResizeDebounceMS     int64   `json:"resize_debounce_ms"`
	PollIntervalMS       int64   `json:"poll_interval_ms"`
}

type jsonBox struct {
	Key     string  `json:"key"`
	Title   string  `json:"title,omitempty"`
	Visible bool    `json:"visible"`
	Column  int     `json:"column"`
	Span    int     `json:"span"`
	Left    float64 `json:"left"`  // fraction of the container width
	Width   float64 `json:"width"` // fraction of the container width
	X       float64 `json:"x"`     // Left in container units
	Top     float64 `json:"top"`
	Height  float64 `json:"height"`
}

// RenderJSON exports a frame as a pretty-printed JSON document. Boxes keep
// the frame's child order.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify f and is safe to call concurrently.
func RenderJSON(ctx context.Context, f masonry.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Generator: r.generator,
		Width:     f.Width,
		Height:    f.Height,
		Columns:   f.Columns,
		Boxes:     make([]jsonBox, 0, len(f.Placements)),
	}
	if f.Columns > 0 {
		out.ColumnWidth = f.Width / float64(f.Columns)
	}
	if r.opts != nil {
		out.Layout = &jsonOpts{
			ReferenceColumnWidth: r.opts.ReferenceColumnWidth,
			ResizeDebounceMS:     r.opts.ResizeDebounce.Milliseconds(),
			PollIntervalMS:       r.opts.PollInterval.Milliseconds(),
		}
	}

	for _, p := range f.Placements {
		if !p.Visible && !r.hidden {
			continue
		}
		out.Boxes = append(out.Boxes, jsonBox{
			Key:     p.Key,
			Title:   r.titles[p.Key],
			Visible: p.Visible,
			Column:  p.Column,
			Span:    p.Span,
			Left:    p.Left,
			Width:   p.Width,
			X:       p.Left * f.Width,
			Top:     p.Top,
			Height:  p.Height,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	observability.Sink().OnExport(ctx, FormatJSON, len(data))
	return data, nil
}
