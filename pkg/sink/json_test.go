package sink

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
)

func testFrame(t *testing.T) masonry.Frame {
	t.Helper()
	f, err := masonry.Compute(900, []masonry.Element{
		masonry.NewElement("a", 1, 100),
		masonry.NewElement("b", 2, 50),
		masonry.NewElement("c", 1, 30),
	}, masonry.Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return f
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(context.Background(), testFrame(t))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 900 {
		t.Errorf("Width = %v, want 900", out.Width)
	}
	if out.Columns != 3 {
		t.Errorf("Columns = %d, want 3", out.Columns)
	}
	if out.ColumnWidth != 300 {
		t.Errorf("ColumnWidth = %v, want 300", out.ColumnWidth)
	}
	if out.Height != 100 {
		t.Errorf("Height = %v, want 100", out.Height)
	}
	if len(out.Boxes) != 3 {
		t.Fatalf("Boxes count = %d, want 3", len(out.Boxes))
	}
	if out.Layout != nil {
		t.Error("Layout should be omitted without WithJSONOptions")
	}

	b := out.Boxes[1]
	if b.Key != "b" || b.X != 300 || b.Span != 2 || b.Top != 0 {
		t.Errorf("Boxes[1] = %+v, want b at x 300 spanning 2", b)
	}
}

func TestRenderJSONWithOptions(t *testing.T) {
	f := testFrame(t)
	f.Placements = append(f.Placements, masonry.Hidden("pending"))

	data, err := RenderJSON(context.Background(), f,
		WithJSONTitles(map[string]string{"a": "Alpha"}),
		WithJSONHidden(),
		WithJSONOptions(masonry.DefaultOptions()),
		WithJSONGenerator("masonry/test"),
	)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Boxes) != 4 {
		t.Fatalf("Boxes count = %d, want 4 with hidden", len(out.Boxes))
	}
	if out.Generator != "masonry/test" {
		t.Errorf("Generator = %q, want masonry/test", out.Generator)
	}
	if out.Boxes[0].Title != "Alpha" {
		t.Errorf("Title = %q, want Alpha", out.Boxes[0].Title)
	}
	if out.Boxes[3].Visible {
		t.Error("pending box exported as visible")
	}
	if out.Layout == nil || out.Layout.PollIntervalMS != 100 || out.Layout.ResizeDebounceMS != 60 {
		t.Errorf("Layout = %+v, want default options", out.Layout)
	}
}

func TestRenderJSONSkipsHidden(t *testing.T) {
	f := testFrame(t)
	f.Placements = append(f.Placements, masonry.Hidden("pending"))

	data, err := RenderJSON(context.Background(), f)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Boxes) != 3 {
		t.Errorf("Boxes count = %d, want 3", len(out.Boxes))
	}
}

type exportRecorder struct {
	observability.NoopSinkHooks
	formats []string
	sizes   []int
}

func (r *exportRecorder) OnExport(_ context.Context, format string, size int) {
	r.formats = append(r.formats, format)
	r.sizes = append(r.sizes, size)
}

func TestRenderJSONReportsExport(t *testing.T) {
	rec := &exportRecorder{}
	observability.SetSinkHooks(rec)
	t.Cleanup(observability.Reset)

	data, err := RenderJSON(context.Background(), testFrame(t))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if len(rec.formats) != 1 || rec.formats[0] != FormatJSON || rec.sizes[0] != len(data) {
		t.Errorf("export events = %v %v, want one json event of %d bytes", rec.formats, rec.sizes, len(data))
	}
}
