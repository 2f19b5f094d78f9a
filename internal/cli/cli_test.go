package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/boxfile"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/observability"
)

// execute runs the root command with args and returns stdout and log output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var out, logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func writeBoxes(t *testing.T, name string, boxes []boxfile.Box) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := boxfile.Export(path, boxes); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	return path
}

var sampleBoxes = []boxfile.Box{
	{Key: "alpha", Span: 1, Height: 100, Title: "Alpha"},
	{Key: "beta", Span: 2, Height: 50},
	{Key: "gamma", Span: 1, Height: 30},
}

func TestPackTable(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeBoxes(t, "boxes.toml", sampleBoxes)

	out, _, err := execute(t, "pack", path, "--width", "900")
	if err != nil {
		t.Fatalf("pack error: %v", err)
	}
	for _, want := range []string{"alpha", "beta", "gamma", "3 columns", "height 100"} {
		if !strings.Contains(out, want) {
			t.Errorf("pack output missing %q:\n%s", want, out)
		}
	}
}

func TestPackJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeBoxes(t, "boxes.json", sampleBoxes)
	output := filepath.Join(t.TempDir(), "frame.json")

	out, _, err := execute(t, "pack", path, "--width", "600", "--format", "json", "-o", output)
	if err != nil {
		t.Fatalf("pack error: %v", err)
	}
	if !strings.Contains(out, output) {
		t.Errorf("pack output should name %s:\n%s", output, out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var frame struct {
		Columns int `json:"columns"`
		Boxes   []struct {
			Key   string  `json:"key"`
			Title string  `json:"title"`
			Top   float64 `json:"top"`
		} `json:"boxes"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if frame.Columns != 2 || len(frame.Boxes) != 3 {
		t.Fatalf("frame = %+v, want 2 columns and 3 boxes", frame)
	}
	if frame.Boxes[0].Title != "Alpha" {
		t.Errorf("title = %q, want Alpha", frame.Boxes[0].Title)
	}
	// beta spans both columns below alpha.
	if frame.Boxes[1].Top != 100 {
		t.Errorf("beta top = %v, want 100", frame.Boxes[1].Top)
	}
}

func TestPackUsesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("masonry.toml", []byte("[layout]\nreference_column_width = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeBoxes(t, "boxes.toml", sampleBoxes)

	out, _, err := execute(t, "pack", path, "--width", "400")
	if err != nil {
		t.Fatalf("pack error: %v", err)
	}
	if !strings.Contains(out, "4 columns") {
		t.Errorf("pack should use the config column width:\n%s", out)
	}
}

func TestPackErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeBoxes(t, "boxes.toml", sampleBoxes)
	badConfig := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(badConfig, []byte("[layout]\npoll_interval_ms = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"pack", "nope.toml"}, errors.ErrCodeFileNotFound},
		{"bad extension", []string{"pack", "boxes.yaml"}, errors.ErrCodeUnsupported},
		{"bad format", []string{"pack", path, "--format", "svg"}, errors.ErrCodeInvalidInput},
		{"bad width", []string{"pack", path, "--width", "0"}, errors.ErrCodeInvalidInput},
		{"bad config", []string{"--config", badConfig, "pack", path}, errors.ErrCodeInvalidConfig},
		{"missing config", []string{"--config", "absent.toml", "pack", path}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGenStdout(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "gen", "-n", "4", "--seed", "3")
	if err != nil {
		t.Fatalf("gen error: %v", err)
	}
	boxes, err := boxfile.Read(strings.NewReader(out), boxfile.FormatTOML)
	if err != nil {
		t.Fatalf("gen output is not a box file: %v\n%s", err, out)
	}
	if len(boxes) != 4 {
		t.Errorf("gen wrote %d boxes, want 4", len(boxes))
	}

	again, _, err := execute(t, "gen", "-n", "4", "--seed", "3")
	if err != nil {
		t.Fatalf("gen error: %v", err)
	}
	if again != out {
		t.Error("same seed produced different output")
	}
}

func TestGenFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "sample.json")

	out, _, err := execute(t, "gen", "-n", "6", "-o", path)
	if err != nil {
		t.Fatalf("gen error: %v", err)
	}
	if !strings.Contains(out, "masonry pack "+path) {
		t.Errorf("gen should suggest the pack command:\n%s", out)
	}
	boxes, err := boxfile.Import(path)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(boxes) != 6 {
		t.Errorf("gen wrote %d boxes, want 6", len(boxes))
	}
}

func TestVerboseInstallsHooks(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeBoxes(t, "boxes.toml", sampleBoxes)

	_, logs, err := execute(t, "-v", "pack", path, "--format", "json")
	if err != nil {
		t.Fatalf("pack error: %v", err)
	}
	if !strings.Contains(logs, "export") {
		t.Errorf("verbose run should log export events:\n%s", logs)
	}
}

func TestCompletion(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, "masonry") {
				t.Errorf("completion %s output does not mention masonry", shell)
			}
		})
	}
}
