package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/boxfile"
	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/sink"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

type packOpts struct {
	width       float64
	columnWidth float64
	format      string
	output      string
}

// packCommand creates the pack command for one-shot layout of a box file.
func (c *CLI) packCommand() *cobra.Command {
	opts := packOpts{width: defaultWidth, format: formatTable}

	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Lay out a box file for a container width",
		Long: `Lay out the boxes of a TOML or JSON box file for a container of the given width.

Each box is placed on the run of columns with the lowest top edge, in file
order. The result is printed as a table or exported as JSON.`,
		Example: `  masonry pack boxes.toml
  masonry pack boxes.toml --width 900 --format json -o frame.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.width, "width", "w", opts.width, "container width")
	cmd.Flags().Float64Var(&opts.columnWidth, "column-width", 0, "reference column width (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runPack(ctx context.Context, w io.Writer, input string, opts packOpts) error {
	logger := loggerFromContext(ctx)

	if opts.format != formatJSON && opts.format != formatTable {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want %s or %s)", opts.format, formatTable, formatJSON)
	}
	if opts.width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %v", opts.width)
	}

	layout, err := c.Config.Options()
	if err != nil {
		return err
	}
	if opts.columnWidth > 0 {
		layout.ReferenceColumnWidth = opts.columnWidth
	}

	prog := newProgress(logger)
	boxes, err := boxfile.Import(input)
	if err != nil {
		return err
	}
	if len(boxes) == 0 {
		printWarning(w, "%s has no boxes", input)
	}

	frame, err := masonry.Compute(opts.width, boxfile.Elements(boxes), layout)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d boxes into %d columns", len(boxes), frame.Columns))

	var out []byte
	switch opts.format {
	case formatJSON:
		titles := make(map[string]string, len(boxes))
		for _, b := range boxes {
			titles[b.Key] = b.Title
		}
		out, err = sink.RenderJSON(ctx, frame,
			sink.WithJSONTitles(titles),
			sink.WithJSONOptions(layout),
			sink.WithJSONGenerator(buildinfo.Generator()),
		)
		if err != nil {
			return err
		}
	case formatTable:
		out = []byte(frameTable(frame) + "\n")
	}

	if opts.output == "" {
		if _, err := w.Write(out); err != nil {
			return err
		}
		if opts.format == formatTable {
			printStats(w, frame)
		}
		return nil
	}

	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(w, "Packed %d boxes", len(boxes))
	printFile(w, opts.output)
	return nil
}
