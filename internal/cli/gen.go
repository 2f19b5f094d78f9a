package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/boxfile"
)

type genOpts struct {
	count  int
	seed   uint64
	format string
	output string
}

// genCommand creates the gen command for writing sample box files.
func (c *CLI) genCommand() *cobra.Command {
	var opts genOpts

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a sample box file",
		Long: `Generate a box file of lorem ipsum cards with random column spans.

Without --count the number of boxes is drawn between 5 and 54. The same
--seed always produces the same file.`,
		Example: `  masonry gen -o boxes.toml
  masonry gen -n 20 --seed 7 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			return runGen(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of boxes (default random 5..54)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default time based)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(boxfile.FormatTOML), "stdout format: toml or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, format from extension (default stdout)")

	return cmd
}

func runGen(ctx context.Context, w io.Writer, opts genOpts) error {
	logger := loggerFromContext(ctx)

	boxes := boxfile.Generate(opts.count, opts.seed)
	logger.Debug("generated boxes", "count", len(boxes), "seed", opts.seed)

	if opts.output == "" {
		return boxfile.Write(w, boxes, boxfile.Format(opts.format))
	}
	if err := boxfile.Export(opts.output, boxes); err != nil {
		return err
	}
	printSuccess(w, "Generated %d boxes", len(boxes))
	printFile(w, opts.output)
	printNextStep(w, "Lay them out", fmt.Sprintf("%s pack %s", appName, opts.output))
	return nil
}
