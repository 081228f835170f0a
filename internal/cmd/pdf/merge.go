package pdf

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	"github.com/lbcm/coursebuild/internal/output"
)

type mergeOptions struct {
	titles  []string
	backend string
}

// NewMergeCmd creates the pdf merge command.
func NewMergeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &mergeOptions{}

	c := &cobra.Command{
		Use:   "merge <output.pdf> <input.pdf>...",
		Short: "Merge PDFs into one document",
		Long: `Merge the input PDFs, in order, into a single document with one bookmark
per input. Inputs that are missing or not PDFs are skipped with a warning.

With the coverpage backend only a cover page listing the inputs is written.`,
		Example: `  coursebuild pdf merge output/course.pdf output/intro.pdf output/genomics.pdf
  coursebuild pdf merge out.pdf a.pdf b.pdf --title "Part A" --title "Part B"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			merger := newMerger(cfg, opts.backend)
			res, err := merger.Merge(args[1:], args[0], opts.titles)
			if err != nil {
				return cmdutil.Exit(err)
			}

			w := c.OutOrStdout()
			if cfg.Format != "" && cfg.Format != output.FormatText {
				return output.WriteStructured(w, cfg.Format, res)
			}
			fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Merged %d files into %s (%s backend)",
				res.FilesMerged, output.StyleNoun.Render(res.OutputPath), res.Backend)))
			return nil
		},
	}

	c.Flags().StringArrayVar(&opts.titles, "title", nil,
		"Bookmark title for the input at the same position (repeatable)")
	c.Flags().StringVar(&opts.backend, "backend", "",
		"PDF backend: auto, full, coverpage or none (default: from config)")

	return c
}
