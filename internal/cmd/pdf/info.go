package pdf

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	"github.com/lbcm/coursebuild/internal/output"
	corepdf "github.com/lbcm/coursebuild/internal/pdf"
)

// NewInfoCmd creates the pdf info command.
func NewInfoCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var backend string

	c := &cobra.Command{
		Use:   "info <file.pdf>...",
		Short: "Show page counts and document properties of PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			report, err := newMerger(cfg, backend).ValidatePDFs(args)
			if err != nil {
				return cmdutil.Exit(err)
			}

			w := c.OutOrStdout()
			if cfg.Format != "" && cfg.Format != output.FormatText {
				if err := output.WriteStructured(w, cfg.Format, report); err != nil {
					return err
				}
			} else {
				writeReport(c, report)
			}

			if len(report.Invalid) > 0 {
				return &cmdtypes.ExitError{
					Code:    cmdtypes.ExitGeneralError,
					Err:     fmt.Errorf("%d of %d files could not be read", len(report.Invalid), report.TotalFiles),
					Printed: true,
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&backend, "backend", "", "PDF backend used to inspect files (default: from config)")

	return c
}

func writeReport(c *cobra.Command, report *corepdf.ValidationReport) {
	w := c.OutOrStdout()

	tbl := output.NewTable("FILE", "STATUS", "PAGES", "SIZE", "DETAILS").
		StyleColumn(1, output.StatusStyle)
	for _, info := range report.Valid {
		tbl.Row(info.Path, output.StatusValid,
			fmt.Sprintf("%d", info.Pages),
			humanize.IBytes(uint64(info.Size)),
			info.Title)
	}
	for _, bad := range report.Invalid {
		tbl.Row(bad.Path, output.StatusInvalid, "-", "-", bad.Reason)
	}
	fmt.Fprintln(w, tbl.String())

	fmt.Fprintln(w, output.StyleSummary.Render(fmt.Sprintf("%d valid, %d invalid, %d pages, %s",
		len(report.Valid), len(report.Invalid), report.TotalPages, humanize.IBytes(uint64(report.TotalSize)))))
}
