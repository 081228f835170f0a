// Package pdf provides the `coursebuild pdf` command group.
package pdf

import (
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	corepdf "github.com/lbcm/coursebuild/internal/pdf"
)

// NewPDFCmd creates the pdf command group.
func NewPDFCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "pdf",
		Short: "PDF utilities",
		Long:  `Commands for merging compiled PDFs and inspecting them.`,
	}

	c.AddCommand(
		NewMergeCmd(cfg),
		NewInfoCmd(cfg),
	)

	return c
}

// newMerger negotiates the backend named by override, or the configured one.
func newMerger(cfg *cmdtypes.GlobalConfig, override string) *corepdf.Merger {
	backend := override
	if backend == "" {
		backend = cfg.Effective().PDF.Backend
	}
	return corepdf.NewMerger(backend)
}
