package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	"github.com/lbcm/coursebuild/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available modules",
		Long: `List every module in the modules directory with the description and
estimated time taken from its README.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			builder, err := cmdutil.NewBuilder(cfg, nil)
			if err != nil {
				return cmdutil.Exit(err)
			}

			infos := builder.ListModules()
			if cfg.Format != output.FormatText && cfg.Format != "" {
				return output.WriteStructured(c.OutOrStdout(), cfg.Format, infos)
			}
			cmdutil.WriteModuleList(c.OutOrStdout(), infos)
			return nil
		},
	}
}
