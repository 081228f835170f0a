package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after applying the config file, COURSE_*
environment variables and flags, followed by where each directory setting
came from.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format := cfg.Format
			if format == output.FormatText || format == "" {
				format = output.FormatYAML
			}
			if err := output.WriteStructured(c.OutOrStdout(), format, cfg.Effective()); err != nil {
				return err
			}

			if cfg.Resolved == nil || format != output.FormatYAML {
				return nil
			}
			tbl := output.NewTable("KEY", "VALUE", "SOURCE")
			for _, v := range cfg.Resolved.Values() {
				tbl.Row(v.Key, v.Value, string(v.Source))
			}
			fmt.Fprintln(c.OutOrStdout())
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}
}
