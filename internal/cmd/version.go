package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/output"
	"github.com/lbcm/coursebuild/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show coursebuild version information.

Displays:
  - coursebuild version, commit, and build date
  - the configured LaTeX compiler and its version, if installed`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			effective := cfg.Effective()
			compiler := version.DetectCompiler(c.Context(), effective.Latex.Compiler, effective.Latex.ProbeTimeout)
			info := version.Get()

			if cfg.Format != output.FormatText && cfg.Format != "" {
				return output.WriteStructured(c.OutOrStdout(), cfg.Format, struct {
					version.Info `yaml:",inline"`
					Compiler     version.CompilerInfo `json:"compiler" yaml:"compiler"`
				}{info, compiler})
			}

			_, err := c.OutOrStdout().Write([]byte(version.FullVersionString(info, compiler) + "\n"))
			return err
		},
	}
}
