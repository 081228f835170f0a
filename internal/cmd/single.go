package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	"github.com/lbcm/coursebuild/internal/course"
	"github.com/lbcm/coursebuild/internal/output"
)

// NewSingleCmd creates the single command.
func NewSingleCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		name  string
		flags cmdutil.BuildFlags
	)

	c := &cobra.Command{
		Use:   "single",
		Short: "Build one module on its own",
		Long: `Validate one module and compile its primary LaTeX file once, copying the
module's resources to the output directory.`,
		Example: `  coursebuild single --module intro_to_linux`,
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			builder, err := cmdutil.NewBuilder(cfg, &flags)
			if err != nil {
				return cmdutil.Exit(err)
			}

			var res *course.BuildResult
			err = output.RunWithSpinner(c.Context(), func() error {
				var buildErr error
				res, buildErr = builder.BuildSingleModule(c.Context(), name, "")
				return buildErr
			}, output.WithTitle(fmt.Sprintf("Building %s...", name)))
			if err != nil {
				return cmdutil.Reported(fmt.Sprintf("failed to build module %s", name), err)
			}

			return writeBuildResult(c, cfg, res)
		},
	}

	c.Flags().StringVar(&name, "module", "", "Module to build (required)")
	_ = c.MarkFlagRequired("module")
	flags.AddTo(c)

	return c
}
