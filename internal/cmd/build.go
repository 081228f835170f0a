package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	"github.com/lbcm/coursebuild/internal/course"
	"github.com/lbcm/coursebuild/internal/output"
)

// buildOptions holds the flags for the build command.
type buildOptions struct {
	modules  []string
	separate bool
	build    cmdutil.BuildFlags
}

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &buildOptions{}

	c := &cobra.Command{
		Use:   "build",
		Short: "Build the course into one PDF",
		Long: `Build the complete course, or the modules named with --modules, into a
single PDF.

Modules are validated first; invalid modules are skipped with a warning.
By default the module bodies are combined into one LaTeX document that is
compiled in several passes. With --separate each module is compiled on its
own and the PDFs are merged with one bookmark per module.`,
		Example: `  # Build every module
  coursebuild build

  # Build selected modules in the given order
  coursebuild build --modules intro_to_linux,genomics

  # Compile modules separately and merge the PDFs
  coursebuild build --separate`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runBuild(c, cfg, opts)
		},
	}

	c.Flags().StringSliceVar(&opts.modules, "modules", nil,
		"Modules to include, in order (default: all)")
	c.Flags().BoolVar(&opts.separate, "separate", false,
		"Compile modules separately and merge the PDFs (default: build.mergePdfs)")
	opts.build.AddTo(c)

	return c
}

func runBuild(c *cobra.Command, cfg *cmdtypes.GlobalConfig, opts *buildOptions) error {
	builder, err := newBuilder(cfg, &opts.build, c.Flags().Changed("separate"), opts.separate)
	if err != nil {
		return cmdutil.Exit(err)
	}

	names := cmdutil.SplitNames(opts.modules)
	title := "Building complete course..."
	if len(names) > 0 {
		title = fmt.Sprintf("Building %d modules...", len(names))
	}

	var res *course.BuildResult
	err = output.RunWithSpinner(c.Context(), func() error {
		var buildErr error
		if len(names) > 0 {
			res, buildErr = builder.BuildCustomCourse(c.Context(), names, "")
		} else {
			res, buildErr = builder.BuildCompleteCourse(c.Context(), "")
		}
		return buildErr
	}, output.WithTitle(title))
	if err != nil {
		return cmdutil.Reported("failed to build course", err)
	}

	return writeBuildResult(c, cfg, res)
}

// newBuilder applies the --separate override on top of the shared build flags.
func newBuilder(cfg *cmdtypes.GlobalConfig, flags *cmdutil.BuildFlags, separateSet, separate bool) (*course.Builder, error) {
	effective := *cfg
	conf := *cfg.Effective()
	if separateSet {
		conf.Build.MergePDFs = separate
	}
	effective.Config = &conf
	return cmdutil.NewBuilder(&effective, flags)
}

func writeBuildResult(c *cobra.Command, cfg *cmdtypes.GlobalConfig, res *course.BuildResult) error {
	if cfg.Format != output.FormatText && cfg.Format != "" {
		return output.WriteStructured(c.OutOrStdout(), cfg.Format, res)
	}
	cmdutil.WriteBuildResult(c.OutOrStdout(), res)
	return nil
}
