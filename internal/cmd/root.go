// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmd/config"
	"github.com/lbcm/coursebuild/internal/cmd/metadata"
	"github.com/lbcm/coursebuild/internal/cmd/module"
	"github.com/lbcm/coursebuild/internal/cmd/pdf"
	"github.com/lbcm/coursebuild/internal/cmdtypes"
	coreconfig "github.com/lbcm/coursebuild/internal/config"
	"github.com/lbcm/coursebuild/internal/output"
)

// globalFlags holds the raw persistent flag values.
type globalFlags struct {
	config       string
	modulesDir   string
	outputDir    string
	outputFormat string
	verbose      bool
	timestamps   bool
}

// NewRootCmd creates the root command for the coursebuild CLI.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}
	gc := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "coursebuild",
		Short: "Build LaTeX course materials from module folders",
		Long: `coursebuild validates course modules, combines them into a single LaTeX
document, compiles it to PDF and merges compiled PDFs.

Each module is a folder under the modules directory holding a primary
LaTeX file (main.tex, module.tex or <folder>.tex), an optional README and
resources such as images/ and data/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, flags, gc)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			output.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: COURSE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.modulesDir, "modules-dir", "", "Modules directory (env: COURSE_MODULES_DIR)")
	rootCmd.PersistentFlags().StringVar(&flags.outputDir, "output-dir", "", "Output directory (env: COURSE_OUTPUT_DIR)")
	rootCmd.PersistentFlags().StringVarP(&flags.outputFormat, "output-format", "o", "text",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewBuildCmd(gc),
		NewSingleCmd(gc),
		NewListCmd(gc),
		NewValidateCmd(gc),
		module.NewModuleCmd(gc),
		metadata.NewMetadataCmd(gc),
		pdf.NewPDFCmd(gc),
		config.NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals loads configuration, resolves directory settings and
// sets up logging.
func initializeGlobals(cmd *cobra.Command, flags *globalFlags, gc *cmdtypes.GlobalConfig) error {
	format, ok := output.ParseFormat(flags.outputFormat)
	if !ok {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err: fmt.Errorf("unknown output format %q (valid: %s)",
				flags.outputFormat, strings.Join(output.ValidFormats(), ", ")),
		}
	}

	configPath := coreconfig.ResolveConfigPath(flags.config)

	// config init and config vet must run against a broken config file.
	cfg, loadErr := coreconfig.NewLoader().Load(configPath.Value)
	if loadErr != nil {
		cfg = coreconfig.DefaultConfig()
	}

	resolved := coreconfig.ResolveAll(coreconfig.ResolveOptions{
		ConfigFlag:     flags.config,
		ModulesDirFlag: flags.modulesDir,
		OutputDirFlag:  flags.outputDir,
		Config:         cfg,
	})

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: flags.verbose,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Warn("config file could not be loaded, using defaults",
			"config", configPath.Value, "error", loadErr)
	}

	gc.Config = cfg
	gc.Resolved = resolved
	gc.ConfigPath = resolved.ConfigPath.Value
	gc.ModulesDir = resolved.ModulesDir.Value
	gc.OutputDir = resolved.OutputDir.Value
	gc.Format = format
	gc.Verbose = flags.verbose

	coreconfig.LogResolvedValues(resolved.Values())
	return nil
}
