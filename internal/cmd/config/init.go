package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	coreconfig "github.com/lbcm/coursebuild/internal/config"
)

const configHeader = "# coursebuild configuration\n# Environment variables with the COURSE_ prefix override these values.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a configuration file with default values.

The file is created at ./config.yaml by default. Use --config (or
COURSE_CONFIG) to choose a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	expandedPath, err := coreconfig.ExpandPath(configPath(cfg))
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := coreconfig.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", expandedPath),
		}
	}

	if dir := filepath.Dir(expandedPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(coreconfig.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", expandedPath)
	return nil
}

// configPath returns the resolved --config path, falling back to the
// default lookup when globals were not initialized.
func configPath(cfg *cmdtypes.GlobalConfig) string {
	if cfg != nil && cfg.ConfigPath != "" {
		return cfg.ConfigPath
	}
	return coreconfig.GetConfigFile()
}
