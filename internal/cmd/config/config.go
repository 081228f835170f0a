// Package config provides the `coursebuild config` command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Create, inspect and validate the coursebuild configuration file.`,
	}

	c.AddCommand(
		NewConfigInitCmd(cfg),
		NewConfigVetCmd(cfg),
		NewConfigShowCmd(cfg),
	)

	return c
}
