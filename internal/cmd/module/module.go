// Package module provides the `coursebuild module` command group.
package module

import (
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
)

// NewModuleCmd creates the module command group.
func NewModuleCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:     "module",
		Aliases: []string{"mod"},
		Short:   "Module operations",
		Long:    `Commands for creating and inspecting course modules.`,
	}

	c.AddCommand(
		NewNewCmd(cfg),
		NewShowCmd(cfg),
	)

	return c
}
