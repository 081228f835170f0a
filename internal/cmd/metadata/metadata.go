// Package metadata provides the `coursebuild metadata` command group.
package metadata

import (
	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
)

// NewMetadataCmd creates the metadata command group.
func NewMetadataCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:     "metadata",
		Aliases: []string{"meta"},
		Short:   "Module metadata operations",
		Long:    `Commands for maintaining the metadata.yaml sidecar of each module.`,
	}

	c.AddCommand(NewRefreshCmd(cfg))

	return c
}
