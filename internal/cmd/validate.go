package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/output"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every module",
		Long: `Validate the structure and primary LaTeX file of every module.

Exits with code 1 when any module is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			builder, err := cmdutil.NewBuilder(cfg, nil)
			if err != nil {
				return cmdutil.Exit(err)
			}

			cv := builder.ValidateAllModules()
			if cfg.Format != output.FormatText && cfg.Format != "" {
				if err := output.WriteStructured(c.OutOrStdout(), cfg.Format, cv); err != nil {
					return err
				}
			} else {
				cmdutil.WriteValidation(c.OutOrStdout(), cv)
			}

			if !cv.Valid {
				return &cmdtypes.ExitError{
					Code:    cmdtypes.ExitGeneralError,
					Err:     oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("%d of %d modules invalid", cv.InvalidModules, cv.TotalModules)),
					Printed: true,
				}
			}
			return nil
		},
	}
}
