package module

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	coremodule "github.com/lbcm/coursebuild/internal/module"
	"github.com/lbcm/coursebuild/internal/output"
)

// showWrapWidth is the word wrap used when rendering a README.
const showWrapWidth = 100

// NewShowCmd creates the module show command.
func NewShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var raw bool

	c := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a module's README, metadata and files",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			builder, err := cmdutil.NewBuilder(cfg, nil)
			if err != nil {
				return cmdutil.Exit(err)
			}

			info, err := builder.ModuleInfo(args[0])
			if err != nil {
				return cmdutil.Exit(err)
			}

			if cfg.Format != output.FormatText && cfg.Format != "" {
				return output.WriteStructured(c.OutOrStdout(), cfg.Format, info)
			}
			return writeModuleDetails(c, info, raw)
		},
	}

	c.Flags().BoolVar(&raw, "raw", false, "Print the README without terminal rendering")

	return c
}

func writeModuleDetails(c *cobra.Command, info *coremodule.Info, raw bool) error {
	w := c.OutOrStdout()

	if readme, ok := coremodule.FindReadme(info.Path); ok {
		data, err := os.ReadFile(readme)
		if err != nil {
			return fmt.Errorf("reading README: %w", err)
		}
		content := string(data)
		if !raw {
			rendered, err := output.RenderMarkdown(content, showWrapWidth)
			if err != nil {
				output.Debug("markdown rendering failed", "error", err)
			} else {
				content = rendered
			}
		}
		fmt.Fprintln(w, strings.TrimRight(content, "\n"))
		fmt.Fprintln(w)
	}

	tbl := output.NewTable("FIELD", "VALUE")
	tbl.Row("Name", output.StyleNoun.Render(info.Name))
	tbl.Row("Path", info.Path)
	if info.EstimatedTime != "" {
		tbl.Row("Estimated time", info.EstimatedTime)
	}
	if len(info.LearningObjectives) > 0 {
		tbl.Row("Objectives", strings.Join(info.LearningObjectives, "\n"))
	}
	if len(info.Prerequisites) > 0 {
		tbl.Row("Prerequisites", strings.Join(info.Prerequisites, "\n"))
	}
	tbl.Row("LaTeX files", fmt.Sprintf("%d", len(info.Files.Tex)))
	tbl.Row("Images", fmt.Sprintf("%d", len(info.Files.Images)))
	tbl.Row("Data files", fmt.Sprintf("%d", len(info.Files.Data)))
	tbl.Row("Other files", fmt.Sprintf("%d", len(info.Files.Other)))
	fmt.Fprintln(w, tbl.String())
	return nil
}
