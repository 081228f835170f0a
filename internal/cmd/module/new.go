package module

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	"github.com/lbcm/coursebuild/internal/output"
	"github.com/lbcm/coursebuild/internal/templates"
)

// newOptions holds the flags for the module new command.
type newOptions struct {
	subtitle string
	author   string
}

// NewNewCmd creates the module new command.
func NewNewCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &newOptions{}

	c := &cobra.Command{
		Use:   "new <folder> <title>",
		Short: "Create a new module from the built-in templates",
		Long: `Create a module folder under the modules directory containing main.tex,
preamble.tex, README.md, an empty references.bib, an images folder and a
metadata.yaml sidecar. An existing module is never overwritten.`,
		Example: `  coursebuild module new intro_to_linux "Introduction to Linux"
  coursebuild module new genomics "Genomics" --subtitle "Assembly and annotation"`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runNew(c, cfg, args[0], args[1], opts)
		},
	}

	c.Flags().StringVarP(&opts.subtitle, "subtitle", "s", "", "Module subtitle")
	c.Flags().StringVar(&opts.author, "author", "", "Module author (default: course.author or LBCM Team)")

	return c
}

func runNew(c *cobra.Command, cfg *cmdtypes.GlobalConfig, folder, title string, opts *newOptions) error {
	effective := cfg.Effective()
	author := opts.author
	if author == "" {
		author = effective.Course.Author
	}

	res, err := templates.NewGenerator(templates.GenerateOptions{
		ModulesDir: effective.Course.ModulesDir,
		FolderName: folder,
		Title:      title,
		Subtitle:   opts.subtitle,
		Author:     author,
	}).Generate()
	if err != nil {
		return cmdutil.Exit(err)
	}

	w := c.OutOrStdout()
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %s\n", output.StyleDim.Render(f))
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Module %s created at %s",
		output.StyleNoun.Render(folder), res.ModuleDir)))
	return nil
}
