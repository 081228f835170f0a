package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/cmdutil"
	coremeta "github.com/lbcm/coursebuild/internal/metadata"
	"github.com/lbcm/coursebuild/internal/output"
)

type refreshOptions struct {
	title    string
	subtitle string
	tags     []string
	diff     bool
}

// refreshReport is the structured form of a refresh.
type refreshReport struct {
	Module   string            `json:"module" yaml:"module"`
	Path     string            `json:"path" yaml:"path"`
	Created  bool              `json:"created" yaml:"created"`
	Changed  bool              `json:"changed" yaml:"changed"`
	Metadata coremeta.Metadata `json:"metadata" yaml:"metadata"`
	Problems []string          `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// NewRefreshCmd creates the metadata refresh command.
func NewRefreshCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &refreshOptions{}

	c := &cobra.Command{
		Use:   "refresh <module>",
		Short: "Synchronize a module's metadata.yaml",
		Long: `Recompute the references list of a module's metadata.yaml from its
references.bib and apply optional title, subtitle and tag changes. A missing
sidecar is created first. Keys the tool does not know about are preserved.`,
		Example: `  coursebuild metadata refresh genomics
  coursebuild metadata refresh genomics --tag bioinformatics --tag sequencing --diff
  coursebuild metadata refresh genomics --subtitle ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runRefresh(c, cfg, args[0], opts)
		},
	}

	c.Flags().StringVar(&opts.title, "title", "", "Replace the module title")
	c.Flags().StringVar(&opts.subtitle, "subtitle", "", "Replace the module subtitle (an empty value clears it)")
	c.Flags().StringArrayVar(&opts.tags, "tag", nil, "Add a tag (repeatable)")
	c.Flags().BoolVar(&opts.diff, "diff", false, "Show the changes made to metadata.yaml")

	return c
}

func runRefresh(c *cobra.Command, cfg *cmdtypes.GlobalConfig, name string, opts *refreshOptions) error {
	upd := coremeta.Update{
		Title: opts.title,
		Tags:  cmdutil.SplitNames(opts.tags),
	}
	if c.Flags().Changed("subtitle") {
		subtitle := opts.subtitle
		upd.Subtitle = &subtitle
	}

	moduleDir := filepath.Join(cfg.Effective().Course.ModulesDir, name)
	res, err := coremeta.Refresh(moduleDir, upd)
	if err != nil {
		return cmdutil.Exit(err)
	}

	for _, p := range res.Problems {
		output.Warn("metadata problem", "module", name, "problem", p)
	}

	w := c.OutOrStdout()
	if cfg.Format != "" && cfg.Format != output.FormatText {
		return output.WriteStructured(w, cfg.Format, refreshReport{
			Module:   name,
			Path:     res.Path,
			Created:  res.Created,
			Changed:  res.Changed(),
			Metadata: res.Metadata,
			Problems: res.Problems,
		})
	}

	if opts.diff {
		diff, err := coremeta.Diff(res.Before, res.After, output.IsTTY())
		if err != nil {
			return cmdutil.Exit(fmt.Errorf("computing diff: %w", err))
		}
		if diff != "" {
			fmt.Fprintln(w, diff)
		}
	}

	switch {
	case res.Created:
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s", output.StyleNoun.Render(res.Path))))
	case res.Changed():
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Updated %s", output.StyleNoun.Render(res.Path))))
	default:
		fmt.Fprintln(w, output.StyleDim.Render(fmt.Sprintf("%s is up to date", res.Path)))
	}
	return nil
}
