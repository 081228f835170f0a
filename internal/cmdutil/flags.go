// Package cmdutil provides shared command utilities for coursebuild
// subcommands. It centralizes flag groups, builder construction, exit code
// mapping and output formatting helpers.
package cmdutil

import (
	"strings"

	"github.com/spf13/cobra"
)

// BuildFlags holds flags common to commands that compile documents
// (build, single).
type BuildFlags struct {
	// Output overrides the output directory for this build only.
	Output string
	// NoCleanup keeps compiler byproducts.
	NoCleanup bool
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Output, "output", "",
		"Output directory for this build (default: from config)")
	cmd.Flags().BoolVar(&f.NoCleanup, "no-cleanup", false,
		"Keep compiler byproducts (.aux, .log, ...) in the output directory")
}

// SplitNames flattens comma separated and repeated name flags, dropping
// blanks and keeping order.
func SplitNames(values []string) []string {
	var names []string
	for _, v := range values {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}
