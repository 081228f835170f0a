// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/module, internal/cmd/config, ...).
package cmdtypes

import (
	"github.com/lbcm/coursebuild/internal/config"
	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration; nil until initialization runs.
	Config *config.Config

	// Resolved records where each directory setting came from.
	Resolved *config.ResolvedConfig

	ConfigPath string // resolved --config path
	ModulesDir string // resolved --modules-dir
	OutputDir  string // resolved --output-dir

	// Format is the --output-format value.
	Format output.Format

	Verbose bool
}

// Effective returns the loaded configuration with the resolved directory
// overrides applied. It never returns nil.
func (g *GlobalConfig) Effective() *config.Config {
	cfg := config.DefaultConfig()
	if g != nil && g.Config != nil {
		copied := *g.Config
		cfg = &copied
	}
	if g != nil && g.ModulesDir != "" {
		cfg.Course.ModulesDir = g.ModulesDir
	}
	if g != nil && g.OutputDir != "" {
		cfg.Course.OutputDir = g.OutputDir
	}
	return cfg
}

// Exit codes: aliases to internal/errors constants.
const (
	ExitSuccess      = oerrors.ExitSuccess
	ExitGeneralError = oerrors.ExitGeneralError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
