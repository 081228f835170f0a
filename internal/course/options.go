// Package course orchestrates module validation, document assembly,
// compilation and PDF merging into course builds.
package course

import (
	"fmt"
	"strings"
	"time"

	"github.com/lbcm/coursebuild/internal/combine"
	"github.com/lbcm/coursebuild/internal/config"
	"github.com/lbcm/coursebuild/internal/latex"
)

// Options holds everything a Builder needs. The zero value of each field
// selects the component default.
type Options struct {
	// ModulesDir holds one folder per module.
	ModulesDir string
	// OutputDir receives compiled documents and copied resources.
	OutputDir string
	// TempDir is the parent for working directories; empty means the system default.
	TempDir string

	Compiler      string
	DocumentClass string
	Packages      []string
	Passes        int
	Timeout       time.Duration
	ProbeTimeout  time.Duration

	// CleanupTemp removes compiler byproducts after a build.
	CleanupTemp bool
	// MergePDFs compiles modules separately and merges the results.
	MergePDFs bool
	// CombinedName is the file name of the combined source.
	CombinedName string
	// PDFBackend is the requested merge backend.
	PDFBackend string

	// CommandFunc replaces the compiler process factory (tests).
	CommandFunc latex.CommandFunc
}

// OptionsFromConfig maps a loaded configuration onto builder options.
// Directory values should already be resolved against flags and env.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ModulesDir:    cfg.Course.ModulesDir,
		OutputDir:     cfg.Course.OutputDir,
		TempDir:       cfg.Course.TempDir,
		Compiler:      cfg.Latex.Compiler,
		DocumentClass: cfg.Latex.DocumentClass,
		Packages:      cfg.Latex.Packages,
		Passes:        cfg.Latex.Passes,
		Timeout:       cfg.Latex.Timeout,
		ProbeTimeout:  cfg.Latex.ProbeTimeout,
		CleanupTemp:   cfg.Build.CleanupTemp,
		MergePDFs:     cfg.Build.MergePDFs,
		CombinedName:  cfg.Build.CombinedName,
		PDFBackend:    cfg.PDF.Backend,
	}
}

// Validate checks that required fields are set.
func (o Options) Validate() error {
	if strings.TrimSpace(o.ModulesDir) == "" {
		return fmt.Errorf("modules directory is required")
	}
	if strings.TrimSpace(o.OutputDir) == "" {
		return fmt.Errorf("output directory is required")
	}
	if o.CombinedName != "" && !strings.HasSuffix(o.CombinedName, ".tex") {
		return fmt.Errorf("combined document name %q must end in .tex", o.CombinedName)
	}
	return nil
}

func (o Options) combinedName() string {
	if o.CombinedName == "" {
		return combine.DefaultCombinedName
	}
	return o.CombinedName
}

func (o Options) passes() int {
	if o.Passes < 1 {
		return latex.DefaultPasses
	}
	return o.Passes
}

func (o Options) compilerOptions() []latex.Option {
	var opts []latex.Option
	if o.Timeout > 0 {
		opts = append(opts, latex.WithTimeout(o.Timeout))
	}
	if o.ProbeTimeout > 0 {
		opts = append(opts, latex.WithProbeTimeout(o.ProbeTimeout))
	}
	if o.CommandFunc != nil {
		opts = append(opts, latex.WithCommandFunc(o.CommandFunc))
	}
	return opts
}

func (o Options) combineOptions() []combine.Option {
	var opts []combine.Option
	if o.DocumentClass != "" {
		opts = append(opts, combine.WithDocumentClass(o.DocumentClass))
	}
	if len(o.Packages) > 0 {
		opts = append(opts, combine.WithPackages(o.Packages))
	}
	return opts
}
