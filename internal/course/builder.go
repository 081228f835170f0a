package course

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lbcm/coursebuild/internal/combine"
	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/latex"
	"github.com/lbcm/coursebuild/internal/module"
	"github.com/lbcm/coursebuild/internal/output"
	"github.com/lbcm/coursebuild/internal/pdf"
)

// SkippedModule is a requested module left out of a build.
type SkippedModule struct {
	Name   string   `json:"name"`
	Errors []string `json:"errors"`
}

// BuildResult describes a successful build.
type BuildResult struct {
	// BuildID identifies this build in logs and reports.
	BuildID string `json:"buildId"`
	// OutputPath is the final PDF.
	OutputPath string `json:"outputPath"`
	// Modules are the modules that made it into the output, in order.
	Modules []string `json:"modules"`
	// Skipped are requested modules that failed validation or, when
	// merging separately compiled PDFs, failed to compile.
	Skipped []SkippedModule `json:"skipped"`
	// Passes is the number of compiler passes run for the final document.
	Passes int `json:"passes"`
	// Resources are the resource files copied to the output directory.
	Resources []string `json:"resources,omitempty"`
	// Merge is set when modules were compiled separately and merged.
	Merge *pdf.MergeResult `json:"merge,omitempty"`
}

// Builder turns module folders into compiled course documents.
type Builder struct {
	opts      Options
	validator *module.Validator
}

// New creates a Builder.
func New(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		opts:      opts,
		validator: module.NewValidator(),
	}, nil
}

// Options returns the builder's options.
func (b *Builder) Options() Options {
	return b.opts
}

// workspace is the per-build scratch area shared by the combiner and the
// compiler. close removes it.
type workspace struct {
	dir      string
	combiner *combine.Manager
	compiler *latex.Compiler
}

func (b *Builder) newWorkspace() (*workspace, error) {
	if b.opts.TempDir != "" {
		if err := os.MkdirAll(b.opts.TempDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating temp directory: %w", err)
		}
	}
	dir, err := os.MkdirTemp(b.opts.TempDir, "coursebuild-build-*")
	if err != nil {
		return nil, fmt.Errorf("creating build workspace: %w", err)
	}

	combiner, err := combine.New(filepath.Join(dir, "src"), b.opts.combineOptions()...)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}
	compilerOpts := append(b.opts.compilerOptions(), latex.WithWorkDir(filepath.Join(dir, "latex")))
	compiler, err := latex.New(b.opts.Compiler, compilerOpts...)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	return &workspace{dir: dir, combiner: combiner, compiler: compiler}, nil
}

func (w *workspace) close() {
	_ = w.combiner.Close()
	_ = w.compiler.Close()
	if err := os.RemoveAll(w.dir); err != nil {
		output.Warn("failed to remove build workspace", "path", w.dir, "error", err)
	}
}

func (b *Builder) logger(buildID string) *log.Logger {
	return output.ModuleLogger("build").With("build", buildID[:8])
}

func (b *Builder) outputDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = b.opts.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return dir, nil
}

// BuildSingleModule validates the named module and compiles its primary
// file once into outDir (the configured output directory when empty).
func (b *Builder) BuildSingleModule(ctx context.Context, name, outDir string) (*BuildResult, error) {
	buildID := uuid.NewString()
	logger := b.logger(buildID)
	logger.Info("building single module", "module", name)

	modPath := filepath.Join(b.opts.ModulesDir, name)
	if _, err := os.Stat(modPath); err != nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("module not found: %s", name),
			modPath,
			"Run 'coursebuild list' to see available modules",
		)
	}

	result := b.validator.ValidateModule(modPath)
	if !result.Valid {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("module %s failed validation: %s", name, strings.Join(result.Errors, "; ")),
			modPath,
			"Run 'coursebuild validate' for details",
		)
	}

	primary, ok := module.FindPrimaryFile(modPath)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no main LaTeX file found in module %s", name),
			modPath,
			"",
		)
	}

	out, err := b.outputDir(outDir)
	if err != nil {
		return nil, err
	}

	ws, err := b.newWorkspace()
	if err != nil {
		return nil, err
	}
	defer ws.close()

	copied, err := combine.CopyResources(modPath, out)
	if err != nil {
		return nil, err
	}

	res, err := ws.compiler.Compile(ctx, primary, out)
	if err != nil {
		logger.Error("failed to build module", "module", name, "error", err)
		return nil, err
	}
	if b.opts.CleanupTemp {
		ws.compiler.CleanupTempFiles(primary, out)
	}

	logger.Info("built module", "module", name, "output", res.OutputPath)
	return &BuildResult{
		BuildID:    buildID,
		OutputPath: res.OutputPath,
		Modules:    []string{name},
		Skipped:    []SkippedModule{},
		Passes:     res.Passes,
		Resources:  copied,
	}, nil
}

// BuildCompleteCourse builds every module found in the modules directory,
// in listing order.
func (b *Builder) BuildCompleteCourse(ctx context.Context, outDir string) (*BuildResult, error) {
	if info, err := os.Stat(b.opts.ModulesDir); err != nil || !info.IsDir() {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("modules directory not found: %s", b.opts.ModulesDir),
			b.opts.ModulesDir,
			"Set course.modulesDir or pass --modules-dir",
		)
	}

	dirs, err := module.ModuleDirs(b.opts.ModulesDir)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	if len(dirs) == 0 {
		return nil, oerrors.NewNotFoundError(
			"no modules found in modules directory",
			b.opts.ModulesDir,
			"Create one with 'coursebuild module new'",
		)
	}

	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = filepath.Base(d)
	}
	return b.BuildCustomCourse(ctx, names, outDir)
}

// BuildCustomCourse builds the named modules, in the given order, into one
// document. Invalid modules are skipped with a warning; the build fails only
// when none remain.
//
// Phase sequence:
//  1. VALIDATE: ValidateModule for each name; collect the valid ones
//  2. ASSEMBLE: combine bodies into one source (or compile each module when merging)
//  3. RESOURCES: copy every valid module's resources to the output directory
//  4. COMPILE: multi-pass compile of the combined source
//  5. CLEANUP: remove compiler byproducts when configured
func (b *Builder) BuildCustomCourse(ctx context.Context, names []string, outDir string) (*BuildResult, error) {
	buildID := uuid.NewString()
	logger := b.logger(buildID)
	logger.Info("building course", "modules", strings.Join(names, ","))

	valid, skipped := b.validateModules(names, logger)
	if len(valid) == 0 {
		return nil, oerrors.NewValidationError(
			"no valid modules to build",
			b.opts.ModulesDir,
			"Run 'coursebuild validate' for details",
		)
	}

	out, err := b.outputDir(outDir)
	if err != nil {
		return nil, err
	}

	ws, err := b.newWorkspace()
	if err != nil {
		return nil, err
	}
	defer ws.close()

	var result *BuildResult
	if b.opts.MergePDFs {
		result, err = b.buildSeparate(ctx, ws, valid, out, logger)
	} else {
		result, err = b.buildCombined(ctx, ws, valid, out)
	}
	if err != nil {
		logger.Error("failed to build course", "error", err)
		return nil, err
	}

	result.BuildID = buildID
	result.Skipped = append(skipped, result.Skipped...)
	if result.Modules == nil {
		for _, p := range valid {
			result.Modules = append(result.Modules, filepath.Base(p))
		}
	}
	logger.Info("built course", "modules", len(result.Modules), "skipped", len(result.Skipped), "output", result.OutputPath)
	return result, nil
}

func (b *Builder) validateModules(names []string, logger *log.Logger) ([]string, []SkippedModule) {
	valid := make([]string, 0, len(names))
	skipped := []SkippedModule{}
	for _, name := range names {
		modPath := filepath.Join(b.opts.ModulesDir, name)
		res := b.validator.ValidateModule(modPath)
		if !res.Valid {
			logger.Warn("skipping invalid module", "module", name, "errors", strings.Join(res.Errors, "; "))
			skipped = append(skipped, SkippedModule{Name: name, Errors: res.Errors})
			continue
		}
		valid = append(valid, modPath)
	}
	return valid, skipped
}

// copyResources copies each module's resources into every dir in dsts.
func copyResources(modules []string, dsts ...string) ([]string, error) {
	var copied []string
	for _, dst := range dsts {
		for _, m := range modules {
			files, err := combine.CopyResources(m, dst)
			if err != nil {
				return nil, err
			}
			if dst == dsts[0] {
				copied = append(copied, files...)
			}
		}
	}
	return copied, nil
}

func (b *Builder) buildCombined(ctx context.Context, ws *workspace, modules []string, out string) (*BuildResult, error) {
	src, err := ws.combiner.CombineModules(modules, b.opts.combinedName())
	if err != nil {
		return nil, err
	}

	// The compiler runs next to the combined source, so resources are
	// needed there as well as in the output directory.
	copied, err := copyResources(modules, out, ws.combiner.Dir())
	if err != nil {
		return nil, err
	}

	res, err := ws.compiler.CompileMultiplePasses(ctx, src, out, b.opts.passes())
	if err != nil {
		return nil, err
	}

	if b.opts.CleanupTemp {
		combine.CleanTempFiles(out)
	}

	return &BuildResult{
		OutputPath: res.OutputPath,
		Passes:     res.Passes,
		Resources:  copied,
	}, nil
}

// buildSeparate compiles each module on its own and merges the PDFs with
// one bookmark per module. A module that fails to compile is reported as
// skipped; the build fails only when no module compiles.
func (b *Builder) buildSeparate(ctx context.Context, ws *workspace, modules []string, out string, logger *log.Logger) (*BuildResult, error) {
	merger := pdf.NewMerger(b.opts.PDFBackend)
	if !merger.IsAvailable() {
		return nil, &pdf.Error{Kind: pdf.KindUnavailable, Message: "no PDF backend available for merging"}
	}

	copied, err := copyResources(modules, out)
	if err != nil {
		return nil, err
	}

	pdfs := make([]string, 0, len(modules))
	titles := make([]string, 0, len(modules))
	built := make([]string, 0, len(modules))
	var failed []SkippedModule
	var firstErr error
	passes := 0
	for _, m := range modules {
		name := filepath.Base(m)
		primary, ok := module.FindPrimaryFile(m)
		if !ok {
			logger.Warn("no LaTeX source found, skipping", "module", name)
			failed = append(failed, SkippedModule{Name: name, Errors: []string{"no LaTeX source found"}})
			continue
		}
		modOut := filepath.Join(ws.compiler.WorkDir(), name)
		res, err := ws.compiler.CompileMultiplePasses(ctx, primary, modOut, b.opts.passes())
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			logger.Warn("module failed to compile, skipping", "module", name, "error", err)
			failed = append(failed, SkippedModule{Name: name, Errors: []string{err.Error()}})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if b.opts.CleanupTemp {
			ws.compiler.CleanupTempFiles(primary)
		}
		passes = res.Passes
		pdfs = append(pdfs, res.OutputPath)
		titles = append(titles, module.Title(m))
		built = append(built, name)
	}

	if len(pdfs) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, &pdf.Error{Kind: pdf.KindNoValidFiles, Message: "no module produced a PDF"}
	}

	target := filepath.Join(out, strings.TrimSuffix(b.opts.combinedName(), ".tex")+".pdf")
	merged, err := merger.Merge(pdfs, target, titles)
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		OutputPath: merged.OutputPath,
		Modules:    built,
		Skipped:    failed,
		Passes:     passes,
		Resources:  copied,
		Merge:      merged,
	}, nil
}

// ListModules catalogues every module; a missing modules directory yields
// an empty list with a warning.
func (b *Builder) ListModules() []*module.Info {
	if _, err := os.Stat(b.opts.ModulesDir); err != nil {
		output.Warn("modules directory not found", "path", b.opts.ModulesDir)
		return []*module.Info{}
	}
	return b.validator.ListModules(b.opts.ModulesDir)
}

// ValidateAllModules validates the course structure and every module in it.
func (b *Builder) ValidateAllModules() *module.CourseValidation {
	return b.validator.ValidateCourseStructure(b.opts.ModulesDir)
}

// ModuleInfo catalogues a single module by name.
func (b *Builder) ModuleInfo(name string) (*module.Info, error) {
	modPath := filepath.Join(b.opts.ModulesDir, name)
	info := b.validator.ModuleInfo(modPath)
	if !info.Exists {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("module not found: %s", name),
			modPath,
			"Run 'coursebuild list' to see available modules",
		)
	}
	return info, nil
}
