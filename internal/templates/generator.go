package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/metadata"
	"github.com/lbcm/coursebuild/internal/output"
)

// Generator creates module folders from the embedded templates.
type Generator struct {
	opts GenerateOptions
	now  func() time.Time
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts GenerateOptions) *Generator {
	return &Generator{opts: opts, now: time.Now}
}

// Generate creates the module folder with main.tex, preamble.tex,
// README.md, an empty references.bib, an images folder and a metadata
// sidecar. An existing folder is never overwritten.
func (g *Generator) Generate() (*GenerateResult, error) {
	if err := ValidateFolderName(g.opts.FolderName); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), g.opts.FolderName, "")
	}
	if err := ValidateTitle(g.opts.Title); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), g.opts.FolderName, "")
	}

	moduleDir := filepath.Join(g.opts.ModulesDir, g.opts.FolderName)
	if _, err := os.Stat(moduleDir); err == nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("module %q already exists", g.opts.FolderName),
			moduleDir,
			"Choose another folder name or remove the existing module",
		)
	}

	author := g.opts.Author
	if author == "" {
		author = metadata.DefaultAuthor
	}
	data := TemplateData{
		FolderName: g.opts.FolderName,
		Title:      g.opts.Title,
		Subtitle:   g.opts.Subtitle,
		Author:     author,
		Date:       g.now().Format(time.DateOnly),
	}

	output.Debug("generating module",
		"folder", data.FolderName,
		"title", data.Title,
		"target", moduleDir)

	files, err := NewRenderer(data).RenderModule()
	if err != nil {
		return nil, fmt.Errorf("rendering templates: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(moduleDir, "images"), 0o755); err != nil {
		return nil, fmt.Errorf("creating module directory: %w", err)
	}

	created := make([]string, 0, len(files)+2)
	for _, f := range files {
		target := filepath.Join(moduleDir, f.TargetPath)
		if err := os.WriteFile(target, f.Content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", target, err)
		}
		output.Debug("created file", "path", f.TargetPath)
		created = append(created, f.TargetPath)
	}

	bib := filepath.Join(moduleDir, metadata.BibFileName)
	if err := os.WriteFile(bib, nil, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", bib, err)
	}
	created = append(created, metadata.BibFileName)

	if _, err := metadata.Create(moduleDir, metadata.Fields{
		Title:    data.Title,
		Subtitle: data.Subtitle,
		Author:   data.Author,
		Date:     data.Date,
		Folder:   data.FolderName,
	}); err != nil {
		return nil, err
	}
	created = append(created, metadata.FileName)

	output.Info("created module", "folder", data.FolderName, "path", moduleDir)
	return &GenerateResult{ModuleDir: moduleDir, Files: created}, nil
}
