package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/output"
)

// Update lists the changes a refresh applies on top of the reference sync.
type Update struct {
	// Title replaces the title when non-empty.
	Title string
	// Subtitle replaces the subtitle when non-nil, including with "".
	Subtitle *string
	// Tags are appended when not already present.
	Tags []string
}

// RefreshResult describes a completed refresh.
type RefreshResult struct {
	Path     string
	Created  bool
	Before   []byte
	After    []byte
	Metadata Metadata
	// Problems are schema violations found in the written document.
	Problems []string
}

// Changed reports whether the refresh modified the file content.
func (r *RefreshResult) Changed() bool {
	return string(r.Before) != string(r.After)
}

// Refresh updates the sidecar of the module at moduleDir. A missing sidecar
// is first created from the default template. References are always
// recomputed from the module bibliography.
func Refresh(moduleDir string, upd Update) (*RefreshResult, error) {
	info, err := os.Stat(moduleDir)
	if err != nil || !info.IsDir() {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("module %q not found", filepath.Base(moduleDir)),
			moduleDir,
			"Run 'coursebuild list' to see available modules",
		)
	}

	result := &RefreshResult{Path: filepath.Join(moduleDir, FileName)}

	if _, err := os.Stat(result.Path); os.IsNotExist(err) {
		if _, err := Create(moduleDir, Fields{Title: filepath.Base(moduleDir)}); err != nil {
			return nil, err
		}
		result.Created = true
		output.Debug("metadata created from template", "path", result.Path)
	}

	before, err := os.ReadFile(result.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", result.Path, err)
	}
	result.Before = before

	doc, err := Parse(before)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrValidation, err.Error())
	}

	apply(doc, upd)

	keys, err := ReadBibKeys(filepath.Join(moduleDir, BibFileName))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", BibFileName, err)
	}
	doc.SetStrings("references", keys)

	after, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(result.Path, after, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", result.Path, err)
	}
	result.After = after

	if result.Metadata, err = doc.Metadata(); err != nil {
		result.Problems = append(result.Problems, err.Error())
	}

	if v, err := NewValidator(); err == nil {
		result.Problems = append(result.Problems, v.Validate(after)...)
	} else {
		output.Warn("metadata schema unavailable", "error", err)
	}

	return result, nil
}

func apply(doc *Document, upd Update) {
	if upd.Title != "" {
		doc.SetString("title", upd.Title)
	}
	if upd.Subtitle != nil {
		doc.SetString("subtitle", *upd.Subtitle)
	}
	if len(upd.Tags) > 0 {
		doc.SetStrings("tags", mergeTags(doc.Strings("tags"), upd.Tags))
	}
}

// mergeTags appends the non-empty additions not already in existing,
// keeping first occurrence order.
func mergeTags(existing, additions []string) []string {
	seen := make(map[string]bool, len(existing)+len(additions))
	merged := make([]string, 0, len(existing)+len(additions))
	for _, t := range existing {
		seen[t] = true
		merged = append(merged, t)
	}
	for _, t := range additions {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		merged = append(merged, t)
	}
	return merged
}
