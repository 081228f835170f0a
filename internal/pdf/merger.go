// Package pdf merges and inspects compiled PDF documents.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lbcm/coursebuild/internal/output"
)

// Backend names a merge implementation.
type Backend string

const (
	// BackendFull merges pages and writes outlines.
	BackendFull Backend = "full"
	// BackendCoverPage only writes a cover page listing the inputs.
	BackendCoverPage Backend = "coverpage"
	// BackendNone performs no work; every operation fails.
	BackendNone Backend = "none"
)

// Capability is one operation a backend may support.
type Capability string

const (
	CapMerge     Capability = "merge"
	CapPageMerge Capability = "page-merge"
	CapBookmarks Capability = "bookmarks"
	CapInspect   Capability = "inspect"
)

var backendCapabilities = map[Backend][]Capability{
	BackendFull:      {CapMerge, CapPageMerge, CapBookmarks, CapInspect},
	BackendCoverPage: {CapMerge, CapInspect},
	BackendNone:      nil,
}

// Bookmark is an outline entry addressed by zero-based page index.
type Bookmark struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
}

// MergeResult describes a successful merge. Warning is set when the active
// backend could only do part of the job.
type MergeResult struct {
	OutputPath  string  `json:"outputPath"`
	FilesMerged int     `json:"filesMerged"`
	Backend     Backend `json:"backend"`
	Warning     string  `json:"warning,omitempty"`
}

// engine is implemented by each concrete backend.
type engine interface {
	merge(files []string, out string, titles []string) error
	addBookmarks(path string, bms []Bookmark) (int, error)
	info(path string) (*Info, error)
}

// Merger merges PDFs with the best backend resolved at construction.
type Merger struct {
	backend Backend
	engine  engine
}

// Option configures backend negotiation.
type Option func(*negotiation)

type negotiation struct {
	available map[Backend]bool
}

// WithAvailable restricts the backends negotiation may choose from.
func WithAvailable(backends ...Backend) Option {
	return func(n *negotiation) {
		n.available = make(map[Backend]bool, len(backends))
		for _, b := range backends {
			n.available[b] = true
		}
	}
}

// NewMerger resolves the requested backend ("auto", "full", "coverpage",
// "none"). A backend that is not available falls back to the next weaker
// one; an unknown name is treated as "auto".
func NewMerger(requested string, opts ...Option) *Merger {
	n := &negotiation{available: map[Backend]bool{BackendFull: true, BackendCoverPage: true}}
	for _, opt := range opts {
		opt(n)
	}

	chain := []Backend{BackendFull, BackendCoverPage}
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "", "auto", string(BackendFull):
	case string(BackendCoverPage):
		chain = []Backend{BackendCoverPage}
	case string(BackendNone):
		chain = nil
	default:
		output.Warn("unknown PDF backend, using auto", "backend", requested)
	}

	m := &Merger{backend: BackendNone}
	for i, b := range chain {
		if !n.available[b] {
			if i+1 < len(chain) {
				output.Warn("PDF backend not available, falling back", "backend", b, "fallback", chain[i+1])
			}
			continue
		}
		m.backend = b
		break
	}

	switch m.backend {
	case BackendFull:
		m.engine = newFullEngine()
	case BackendCoverPage:
		m.engine = newCoverPageEngine()
	}
	output.Debug("PDF backend resolved", "requested", requested, "backend", m.backend)
	return m
}

// Backend returns the active backend.
func (m *Merger) Backend() Backend {
	return m.backend
}

// IsAvailable reports whether any backend is active.
func (m *Merger) IsAvailable() bool {
	return m.backend != BackendNone
}

// Capabilities lists what the active backend can do.
func (m *Merger) Capabilities() []Capability {
	return backendCapabilities[m.backend]
}

// Supports reports whether the active backend has capability c.
func (m *Merger) Supports(c Capability) bool {
	for _, have := range m.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}

func (m *Merger) require(c Capability) error {
	if !m.IsAvailable() {
		return &Error{
			Kind:    KindUnavailable,
			Message: "no PDF backend available",
		}
	}
	if !m.Supports(c) {
		return &Error{
			Kind:    KindCapability,
			Message: fmt.Sprintf("%s requires the %s backend, active backend is %s", c, BackendFull, m.backend),
		}
	}
	return nil
}

// Merge combines files into out in the given order. Inputs that do not exist
// or lack a .pdf extension are logged and dropped; the merge fails only when
// none remain. titles label each input's bookmark; a missing or empty label
// falls back to the input's base name.
func (m *Merger) Merge(files []string, out string, titles []string) (*MergeResult, error) {
	if err := m.require(CapMerge); err != nil {
		return nil, err
	}

	valid := make([]string, 0, len(files))
	validTitles := make([]string, 0, len(files))
	for i, f := range files {
		if reason := checkInput(f); reason != "" {
			output.Warn("skipping PDF input", "path", f, "reason", reason)
			continue
		}
		title := ""
		if i < len(titles) {
			title = titles[i]
		}
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		}
		valid = append(valid, f)
		validTitles = append(validTitles, title)
	}

	if len(valid) == 0 {
		return nil, &Error{Kind: KindNoValidFiles, Message: "no valid PDF files to merge"}
	}

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &Error{Kind: KindIO, Message: "creating output directory", Err: err}
		}
	}

	if err := m.engine.merge(valid, out, validTitles); err != nil {
		return nil, &Error{Kind: KindIO, Message: fmt.Sprintf("merging into %s", out), Err: err}
	}

	result := &MergeResult{
		OutputPath:  out,
		FilesMerged: len(valid),
		Backend:     m.backend,
	}
	if !m.Supports(CapPageMerge) {
		result.Warning = "only a cover page listing the inputs was written; full PDF merging is unavailable"
		output.Warn(result.Warning, "backend", m.backend)
	} else {
		output.Info("merged PDFs", "files", len(valid), "output", out)
	}
	return result, nil
}

// AddBookmarks attaches outline entries to path in place. Entries whose
// page is outside the document are ignored. It returns the number added.
func (m *Merger) AddBookmarks(path string, bookmarks []Bookmark) (int, error) {
	if err := m.require(CapBookmarks); err != nil {
		return 0, err
	}
	n, err := m.engine.addBookmarks(path, bookmarks)
	if err != nil {
		return 0, &Error{Kind: KindIO, Message: fmt.Sprintf("adding bookmarks to %s", path), Err: err}
	}
	output.Info("added bookmarks", "path", path, "count", n)
	return n, nil
}

// checkInput returns why f cannot be merged, or "".
func checkInput(f string) string {
	info, err := os.Stat(f)
	if err != nil {
		return "file not found"
	}
	if info.IsDir() {
		return "is a directory"
	}
	if !strings.EqualFold(filepath.Ext(f), ".pdf") {
		return "not a PDF file"
	}
	return ""
}
