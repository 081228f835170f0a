// Package combine assembles module sources into runnable LaTeX documents.
package combine

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/lbcm/coursebuild/internal/latex"
	"github.com/lbcm/coursebuild/internal/module"
	"github.com/lbcm/coursebuild/internal/output"
)

const (
	beginMarker = `\begin{document}`
	endMarker   = `\end{document}`

	// DefaultCombinedName is the file name of a combined course source.
	DefaultCombinedName = "combined_course.tex"
	// DefaultDocumentClass is declared when the caller gives none.
	DefaultDocumentClass = "article"
)

//go:embed document.tex.tmpl
var documentTemplateText string

var documentTemplate = template.Must(template.New("document").
	Funcs(template.FuncMap{"usepackage": usePackage}).
	Parse(documentTemplateText))

// usePackage renders the argument of \usepackage. "inputenc{utf8}" becomes
// "[utf8]{inputenc}"; a bare name becomes "{name}".
func usePackage(spec string) string {
	name, opts, ok := strings.Cut(spec, "{")
	if !ok {
		return "{" + spec + "}"
	}
	return "[" + strings.TrimSuffix(opts, "}") + "]{" + name + "}"
}

// DefaultPackages are included when the caller gives none.
func DefaultPackages() []string {
	return []string{
		"inputenc{utf8}",
		"fontenc{T1}",
		"geometry{margin=1in}",
		"hyperref",
		"graphicx",
		"amsmath",
		"amsfonts",
		"listings",
		"xcolor",
	}
}

// Manager owns one working directory where generated sources are written.
type Manager struct {
	dir      string
	ownsDir  bool
	class    string
	packages []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithDocumentClass sets the class declared by generated documents.
func WithDocumentClass(class string) Option {
	return func(m *Manager) {
		if class != "" {
			m.class = class
		}
	}
}

// WithPackages sets the packages included by generated documents.
func WithPackages(pkgs []string) Option {
	return func(m *Manager) {
		if len(pkgs) > 0 {
			m.packages = append([]string(nil), pkgs...)
		}
	}
}

// New creates a Manager writing into dir. An empty dir creates a temporary
// directory that Close removes.
func New(dir string, opts ...Option) (*Manager, error) {
	m := &Manager{
		dir:      dir,
		class:    DefaultDocumentClass,
		packages: DefaultPackages(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.dir == "" {
		tmp, err := os.MkdirTemp("", "coursebuild-*")
		if err != nil {
			return nil, fmt.Errorf("creating working directory: %w", err)
		}
		m.dir = tmp
		m.ownsDir = true
	} else if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}

	return m, nil
}

// Dir returns the working directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Close removes the working directory if the Manager created it.
// Removal failures are ignored.
func (m *Manager) Close() error {
	if m.ownsDir {
		if err := os.RemoveAll(m.dir); err != nil {
			output.Debug("failed to remove working directory", "dir", m.dir, "error", err)
		}
		m.ownsDir = false
	}
	return nil
}

// CreateDocument wraps body in a preamble and document envelope and writes
// it to filename inside the working directory. A filename without an
// extension gets ".tex".
func (m *Manager) CreateDocument(body, filename string) (string, error) {
	return m.CreateDocumentWith(body, filename, m.class, m.packages)
}

// CreateDocumentWith is CreateDocument with an explicit class and package list.
func (m *Manager) CreateDocumentWith(body, filename, class string, packages []string) (string, error) {
	if class == "" {
		class = DefaultDocumentClass
	}
	if packages == nil {
		packages = DefaultPackages()
	}

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, struct {
		DocumentClass string
		Packages      []string
		Body          string
	}{class, packages, body})
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}

	if filepath.Ext(filename) == "" {
		filename += ".tex"
	}
	path := filepath.Join(m.dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	output.Info("created LaTeX document", "path", path)
	return path, nil
}

// CombineModules concatenates the bodies of the given modules, in the given
// order, each under a section heading derived from its folder name. Entries
// may be module folders or source files. Entries that yield no source are
// skipped with a warning.
func (m *Manager) CombineModules(paths []string, filename string) (string, error) {
	if filename == "" {
		filename = DefaultCombinedName
	}

	var body strings.Builder
	for _, p := range paths {
		src, ok := resolveSource(p)
		if !ok {
			output.Warn("no LaTeX source found, skipping", "module", p)
			continue
		}

		data, err := os.ReadFile(src)
		if err != nil {
			output.Warn("failed to read module source, skipping", "path", src, "error", err)
			continue
		}

		fmt.Fprintf(&body, "\\section{%s}\n", module.Title(p))
		body.WriteString(ExtractBody(string(data)))
		body.WriteString("\n\n")
	}

	return m.CreateDocument(body.String(), filename)
}

// resolveSource maps a combine entry to its source file. Folders use the
// primary candidate rule; any other existing path is used as-is.
func resolveSource(p string) (string, bool) {
	info, err := os.Stat(p)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		return module.FindPrimaryFile(p)
	}
	return p, true
}

// ExtractBody returns the trimmed text strictly between the document
// markers. Without both markers the whole content is returned unchanged,
// preamble included.
func ExtractBody(content string) string {
	begin := strings.Index(content, beginMarker)
	end := strings.Index(content, endMarker)
	if begin == -1 || end == -1 || end < begin {
		return content
	}
	return strings.TrimSpace(content[begin+len(beginMarker) : end])
}

// CopyResources copies files under srcDir whose extension is in exts
// (module.ImageExtensions when empty) into dstDir, keeping relative paths.
// A file that fails to copy is logged and skipped.
func CopyResources(srcDir, dstDir string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = module.ImageExtensions
	}

	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		output.Warn("resource directory not found", "path", srcDir)
		return []string{}, nil
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dstDir, err)
	}

	copied := []string{}
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			output.Warn("cannot read resource", "path", p, "error", err)
			return nil
		}
		if d.IsDir() || !module.HasExtension(p, exts) {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return nil
		}
		target := filepath.Join(dstDir, rel)
		if err := copyFile(p, target); err != nil {
			output.Error("failed to copy resource", "path", p, "error", err)
			return nil
		}
		output.Debug("copied resource", "from", p, "to", target)
		copied = append(copied, target)
		return nil
	})
	return copied, err
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CleanTempFiles removes files under dir whose extension is in exts
// (latex.ByproductExtensions when empty). Failures are logged.
func CleanTempFiles(dir string, exts ...string) {
	if len(exts) == 0 {
		exts = latex.ByproductExtensions
	}

	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !module.HasExtension(p, exts) {
			return nil
		}
		if err := os.Remove(p); err != nil {
			output.Warn("failed to clean up", "path", p, "error", err)
			return nil
		}
		output.Debug("cleaned up", "path", p)
		return nil
	})
}
