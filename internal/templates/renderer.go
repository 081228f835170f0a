package templates

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"
	"text/template"
)

// RenderedFile is one module file produced from a template.
type RenderedFile struct {
	// TargetPath is relative to the module folder.
	TargetPath string
	Content    []byte
}

// Renderer executes the embedded module templates against one module's data.
type Renderer struct {
	data TemplateData
	set  *template.Template
}

// NewRenderer parses every module template. The templates are compiled
// into the binary, so a parse failure is a programming error.
func NewRenderer(data TemplateData) *Renderer {
	set := template.Must(template.New(moduleDir).
		Funcs(template.FuncMap{"latex": EscapeLaTeX}).
		ParseFS(TemplateFS, path.Join(moduleDir, "*.tmpl")))
	return &Renderer{data: data, set: set}
}

// RenderModule renders all module templates, ordered by template name.
func (r *Renderer) RenderModule() ([]RenderedFile, error) {
	var files []RenderedFile
	for _, tmpl := range r.set.Templates() {
		name := tmpl.Name()
		if !strings.HasSuffix(name, ".tmpl") {
			continue
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, r.data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", name, err)
		}
		files = append(files, RenderedFile{
			TargetPath: strings.TrimSuffix(name, ".tmpl"),
			Content:    buf.Bytes(),
		})
	}
	slices.SortFunc(files, func(a, b RenderedFile) int {
		return strings.Compare(a.TargetPath, b.TargetPath)
	})
	return files, nil
}
