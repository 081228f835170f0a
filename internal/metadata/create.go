package metadata

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
	"time"
)

// DefaultAuthor is written into new sidecars when no author is given.
const DefaultAuthor = "LBCM Team"

//go:embed template.yaml
var templateText string

var sidecarTemplate = template.Must(template.New(FileName).
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	Parse(templateText))

// Fields seeds a new sidecar.
type Fields struct {
	Title    string
	Subtitle string
	Author   string
	Date     string
	Folder   string
}

// Render produces the initial sidecar content. Empty Author and Date fall
// back to DefaultAuthor and today's date.
func Render(f Fields) ([]byte, error) {
	if f.Author == "" {
		f.Author = DefaultAuthor
	}
	if f.Date == "" {
		f.Date = time.Now().Format(time.DateOnly)
	}

	var buf bytes.Buffer
	if err := sidecarTemplate.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

// Create writes a new sidecar into moduleDir and returns its path.
func Create(moduleDir string, f Fields) (string, error) {
	if f.Folder == "" {
		f.Folder = filepath.Base(moduleDir)
	}
	data, err := Render(f)
	if err != nil {
		return "", err
	}

	path := filepath.Join(moduleDir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
