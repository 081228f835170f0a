package module

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// ImageExtensions is the set of extensions treated as image resources.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".pdf", ".svg", ".eps", ".gif", ".bmp"}

// IsImage reports whether path carries an image extension.
func IsImage(path string) bool {
	return HasExtension(path, ImageExtensions)
}

// HasExtension reports whether path ends in one of exts, case-insensitively.
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// IsData reports whether path sits directly inside a folder named data.
func IsData(path string) bool {
	return filepath.Base(filepath.Dir(path)) == "data"
}

// FileCatalog partitions a module's files by role. Paths are relative to the
// module folder.
type FileCatalog struct {
	Tex    []string `json:"tex"`
	Images []string `json:"images"`
	Data   []string `json:"data"`
	Other  []string `json:"other"`
}

// Len returns the number of catalogued files.
func (c FileCatalog) Len() int {
	return len(c.Tex) + len(c.Images) + len(c.Data) + len(c.Other)
}

// Catalog walks dir recursively and classifies every regular file.
// Unreadable entries are skipped.
func Catalog(dir string) FileCatalog {
	var c FileCatalog
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		switch {
		case strings.EqualFold(filepath.Ext(p), ".tex"):
			c.Tex = append(c.Tex, rel)
		case IsImage(p):
			c.Images = append(c.Images, rel)
		case IsData(p):
			c.Data = append(c.Data, rel)
		default:
			c.Other = append(c.Other, rel)
		}
		return nil
	})
	return c
}
