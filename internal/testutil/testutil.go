// Package testutil provides test helpers for building module trees on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// EnvelopedDocument is a complete primary file with a body of body.
func EnvelopedDocument(body string) string {
	return "\\documentclass{article}\n\\usepackage{graphicx}\n\\begin{document}\n" +
		body + "\n\\end{document}\n"
}

// Course creates an empty modules directory under a fresh temp dir.
func Course(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "modules")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create course dir: %v", err)
	}
	return dir
}

// Module creates courseDir/name with the given files (relative path to
// content) and returns the module path. A file path ending in "/" creates
// an empty directory.
func Module(t *testing.T, courseDir, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(courseDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create module dir %s: %v", dir, err)
	}
	for rel, content := range files {
		if rel != "" && rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(filepath.Join(dir, rel), 0o755); err != nil {
				t.Fatalf("failed to create dir %s: %v", rel, err)
			}
			continue
		}
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// ValidModule creates a module with an enveloped main.tex, a README and an
// images folder.
func ValidModule(t *testing.T, courseDir, name string) string {
	t.Helper()
	return Module(t, courseDir, name, map[string]string{
		"main.tex":  EnvelopedDocument("Content of " + name + "."),
		"README.md": "# " + name + "\n\n## Description\nModule " + name + ".\n",
		"images/":   "",
	})
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
