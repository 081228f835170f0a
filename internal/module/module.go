// Package module discovers course modules on disk and judges their validity.
package module

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Module is one content folder under the modules directory.
type Module struct {
	// Name is the folder name.
	Name string `json:"name"`
	// Path is the folder location.
	Path string `json:"path"`
	// PrimaryFile is the resolved primary source, empty when none exists.
	PrimaryFile string `json:"primaryFile,omitempty"`
}

// New resolves a module from its folder.
func New(dir string) Module {
	m := Module{Name: filepath.Base(dir), Path: dir}
	m.PrimaryFile, _ = FindPrimaryFile(dir)
	return m
}

// PrimaryCandidates returns the primary file names tried, in order, for a
// module folder with the given name.
func PrimaryCandidates(name string) []string {
	return []string{"main.tex", "module.tex", name + ".tex"}
}

// FindPrimaryFile returns the first primary candidate that exists in dir.
func FindPrimaryFile(dir string) (string, bool) {
	for _, candidate := range PrimaryCandidates(filepath.Base(dir)) {
		p := filepath.Join(dir, candidate)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

// ReadmeCandidates are the descriptive file names tried, in order.
var ReadmeCandidates = []string{"README.md", "README.txt", "readme.md", "readme.txt"}

// FindReadme returns the first descriptive file that exists in dir.
func FindReadme(dir string) (string, bool) {
	for _, candidate := range ReadmeCandidates {
		p := filepath.Join(dir, candidate)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

// ModuleDirs returns the immediate, non-hidden subdirectories of coursePath
// sorted by name.
func ModuleDirs(coursePath string) ([]string, error) {
	entries, err := os.ReadDir(coursePath)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(coursePath, e.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Title derives a display title from a module folder or file path:
// underscores become spaces and each word is capitalized.
func Title(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && isFile(path) {
		base = strings.TrimSuffix(base, ext)
	}
	words := strings.Fields(strings.ReplaceAll(base, "_", " "))
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// titleWord upper-cases every letter that follows a non-letter and
// lower-cases the others, so "3d" becomes "3D" and "intro.v2" "Intro.V2".
func titleWord(w string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range w {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			sb.WriteRune(unicode.ToUpper(r))
		case isLetter:
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return sb.String()
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
