package module

import (
	"os"
	"path/filepath"

	"github.com/lbcm/coursebuild/internal/output"
)

// Info is the catalogue entry for one module.
type Info struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Readme
	Files FileCatalog `json:"files"`
}

// ModuleInfo gathers README metadata and a file catalogue for one module.
// A missing folder yields an Info with Exists false.
func (v *Validator) ModuleInfo(path string) *Info {
	info := &Info{
		Name: filepath.Base(path),
		Path: path,
		Readme: Readme{
			LearningObjectives: []string{},
			Prerequisites:      []string{},
			Resources:          []string{},
		},
	}

	if !isDir(path) {
		return info
	}
	info.Exists = true

	if readme, ok := FindReadme(path); ok {
		data, err := os.ReadFile(readme)
		if err != nil {
			output.Warn("failed to read README", "path", readme, "error", err)
		} else {
			info.Readme = ParseReadme(string(data))
		}
	}

	info.Files = Catalog(path)
	return info
}

// ListModules returns catalogue entries for every module folder under
// coursePath, sorted by folder name. A missing course directory yields an
// empty list.
func (v *Validator) ListModules(coursePath string) []*Info {
	dirs, err := ModuleDirs(coursePath)
	if err != nil {
		output.Debug("cannot list modules", "path", coursePath, "error", err)
		return []*Info{}
	}

	infos := make([]*Info, 0, len(dirs))
	for _, dir := range dirs {
		infos = append(infos, v.ModuleInfo(dir))
	}
	return infos
}
