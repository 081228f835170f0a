package module

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lbcm/coursebuild/internal/output"
)

// ResultInfo summarizes what validation found inside a module folder.
type ResultInfo struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	PrimaryFile string   `json:"primaryFile,omitempty"`
	Readme      string   `json:"readme,omitempty"`
	HasImages   bool     `json:"hasImages"`
	HasData     bool     `json:"hasData"`
	TexFiles    []string `json:"texFiles,omitempty"`
	ImageFiles  []string `json:"imageFiles,omitempty"`
	DataFiles   []string `json:"dataFiles,omitempty"`
}

// ValidationResult is the outcome of validating one module.
// Valid is true exactly when Errors is empty.
type ValidationResult struct {
	Valid    bool       `json:"valid"`
	Errors   []string   `json:"errors"`
	Warnings []string   `json:"warnings"`
	Info     ResultInfo `json:"info"`
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) finish() *ValidationResult {
	r.Valid = len(r.Errors) == 0
	return r
}

// CourseValidation aggregates module results over a modules directory.
// Valid is true when at least one module exists and every module is valid.
type CourseValidation struct {
	Valid          bool                         `json:"valid"`
	Errors         []string                     `json:"errors"`
	CoursePath     string                       `json:"coursePath"`
	Modules        map[string]*ValidationResult `json:"modules"`
	TotalModules   int                          `json:"totalModules"`
	ValidModules   int                          `json:"validModules"`
	InvalidModules int                          `json:"invalidModules"`
}

// Names returns the validated module names in sorted order.
func (c *CourseValidation) Names() []string {
	names := make([]string, 0, len(c.Modules))
	for name := range c.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validator inspects module folders. It holds no state; every call reads
// the current disk contents.
type Validator struct{}

// NewValidator creates a module validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateModule checks the structure and primary file content of one module.
func (v *Validator) ValidateModule(path string) *ValidationResult {
	r := &ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Info:     ResultInfo{Name: filepath.Base(path), Path: path},
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.addError("module directory not found: %s", path)
		} else {
			r.addError("cannot access module directory %s: %v", path, err)
		}
		return r.finish()
	}
	if !info.IsDir() {
		r.addError("module path is not a directory: %s", path)
		return r.finish()
	}

	primary, ok := FindPrimaryFile(path)
	if ok {
		r.Info.PrimaryFile = primary
	} else {
		r.addError("no main LaTeX file found, expected one of: %s",
			strings.Join(PrimaryCandidates(r.Info.Name), ", "))
	}

	if readme, ok := FindReadme(path); ok {
		r.Info.Readme = readme
	} else {
		r.addWarning("no README file found")
	}

	v.collectResources(path, &r.Info)

	if primary != "" {
		errs, warns := checkContent(primary)
		r.Errors = append(r.Errors, errs...)
		r.Warnings = append(r.Warnings, warns...)
	}

	return r.finish()
}

// collectResources fills the file lists of info. Images are matched by
// extension anywhere in the module; data files by their parent folder.
func (v *Validator) collectResources(dir string, info *ResultInfo) {
	info.HasImages = isDir(filepath.Join(dir, "images"))
	info.HasData = isDir(filepath.Join(dir, "data"))

	if matches, err := filepath.Glob(filepath.Join(dir, "*.tex")); err == nil {
		sort.Strings(matches)
		info.TexFiles = matches
	}

	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch {
		case IsImage(p):
			info.ImageFiles = append(info.ImageFiles, p)
		case IsData(p):
			info.DataFiles = append(info.DataFiles, p)
		}
		return nil
	})
}

// checkContent runs the content checks on a primary file.
func checkContent(file string) (errs, warns []string) {
	data, err := os.ReadFile(file)
	if err != nil {
		return []string{fmt.Sprintf("failed to read LaTeX file: %v", err)}, nil
	}
	content := string(data)

	if strings.Contains(content, `\documentclass`) &&
		(!strings.Contains(content, `\begin{document}`) || !strings.Contains(content, `\end{document}`)) {
		errs = append(errs, "complete LaTeX document structure required")
	}

	if strings.Contains(content, `\includegraphics`) && !isDir(filepath.Join(filepath.Dir(file), "images")) {
		warns = append(warns, `\includegraphics used but no images directory found`)
	}

	if (strings.Contains(content, `\ref{`) || strings.Contains(content, `\cite{`)) &&
		!strings.Contains(content, `\label{`) && !strings.Contains(content, `\bibitem{`) {
		warns = append(warns, "references used but no labels or bibliography found")
	}

	if !utf8.Valid(data) {
		errs = append(errs, "file contains non-UTF-8 characters")
	}

	return errs, warns
}

// ValidateCourseStructure validates every module folder under coursePath.
// One module's errors never prevent the others from being checked.
func (v *Validator) ValidateCourseStructure(coursePath string) *CourseValidation {
	cv := &CourseValidation{
		Errors:     []string{},
		CoursePath: coursePath,
		Modules:    make(map[string]*ValidationResult),
	}

	if !isDir(coursePath) {
		cv.Errors = append(cv.Errors, fmt.Sprintf("course directory not found: %s", coursePath))
		return cv
	}

	dirs, err := ModuleDirs(coursePath)
	if err != nil {
		cv.Errors = append(cv.Errors, fmt.Sprintf("cannot read course directory %s: %v", coursePath, err))
		return cv
	}
	if len(dirs) == 0 {
		cv.Errors = append(cv.Errors, "no module directories found")
		return cv
	}

	for _, dir := range dirs {
		result := v.ValidateModule(dir)
		cv.Modules[result.Info.Name] = result
		cv.TotalModules++
		if result.Valid {
			cv.ValidModules++
		} else {
			cv.InvalidModules++
		}
		output.Debug("module validated",
			"module", result.Info.Name,
			"valid", result.Valid,
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
		)
	}

	cv.Valid = len(cv.Errors) == 0 && cv.InvalidModules == 0
	return cv
}
