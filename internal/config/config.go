// Package config provides configuration loading and management.
package config

import "time"

// CourseConfig describes where modules live and where output goes.
type CourseConfig struct {
	// Title is the course title.
	Title string `mapstructure:"title" json:"title,omitempty" yaml:"title,omitempty"`

	// Author is the course author.
	Author string `mapstructure:"author" json:"author,omitempty" yaml:"author,omitempty"`

	// ModulesDir is the directory holding one folder per module.
	// Env: COURSE_MODULES_DIR, Default: modules
	ModulesDir string `mapstructure:"modulesDir" json:"modulesDir" yaml:"modulesDir"`

	// OutputDir is where compiled documents are written.
	// Env: COURSE_OUTPUT_DIR, Default: output
	OutputDir string `mapstructure:"outputDir" json:"outputDir" yaml:"outputDir"`

	// TempDir is the parent of working directories. Empty means the system default.
	TempDir string `mapstructure:"tempDir" json:"tempDir,omitempty" yaml:"tempDir,omitempty"`
}

// LatexConfig controls the external document compiler.
type LatexConfig struct {
	// Compiler is the compiler executable.
	// Env: COURSE_COMPILER, Default: pdflatex
	Compiler string `mapstructure:"compiler" json:"compiler" yaml:"compiler"`

	// DocumentClass is the class declared by generated documents.
	DocumentClass string `mapstructure:"documentClass" json:"documentClass" yaml:"documentClass"`

	// Packages are included, in order, by generated documents.
	Packages []string `mapstructure:"packages" json:"packages" yaml:"packages"`

	// Passes is the number of compiler passes for combined documents.
	Passes int `mapstructure:"passes" json:"passes" yaml:"passes"`

	// Timeout bounds one compiler invocation.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`

	// ProbeTimeout bounds the installation probe.
	ProbeTimeout time.Duration `mapstructure:"probeTimeout" json:"probeTimeout" yaml:"probeTimeout"`
}

// BuildConfig controls build behavior.
type BuildConfig struct {
	// CleanupTemp removes compiler byproducts from the output directory.
	CleanupTemp bool `mapstructure:"cleanupTemp" json:"cleanupTemp" yaml:"cleanupTemp"`

	// MergePDFs compiles modules separately and merges the results.
	MergePDFs bool `mapstructure:"mergePdfs" json:"mergePdfs" yaml:"mergePdfs"`

	// CombinedName is the file name of the combined document source.
	CombinedName string `mapstructure:"combinedName" json:"combinedName" yaml:"combinedName"`
}

// PDFConfig controls the PDF merge backend.
type PDFConfig struct {
	// Backend is one of auto, full, coverpage, none.
	// Env: COURSE_PDF_BACKEND, Default: auto
	Backend string `mapstructure:"backend" json:"backend" yaml:"backend"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Level is the minimum log level.
	Level string `mapstructure:"level" json:"level" yaml:"level"`

	// File mirrors log output to a file when set.
	File string `mapstructure:"file" json:"file,omitempty" yaml:"file,omitempty"`

	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the coursebuild configuration.
// Loaded from config.yaml, overridden by COURSE_* environment variables.
type Config struct {
	Course CourseConfig `mapstructure:"course" json:"course" yaml:"course"`
	Latex  LatexConfig  `mapstructure:"latex" json:"latex" yaml:"latex"`
	Build  BuildConfig  `mapstructure:"build" json:"build" yaml:"build"`
	PDF    PDFConfig    `mapstructure:"pdf" json:"pdf" yaml:"pdf"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log"`
}

// DefaultPackages are the packages included by generated documents.
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

// DefaultConfig returns a Config with all default values populated.
// Used by `coursebuild config init` and as the loader's base layer.
func DefaultConfig() *Config {
	return &Config{
		Course: CourseConfig{
			Title:      "Course Materials",
			ModulesDir: "modules",
			OutputDir:  "output",
		},
		Latex: LatexConfig{
			Compiler:      "pdflatex",
			DocumentClass: "article",
			Packages:      DefaultPackages(),
			Passes:        2,
			Timeout:       5 * time.Minute,
			ProbeTimeout:  10 * time.Second,
		},
		Build: BuildConfig{
			CleanupTemp:  true,
			CombinedName: "combined_course.tex",
		},
		PDF: PDFConfig{
			Backend: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
