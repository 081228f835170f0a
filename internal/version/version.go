// Package version provides version information for the coursebuild CLI.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`
}

// CompilerInfo describes the external document compiler found on PATH.
type CompilerInfo struct {
	// Name is the compiler executable name.
	Name string `json:"name"`

	// Version is the version string reported by the compiler.
	Version string `json:"version,omitempty"`

	// Path is the resolved path of the executable.
	Path string `json:"path,omitempty"`

	// Found indicates if the compiler was found.
	Found bool `json:"found"`

	// Message provides additional detail when detection failed.
	Message string `json:"message,omitempty"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("coursebuild:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
}

// String returns a human-readable compiler info string.
func (c CompilerInfo) String() string {
	if !c.Found {
		msg := "not found"
		if c.Message != "" {
			msg = c.Message
		}
		return fmt.Sprintf("  Compiler: %s (%s)\n  Path:     -", c.Name, msg)
	}

	v := c.Version
	if v == "" {
		v = "unknown version"
	}
	return fmt.Sprintf("  Compiler: %s %s\n  Path:     %s", c.Name, v, c.Path)
}

// FullVersionString returns complete version information including the compiler.
func FullVersionString(info Info, compiler CompilerInfo) string {
	return fmt.Sprintf("%s\n\nLaTeX:\n%s", info.String(), compiler.String())
}
