package version

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// compilerVersionRegex matches the first version-like token of compiler
// banners such as "pdfTeX 3.141592653-2.6-1.40.25 (TeX Live 2023)".
var compilerVersionRegex = regexp.MustCompile(`\d+\.\d+(?:[.-][0-9A-Za-z]+)*`)

// DefaultProbeTimeout bounds a compiler version query.
const DefaultProbeTimeout = 10 * time.Second

// DetectCompiler finds the named compiler and queries its version.
// It never returns an error; failures are described in the result.
func DetectCompiler(ctx context.Context, name string, timeout time.Duration) CompilerInfo {
	info := CompilerInfo{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		info.Message = "not found in PATH"
		return info
	}
	info.Path = path

	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		info.Message = "version query failed: " + err.Error()
		return info
	}

	info.Found = true
	info.Version = extractVersion(out.String())
	return info
}

// extractVersion returns the first version token on the first non-empty
// line of the compiler banner, or "" when none is present.
func extractVersion(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return compilerVersionRegex.FindString(line)
	}
	return ""
}
