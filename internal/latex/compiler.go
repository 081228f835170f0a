// Package latex drives the external LaTeX compiler.
package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lbcm/coursebuild/internal/output"
)

const (
	// DefaultCompiler is the compiler executable used when none is configured.
	DefaultCompiler = "pdflatex"
	// DefaultTimeout bounds one compiler invocation.
	DefaultTimeout = 5 * time.Minute
	// DefaultProbeTimeout bounds the installation probe.
	DefaultProbeTimeout = 10 * time.Second
	// DefaultPasses is the pass count used for combined documents.
	DefaultPasses = 2
)

// ByproductExtensions are the auxiliary files a compile leaves behind.
var ByproductExtensions = []string{".aux", ".log", ".out", ".toc", ".bbl", ".blg", ".fls", ".fdb_latexmk"}

// CommandFunc builds the command for one compiler invocation.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Result describes a successful compile.
type Result struct {
	// OutputPath is the produced PDF.
	OutputPath string `json:"outputPath"`
	// Log is the compiler stdout of the final pass.
	Log string `json:"-"`
	// Passes is the number of passes run.
	Passes int `json:"passes"`
}

// Compiler invokes one compiler executable. It owns a working directory
// used as the default output location.
type Compiler struct {
	name         string
	workDir      string
	ownsWorkDir  bool
	timeout      time.Duration
	probeTimeout time.Duration
	command      CommandFunc
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTimeout sets the per-invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Compiler) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithProbeTimeout sets the installation probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Compiler) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// WithWorkDir uses dir as the working directory instead of a fresh temp dir.
// The caller keeps ownership of dir.
func WithWorkDir(dir string) Option {
	return func(c *Compiler) {
		c.workDir = dir
	}
}

// WithCommandFunc replaces the process factory.
func WithCommandFunc(f CommandFunc) Option {
	return func(c *Compiler) {
		if f != nil {
			c.command = f
		}
	}
}

// New creates a Compiler for the named executable. An empty name selects
// DefaultCompiler.
func New(name string, opts ...Option) (*Compiler, error) {
	if name == "" {
		name = DefaultCompiler
	}
	c := &Compiler{
		name:         name,
		timeout:      DefaultTimeout,
		probeTimeout: DefaultProbeTimeout,
		command:      exec.CommandContext,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.workDir == "" {
		dir, err := os.MkdirTemp("", "coursebuild-latex-*")
		if err != nil {
			return nil, fmt.Errorf("creating working directory: %w", err)
		}
		c.workDir = dir
		c.ownsWorkDir = true
	} else if err := os.MkdirAll(c.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}

	return c, nil
}

// Name returns the compiler executable name.
func (c *Compiler) Name() string {
	return c.name
}

// WorkDir returns the working directory.
func (c *Compiler) WorkDir() string {
	return c.workDir
}

// Close removes the working directory if the Compiler created it.
// Removal failures are ignored.
func (c *Compiler) Close() error {
	if c.ownsWorkDir {
		if err := os.RemoveAll(c.workDir); err != nil {
			output.Debug("failed to remove working directory", "dir", c.workDir, "error", err)
		}
		c.ownsWorkDir = false
	}
	return nil
}

// CheckInstallation reports whether the compiler answers a version query
// within the probe timeout.
func (c *Compiler) CheckInstallation(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	cmd := c.command(probeCtx, c.name, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		output.Debug("compiler probe failed", "compiler", c.name, "error", err)
		return false
	}
	return true
}

// Compile runs one non-interactive pass over src, writing into outDir
// (the working directory when empty). Success requires both a zero exit
// status and the expected PDF on disk.
func (c *Compiler) Compile(ctx context.Context, src, outDir string) (*Result, error) {
	if info, err := os.Stat(src); err != nil || info.IsDir() {
		return nil, &CompileError{
			Kind:    KindSourceNotFound,
			Message: fmt.Sprintf("LaTeX file not found: %s", src),
			Source:  src,
			Err:     err,
		}
	}

	if !c.CheckInstallation(ctx) {
		return nil, &CompileError{
			Kind:    KindCompilerNotInstalled,
			Message: fmt.Sprintf("LaTeX compiler not found: %s", c.name),
			Source:  src,
		}
	}

	if outDir == "" {
		outDir = c.workDir
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, &CompileError{Kind: KindExec, Message: "resolving output directory", Source: src, Err: err}
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, &CompileError{Kind: KindExec, Message: "resolving source path", Source: src, Err: err}
	}
	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return nil, &CompileError{
			Kind:    KindExec,
			Message: fmt.Sprintf("creating output directory %s", absOut),
			Source:  src,
			Err:     err,
		}
	}

	// A PDF left over from an earlier run must not pass for this run's output.
	pdf := filepath.Join(absOut, strings.TrimSuffix(filepath.Base(absSrc), filepath.Ext(absSrc))+".pdf")
	if err := os.Remove(pdf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &CompileError{
			Kind:    KindExec,
			Message: fmt.Sprintf("removing stale output %s", pdf),
			Source:  src,
			Err:     err,
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := c.command(runCtx, c.name, "-interaction=nonstopmode", "-output-directory", absOut, absSrc)
	cmd.Dir = filepath.Dir(absSrc)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	output.Debug("running compiler", "compiler", c.name, "source", absSrc, "outDir", absOut)
	runErr := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, &CompileError{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("compilation timed out after %s", c.timeout),
			Source:  src,
			Log:     stdout.String(),
			Err:     runCtx.Err(),
		}
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && ctx.Err() == nil {
			return nil, &CompileError{
				Kind:    KindFailed,
				Message: failureMessage(exitErr.ExitCode(), stderr.String()),
				Source:  src,
				Log:     stdout.String(),
				Err:     runErr,
			}
		}
		return nil, &CompileError{
			Kind:    KindExec,
			Message: fmt.Sprintf("compilation error: %v", runErr),
			Source:  src,
			Log:     stdout.String(),
			Err:     runErr,
		}
	}

	if _, err := os.Stat(pdf); err != nil {
		return nil, &CompileError{
			Kind:    KindMissingOutput,
			Message: fmt.Sprintf("compiler exited successfully but %s was not produced", filepath.Base(pdf)),
			Source:  src,
			Log:     stdout.String(),
		}
	}

	return &Result{OutputPath: pdf, Log: stdout.String(), Passes: 1}, nil
}

func failureMessage(code int, stderr string) string {
	msg := fmt.Sprintf("compilation failed with exit code %d", code)
	if s := strings.TrimSpace(stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// CompileMultiplePasses runs Compile up to passes times and stops at the
// first failure; later passes never run after a failed one.
func (c *Compiler) CompileMultiplePasses(ctx context.Context, src, outDir string, passes int) (*Result, error) {
	if passes < 1 {
		passes = 1
	}

	var res *Result
	for i := 1; i <= passes; i++ {
		output.Info("compilation pass", "pass", fmt.Sprintf("%d/%d", i, passes), "source", filepath.Base(src))

		var err error
		res, err = c.Compile(ctx, src, outDir)
		if err != nil {
			var ce *CompileError
			if errors.As(err, &ce) {
				ce.Pass = i
			}
			return nil, err
		}
	}

	res.Passes = passes
	return res, nil
}

// CleanupTempFiles removes the byproducts sharing src's base name from
// src's directory and from any extra dirs. Failures are logged.
func (c *Compiler) CleanupTempFiles(src string, dirs ...string) {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	searchDirs := append([]string{filepath.Dir(src)}, dirs...)

	for _, dir := range searchDirs {
		for _, ext := range ByproductExtensions {
			p := filepath.Join(dir, base+ext)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := os.Remove(p); err != nil {
				output.Warn("failed to clean up", "path", p, "error", err)
				continue
			}
			output.Debug("cleaned up", "path", p)
		}
	}
}

// CompilationLog returns the compiler log for src, looking in the given
// dirs first and then next to src.
func (c *Compiler) CompilationLog(src string, dirs ...string) (string, bool) {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".log"
	searchDirs := append(append([]string{}, dirs...), filepath.Dir(src))
	for _, dir := range searchDirs {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), true
		}
		if !os.IsNotExist(err) {
			output.Warn("failed to read log file", "path", filepath.Join(dir, name), "error", err)
		}
	}
	return "", false
}
