package latex

import (
	"errors"
	"fmt"

	oerrors "github.com/lbcm/coursebuild/internal/errors"
)

// ErrorKind classifies a compile failure.
type ErrorKind string

const (
	// KindSourceNotFound means the source file does not exist.
	KindSourceNotFound ErrorKind = "source-not-found"
	// KindCompilerNotInstalled means the installation probe failed.
	KindCompilerNotInstalled ErrorKind = "compiler-not-installed"
	// KindTimeout means the compiler exceeded its time budget.
	KindTimeout ErrorKind = "timeout"
	// KindFailed means the compiler exited with a non-zero status.
	KindFailed ErrorKind = "failed"
	// KindMissingOutput means the compiler exited cleanly without producing a PDF.
	KindMissingOutput ErrorKind = "missing-output"
	// KindExec means the compiler process could not be run.
	KindExec ErrorKind = "exec"
)

// CompileError is returned by every failed compile.
type CompileError struct {
	Kind    ErrorKind
	Message string
	// Source is the file being compiled.
	Source string
	// Pass is the 1-based pass that failed, 0 for single compiles.
	Pass int
	// Log is the captured compiler stdout, if any.
	Log string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pass > 0 {
		return fmt.Sprintf("pass %d: %s", e.Pass, e.Message)
	}
	return e.Message
}

// Unwrap exposes the sentinel matching Kind and the underlying error.
func (e *CompileError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *CompileError) sentinel() error {
	switch e.Kind {
	case KindSourceNotFound:
		return oerrors.ErrNotFound
	case KindCompilerNotInstalled:
		return oerrors.ErrEnvironment
	default:
		return oerrors.ErrCompilation
	}
}

// IsKind reports whether err is a CompileError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CompileError
	return errors.As(err, &ce) && ce.Kind == kind
}
