package pdf

import (
	"errors"

	oerrors "github.com/lbcm/coursebuild/internal/errors"
)

// ErrorKind classifies a merger failure.
type ErrorKind string

const (
	// KindUnavailable means no backend is active.
	KindUnavailable ErrorKind = "unavailable"
	// KindCapability means the active backend lacks the requested operation.
	KindCapability ErrorKind = "capability"
	// KindNoValidFiles means every input was rejected.
	KindNoValidFiles ErrorKind = "no-valid-files"
	// KindIO means reading or writing a document failed.
	KindIO ErrorKind = "io"
)

// Error is returned by every failed merger operation.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the sentinel matching Kind and the underlying error.
func (e *Error) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case KindUnavailable, KindCapability:
		sentinel = oerrors.ErrEnvironment
	case KindNoValidFiles:
		sentinel = oerrors.ErrValidation
	}
	var errs []error
	if sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsKind reports whether err is an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}
