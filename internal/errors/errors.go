// Package errors provides sentinel errors for the coursebuild CLI.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a module or course failed structural validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a module, file, or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrEnvironment indicates a required external tool or backend is unavailable.
	ErrEnvironment = errors.New("environment error")

	// ErrCompilation indicates the document compiler ran but did not produce output.
	ErrCompilation = errors.New("compilation error")
)

// DetailError is a user-facing error with the file it concerns, extra
// context and a hint on how to fix it.
type DetailError struct {
	Type     string
	Message  string
	Location string
	Context  map[string]string
	Hint     string
	Cause    error
}

// Error renders the error as a short multi-line report. Context keys are
// printed in sorted order.
func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s: %s\n", e.Type, e.Message)
	if e.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", e.Location)
	}
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		fmt.Fprintf(&b, "  %s: %s\n", k, e.Context[k])
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "Hint: %s\n", e.Hint)
	}
	return b.String()
}

// Unwrap returns the sentinel the error was built from.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports a module or course that failed validation.
func NewValidationError(message, location, hint string) error {
	return &DetailError{Type: "validation failed", Message: message, Location: location, Hint: hint, Cause: ErrValidation}
}

// NewNotFoundError reports a missing module, file or directory.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{Type: "not found", Message: message, Location: location, Hint: hint, Cause: ErrNotFound}
}

// NewEnvironmentError reports a missing tool or backend.
func NewEnvironmentError(message string, context map[string]string, hint string) error {
	return &DetailError{Type: "environment not ready", Message: message, Context: context, Hint: hint, Cause: ErrEnvironment}
}

// Wrap prefixes sentinel with message, keeping it matchable with errors.Is.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
