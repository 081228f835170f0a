package errors

import "errors"

// Exit codes returned by the coursebuild binary. Every reported failure
// exits 1; the sentinel kinds only shape the message.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error

	// Printed is set when the command already reported the error to the user.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError maps err to an exit code: an ExitError keeps its own
// code and any other error is a general failure.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}
