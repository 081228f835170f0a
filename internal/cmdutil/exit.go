package cmdutil

import (
	"errors"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	oerrors "github.com/lbcm/coursebuild/internal/errors"
)

// Exit wraps err in an ExitError carrying the general failure code.
// A nil error stays nil; an existing ExitError is returned unchanged.
func Exit(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *cmdtypes.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &cmdtypes.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}

// Reported prints msg with err and returns an ExitError marked as printed
// so main does not print it again.
func Reported(msg string, err error) error {
	PrintError(msg, err)
	return &cmdtypes.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}
