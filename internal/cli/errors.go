package cli

import (
	"errors"

	"github.com/nazmul-nhb/nhb-express/internal/cli/wizard"
	"github.com/nazmul-nhb/nhb-express/internal/core/project"
	"github.com/nazmul-nhb/nhb-express/internal/process"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// ErrProjectNameRequired is returned when a non-interactive run has no name.
var ErrProjectNameRequired = errors.New("project name is required in non-interactive mode")

// ExitError carries the exit code for an error. Printed is set when the
// command already showed the error to the user.
type ExitError struct {
	Err     error
	Code    int
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError maps an error returned by a command to a process exit code.
// A user cancellation is a clean exit. A failed package manager or schema
// tool passes its own exit code through.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, wizard.ErrCancelled) || errors.Is(err, project.ErrOverwriteDeclined) {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != ExitSuccess {
		return exitErr.Code
	}

	var procErr *process.ExitError
	if errors.As(err, &procErr) && procErr.Code > 0 {
		return procErr.Code
	}
	return ExitGeneralError
}
