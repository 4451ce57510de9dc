// Package process runs external commands and relays their output to the
// terminal while they execute.
package process

import "fmt"

// ExitError reports a child process that ran and exited non-zero.
type ExitError struct {
	Command string // command line as typed, e.g. "pnpm add express"
	Code    int
	Err     error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%q exited with code %d", e.Command, e.Code)
}

// Unwrap returns the underlying *exec.ExitError.
func (e *ExitError) Unwrap() error {
	return e.Err
}
