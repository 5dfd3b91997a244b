package model

import "fmt"

// ExitCode defines the CLI exit codes. These codes let scripts and CI
// systems programmatically determine the outcome of a run.
type ExitCode int

const (
	// ExitSuccess indicates the run completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitOriginAccess indicates the origin root could not be listed.
	// No destination mutation has happened when this code is returned.
	ExitOriginAccess ExitCode = 2

	// ExitWriteFailed indicates one or more destination writes failed
	// (permissions, disk full). Sibling writes in the same batch still
	// ran to completion; the destination may be partially populated.
	ExitWriteFailed ExitCode = 3

	// ExitLockHeld indicates another rsorg run holds the destination
	// lock.
	ExitLockHeld ExitCode = 4

	// ExitConfigInvalid indicates the configuration file could not be
	// read or failed validation.
	ExitConfigInvalid ExitCode = 5
)

// CLIError is an error that carries an exit code. The cli layer
// translates it into the process exit status; all other errors default
// to ExitGeneralError.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
