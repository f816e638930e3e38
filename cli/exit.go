package cli

// This file contains the mapping from command errors to process exit codes.

import (
	"errors"

	"github.com/urfave/cli/v2"
)

// ExitCode is the process exit status of a command.
type ExitCode int

const (
	ExitOK ExitCode = 0
	// Missing or invalid input, configuration or output
	ExitFatal ExitCode = 1
	// A compliance matrix references tests that never ran
	ExitIncomplete ExitCode = 2
	// The external renderer failed
	ExitRender ExitCode = 3
)

// exitError attaches an exit code to an error. It implements cli.ExitCoder.
type exitError struct {
	code ExitCode
	err  error
}

func exitWith(code ExitCode, err error) error {
	return &exitError{code: code, err: err}
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return int(e.code)
}

// ExitCodeOf returns the exit code the process should end with after err.
func ExitCodeOf(err error) int {
	if err == nil {
		return int(ExitOK)
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return int(ExitFatal)
}
