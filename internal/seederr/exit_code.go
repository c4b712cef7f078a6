package seederr

import (
	"errors"
)

const (
	ExitCodeFatal = 1
	ExitCodeUsage = 2
)

// ExitCodeError wraps err so that the process exits with exitCode
// when err reaches main.
func ExitCodeError(err error, exitCode int) error {
	if err == nil {
		return nil
	}

	if exitCode <= 0 || 125 < exitCode {
		exitCode = ExitCodeFatal
	}

	return &exitCodeError{
		err:      err,
		exitCode: exitCode,
	}
}

// Fatal marks err as one that must abort the run.
func Fatal(err error) error {
	return ExitCodeError(err, ExitCodeFatal)
}

// Usage marks err as a mistake in how the command was invoked.
func Usage(err error) error {
	return ExitCodeError(err, ExitCodeUsage)
}

type exitCodeError struct {
	err      error
	exitCode int
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

func (e *exitCodeError) ExitCode() int {
	return e.exitCode
}

// ExitCode returns the exit code for err: 0 for nil, the wrapped code
// for errors from ExitCodeError and ExitCodeFatal otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	ecerr := &exitCodeError{}
	if errors.As(err, &ecerr) {
		return ecerr.exitCode
	}

	return ExitCodeFatal
}
