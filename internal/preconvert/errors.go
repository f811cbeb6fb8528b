// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preconvert

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// Process exit statuses for failures that do not come from the converter.
const (
	ExitFailure       = 1
	ExitUsage         = 2
	ExitNotExecutable = 126
	ExitNotFound      = 127
)

// UsageError reports malformed command-line arguments. It is raised before
// any process is spawned.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// SpawnError reports that the converter could not be located or started.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting converter: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ConversionError reports that the converter ran and exited unsuccessfully.
type ConversionError struct {
	// Code is the converter's exit status, or -1 if it was killed by a signal.
	Code int
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("converter terminated abnormally: %v", e.Err)
	}
	return fmt.Sprintf("converter exited with status %d", e.Code)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// classify sorts a runner error into ConversionError or SpawnError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ConversionError{Code: exitErr.ExitCode(), Err: err}
	}
	return &SpawnError{Err: err}
}

// ExitCode maps an error returned by the CLI to the process exit status.
// A converter failure mirrors the converter's own status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}

	var convErr *ConversionError
	if errors.As(err, &convErr) {
		if convErr.Code <= 0 {
			return ExitFailure
		}
		return convErr.Code
	}

	var spawnErr *SpawnError
	if errors.As(err, &spawnErr) {
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return ExitNotFound
		case errors.Is(err, fs.ErrPermission):
			return ExitNotExecutable
		}
	}

	return ExitFailure
}
