package cli

import (
	"errors"
	"fmt"

	"github.com/apflab/batchplan/internal/config"
	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/ingest"
	"github.com/apflab/batchplan/internal/sample"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitConfig    = 2
	ExitDataShape = 3
)

// ExitError carries the exit code a command wants the process to end with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying error.
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to a process exit code: configuration errors exit 2,
// data-shape errors exit 3, everything else exits 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}

	switch {
	case isConfigError(err):
		return ExitConfig
	case isDataShapeError(err):
		return ExitDataShape
	default:
		return ExitFailure
	}
}

func isConfigError(err error) bool {
	if batch.IsConfigError(err) {
		return true
	}
	for _, target := range []error{
		config.ErrUnsupportedVersion,
		config.ErrEmptyColumn,
		config.ErrInvalidDelimiter,
		config.ErrInvalidLogFormat,
		config.ErrInvalidWorkers,
		config.ErrEmptyOutputDir,
		config.ErrInvalidEnv,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isDataShapeError(err error) bool {
	for _, target := range []error{
		sample.ErrMissingColumn,
		sample.ErrEmptyHeader,
		sample.ErrRaggedRow,
		ingest.ErrNoHeader,
		batch.ErrUnknownKind,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
