package batch

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrInvalidBatchSize  = errors.New("samples per batch must be at least 1")
	ErrStructureMismatch = errors.New("segment sizes do not add up to samples per batch")
	ErrLengthMismatch    = errors.New("segment sizes and qc counts differ in length")
	ErrNegativeCount     = errors.New("segment sizes and qc counts cannot be negative")
	ErrNoQCLabels        = errors.New("at least one qc label is required")
	ErrNilCallback       = errors.New("batch callback cannot be nil")
)

// ErrIncompleteAllocation means the cascade finished with samples left unplaced.
var ErrIncompleteAllocation = errors.New("allocation left samples unplaced")

// ErrUnknownKind is returned by Summarize when a row is neither QC nor Amostra.
var ErrUnknownKind = errors.New("row has no Tipo")

// StructureError reports a batch structure whose segments do not sum to the
// batch size. It matches ErrStructureMismatch with errors.Is.
type StructureError struct {
	Sum    int
	Target int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: sum(segment_sizes)=%d, samples_per_batch=%d",
		ErrStructureMismatch.Error(), e.Sum, e.Target)
}

// Unwrap exposes ErrStructureMismatch.
func (e *StructureError) Unwrap() error { return ErrStructureMismatch }

// IsConfigError reports whether err comes from an invalid Layout.
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrInvalidBatchSize, ErrStructureMismatch, ErrLengthMismatch, ErrNegativeCount, ErrNoQCLabels,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
