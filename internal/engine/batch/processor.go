package batch

import (
	"fmt"
)

// MinBatchSize is the minimum allowed batch size. There is no upper limit.
const MinBatchSize = 1

// BatchCallback receives one full batch of items.
//
//nolint:revive // BatchCallback is the canonical name for this exported type.
type BatchCallback[T any] func(batch []T) error

// Processor cuts item sequences into fixed-size batches.
type Processor[T any] struct {
	// batchSize is the number of items per batch.
	batchSize int
}

// NewProcessor creates a new processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}

	return &Processor[T]{
		batchSize: batchSize,
	}, nil
}

// Drain hands every full batch to callback, front to back, and returns the
// items that did not fill a batch. Batches are sub-slices of items and keep
// their order. Processing stops on the first callback error.
func (p *Processor[T]) Drain(items []T, callback BatchCallback[T]) ([]T, error) {
	if callback == nil {
		return nil, ErrNilCallback
	}

	for batchIndex := range p.FullBatches(len(items)) {
		start := batchIndex * p.batchSize
		if err := callback(items[start : start+p.batchSize]); err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", batchIndex, err)
		}
	}

	return items[p.FullBatches(len(items))*p.batchSize:], nil
}

// FullBatches returns how many full batches totalItems fill.
func (p *Processor[T]) FullBatches(totalItems int) int {
	return totalItems / p.batchSize
}
