package batch

import (
	"sync"
	"time"
)

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// ProgressCallback is invoked after every batch the allocator emits.
type ProgressCallback func(progress *Progress)

// Progress tracks how many samples an allocation has placed.
type Progress struct {
	// TotalItems is the number of samples in the dataset.
	TotalItems int

	// ProcessedItems is the number of samples placed into batches so far.
	ProcessedItems int

	// ProcessedBatches is the number of batches emitted so far.
	ProcessedBatches int

	// Tier is the grouping tier that emitted the last batch.
	Tier string

	// StartTime is when allocation started.
	StartTime time.Time

	// LastUpdateTime is when progress was last updated.
	LastUpdateTime time.Time

	// mu protects access from callbacks that hand the tracker to other goroutines.
	mu sync.RWMutex
}

// NewProgress creates a new progress tracker.
func NewProgress(totalItems int) *Progress {
	now := time.Now()
	return &Progress{
		TotalItems:     totalItems,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// AddBatch records one emitted batch of size samples produced by tier.
func (p *Progress) AddBatch(tier string, size int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProcessedItems += size
	p.ProcessedBatches++
	p.Tier = tier
	p.LastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.percentCompleteUnsafe()
}

// IsComplete returns true if all samples have been placed.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ProcessedItems >= p.TotalItems
}

// ElapsedTime returns the time elapsed since allocation started.
func (p *Progress) ElapsedTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return time.Since(p.StartTime)
}

// Snapshot returns a copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		TotalItems:       p.TotalItems,
		ProcessedItems:   p.ProcessedItems,
		ProcessedBatches: p.ProcessedBatches,
		Tier:             p.Tier,
		PercentComplete:  p.percentCompleteUnsafe(),
		ElapsedTime:      time.Since(p.StartTime),
	}
}

// ProgressSnapshot is an immutable snapshot of progress state.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	ProcessedBatches int
	Tier             string
	PercentComplete  float64
	ElapsedTime      time.Duration
}

// percentCompleteUnsafe must be called with the lock held.
func (p *Progress) percentCompleteUnsafe() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return (float64(p.ProcessedItems) / float64(p.TotalItems)) * percentMultiplier
}
