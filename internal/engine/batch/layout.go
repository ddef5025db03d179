package batch

import "fmt"

// Default batch structure.
const (
	// DefaultSamplesPerBatch is the number of real samples in a full batch.
	DefaultSamplesPerBatch = 80
)

// DefaultSegmentSizes returns the default sample counts per segment.
func DefaultSegmentSizes() []int { return []int{24, 24, 32} }

// DefaultQCCounts returns the default number of QC cycles before each segment.
func DefaultQCCounts() []int { return []int{3, 3, 2} }

// DefaultQCLabels returns the default QC control names, in emission order.
func DefaultQCLabels() []string { return []string{"Blank", "QC_Inter_Batch", "QC_Intra_Batch"} }

// Layout is the structure shared by every batch of a run.
type Layout struct {
	// SamplesPerBatch is the number of real samples in a full batch.
	SamplesPerBatch int

	// SegmentSizes is the number of samples in each segment, in order.
	SegmentSizes []int

	// QCCounts is the number of full QC label cycles emitted before each segment.
	QCCounts []int

	// QCLabels are the QC control names; one cycle emits each label once.
	QCLabels []string
}

// DefaultLayout returns the 80-sample, three-segment layout.
func DefaultLayout() Layout {
	return Layout{
		SamplesPerBatch: DefaultSamplesPerBatch,
		SegmentSizes:    DefaultSegmentSizes(),
		QCCounts:        DefaultQCCounts(),
		QCLabels:        DefaultQCLabels(),
	}
}

// Validate checks the layout before any allocation happens.
func (l Layout) Validate() error {
	if l.SamplesPerBatch < MinBatchSize {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, l.SamplesPerBatch)
	}
	if len(l.SegmentSizes) != len(l.QCCounts) {
		return fmt.Errorf("%w: %d segments, %d qc counts", ErrLengthMismatch, len(l.SegmentSizes), len(l.QCCounts))
	}
	if len(l.QCLabels) == 0 {
		return ErrNoQCLabels
	}

	sum := 0
	for i, size := range l.SegmentSizes {
		if size < 0 || l.QCCounts[i] < 0 {
			return fmt.Errorf("%w: segment %d", ErrNegativeCount, i+1)
		}
		sum += size
	}
	if sum != l.SamplesPerBatch {
		return &StructureError{Sum: sum, Target: l.SamplesPerBatch}
	}
	return nil
}

// QCRows is the number of QC rows every batch carries, whatever its sample count.
func (l Layout) QCRows() int {
	cycles := 1
	for _, n := range l.QCCounts {
		cycles += n
	}
	return cycles * len(l.QCLabels)
}
