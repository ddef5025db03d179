package batch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflab/batchplan/internal/engine/batch"
)

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*batch.Layout)
		wantErr error
	}{
		{name: "default", mutate: func(*batch.Layout) {}},
		{
			name:    "sum mismatch",
			mutate:  func(l *batch.Layout) { l.SegmentSizes = []int{24, 24, 30} },
			wantErr: batch.ErrStructureMismatch,
		},
		{
			name:    "length mismatch",
			mutate:  func(l *batch.Layout) { l.QCCounts = []int{3, 3} },
			wantErr: batch.ErrLengthMismatch,
		},
		{
			name:    "no labels",
			mutate:  func(l *batch.Layout) { l.QCLabels = nil },
			wantErr: batch.ErrNoQCLabels,
		},
		{
			name:    "negative qc count",
			mutate:  func(l *batch.Layout) { l.QCCounts = []int{3, -1, 2} },
			wantErr: batch.ErrNegativeCount,
		},
		{
			name:    "zero batch size",
			mutate:  func(l *batch.Layout) { l.SamplesPerBatch = 0; l.SegmentSizes = []int{0, 0, 0} },
			wantErr: batch.ErrInvalidBatchSize,
		},
		{
			name: "large batch size",
			mutate: func(l *batch.Layout) {
				l.SamplesPerBatch = 1200
				l.SegmentSizes = []int{600, 600}
				l.QCCounts = []int{3, 3}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := batch.DefaultLayout()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, batch.IsConfigError(err))
		})
	}
}

func TestStructureError(t *testing.T) {
	l := batch.DefaultLayout()
	l.SamplesPerBatch = 90

	err := l.Validate()
	var se *batch.StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 80, se.Sum)
	assert.Equal(t, 90, se.Target)
	assert.Contains(t, err.Error(), "sum(segment_sizes)=80")
	assert.Contains(t, err.Error(), "samples_per_batch=90")
}

func TestLayout_QCRows(t *testing.T) {
	assert.Equal(t, (3+3+2)*3+3, batch.DefaultLayout().QCRows())
}
