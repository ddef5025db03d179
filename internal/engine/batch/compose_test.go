package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	layout := DefaultLayout()
	qcLen := len(layout.QCLabels)

	t.Run("full batch", func(t *testing.T) {
		ds := fixtureDataset(taxon{"Fabaceae", "Inga", 80})
		rows := layout.Compose(ds.Records)

		require.Len(t, rows, (3+3+2)*qcLen+80+qcLen)

		// 9 QC, 24 samples, 9 QC, 24 samples, 6 QC, 32 samples, 3 QC.
		blocks := []struct {
			kind Kind
			n    int
		}{
			{KindQC, 9}, {KindSample, 24}, {KindQC, 9}, {KindSample, 24},
			{KindQC, 6}, {KindSample, 32}, {KindQC, 3},
		}
		pos := 0
		for _, b := range blocks {
			for i := range b.n {
				assert.Equal(t, b.kind, rows[pos+i].Kind, "row %d", pos+i)
			}
			pos += b.n
		}

		assert.Equal(t, "Blank", rows[0].Label)
		assert.Equal(t, "QC_Inter_Batch", rows[1].Label)
		assert.Equal(t, "QC_Intra_Batch", rows[2].Label)
		assert.Equal(t, "Blank", rows[3].Label)
		assert.Equal(t, "QC_Intra_Batch", rows[len(rows)-1].Label)
	})

	t.Run("samples keep order", func(t *testing.T) {
		ds := fixtureDataset(taxon{"Fabaceae", "Inga", 80})
		b := Batch{Rows: layout.Compose(ds.Records)}
		assert.Equal(t, rowsOf(ds), batchRows(b))
	})

	t.Run("partial batch keeps every qc block", func(t *testing.T) {
		ds := fixtureDataset(taxon{"Fabaceae", "Inga", 30})
		rows := layout.Compose(ds.Records)

		require.Len(t, rows, layout.QCRows()+30)
		// First segment full, second gets 6, third is empty.
		assert.Equal(t, KindSample, rows[9+24+9+5].Kind)
		assert.Equal(t, KindQC, rows[9+24+9+6].Kind)
		assert.Equal(t, 30, Batch{Rows: rows}.SampleCount())
	})

	t.Run("empty input is all qc", func(t *testing.T) {
		rows := Compose(nil, layout.SegmentSizes, layout.QCCounts, layout.QCLabels)
		require.Len(t, rows, (3+3+2)*qcLen+qcLen)
		for _, r := range rows {
			assert.Equal(t, KindQC, r.Kind)
		}
	})

	t.Run("zero qc cycles", func(t *testing.T) {
		ds := fixtureDataset(taxon{"Fabaceae", "Inga", 4})
		rows := Compose(ds.Records, []int{2, 2}, []int{0, 1}, []string{"Blank"})
		kinds := make([]Kind, len(rows))
		for i, r := range rows {
			kinds[i] = r.Kind
		}
		assert.Equal(t, []Kind{KindSample, KindSample, KindQC, KindSample, KindSample, KindQC}, kinds)
	})
}

func TestParseID(t *testing.T) {
	n, ok := ParseID(ID(12))
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"batch_", "batch_0", "batch_x", "lote_1"} {
		_, ok = ParseID(bad)
		assert.False(t, ok, bad)
	}
}
