package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/ingest"
	"github.com/apflab/batchplan/internal/sample"
)

// ReadBatch loads a batch table written by WriteBatches. The Tipo column is
// required; the batch id comes from the Batch column, or the file name when
// that column is absent or empty.
func ReadBatch(ctx context.Context, path, registryColumn string, delimiter rune) (batch.Batch, error) {
	ds, err := ingest.LoadWithContext(ctx, path, ingest.Options{Delimiter: delimiter})
	if err != nil {
		return batch.Batch{}, err
	}

	kindCol, err := ds.ColumnIndex(ColumnKind)
	if err != nil {
		return batch.Batch{}, fmt.Errorf("%s: %w", path, err)
	}
	batchCol, _ := ds.ColumnIndex(ColumnBatch)

	keep := make([]int, 0, len(ds.Columns))
	for i := range ds.Columns {
		if i != kindCol && i != batchCol {
			keep = append(keep, i)
		}
	}
	columns := pick(ds.Columns, keep)
	labelCol, err := sample.IndexOf(columns, registryColumn)
	if err != nil {
		labelCol, _ = sample.IndexOf(columns, ColumnSampleID)
	}

	b := batch.Batch{
		ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Columns: columns,
		Rows:    make([]batch.Row, 0, ds.Len()),
	}
	for _, r := range ds.Records {
		if id := r.Value(batchCol); id != "" {
			b.ID = id
		}
		values := pick(r.Values, keep)
		row := batch.Row{Kind: batch.Kind(r.Value(kindCol))}
		switch {
		case row.Kind != batch.KindQC:
			row.Record = sample.Record{Row: r.Row, Values: values}
		case labelCol >= 0:
			row.Label = strings.TrimSpace(values[labelCol])
		}
		b.Rows = append(b.Rows, row)
	}
	return b, nil
}

// ReadBatchDir loads every batch_<n>.csv in dir, ordered by n.
func ReadBatchDir(ctx context.Context, dir, registryColumn string, delimiter rune) ([]batch.Batch, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	ordered, err := batchFiles(dir)
	if err != nil {
		return nil, err
	}

	batches := make([]batch.Batch, 0, len(ordered))
	for _, p := range ordered {
		b, readErr := ReadBatch(ctx, p, registryColumn, delimiter)
		if readErr != nil {
			return nil, readErr
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// batchFiles lists the batch_<n>.csv files of dir ordered by n.
func batchFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, batch.IDPrefix+"*"+batchFileSuffix))
	if err != nil {
		return nil, err
	}

	numbered := make(map[string]int, len(paths))
	var ordered []string
	for _, p := range paths {
		n, ok := batch.ParseID(strings.TrimSuffix(filepath.Base(p), batchFileSuffix))
		if !ok {
			continue
		}
		numbered[p] = n
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return numbered[ordered[i]] < numbered[ordered[j]] })
	return ordered, nil
}

func pick(values []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		if j < len(values) {
			out[i] = values[j]
		}
	}
	return out
}
