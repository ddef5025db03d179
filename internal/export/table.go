package export

import (
	"strconv"

	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/sample"
)

// Column names added to batch and summary tables.
const (
	ColumnKind     = "Tipo"
	ColumnBatch    = "Batch"
	ColumnSampleID = "sampleid"
)

// SummaryHeader is the header of the composition summary table.
func SummaryHeader() []string {
	return []string{"Family", "Genus", "Count", ColumnBatch}
}

// BatchTable flattens a batch into a header and rows. QC rows carry their
// label in the registry column; when the dataset has no registry column a
// leading sampleid column is added for it.
func BatchTable(b batch.Batch, registryColumn string) ([]string, [][]string) {
	regCol, err := sample.IndexOf(b.Columns, registryColumn)
	prefix := 0
	if err != nil {
		prefix = 1
		regCol = 0
	}

	width := prefix + len(b.Columns) + 2
	header := make([]string, 0, width)
	if prefix == 1 {
		header = append(header, ColumnSampleID)
	}
	header = append(header, b.Columns...)
	header = append(header, ColumnKind, ColumnBatch)

	rows := make([][]string, 0, len(b.Rows))
	for _, r := range b.Rows {
		row := make([]string, width)
		if r.IsSample() {
			copy(row[prefix:], r.Record.Values)
		} else {
			row[regCol] = r.Label
		}
		row[width-2] = string(r.Kind)
		row[width-1] = b.ID
		rows = append(rows, row)
	}
	return header, rows
}

// SummaryTable flattens summary rows in the order given.
func SummaryTable(summary []batch.SummaryRow) [][]string {
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{s.Family, s.Genus, strconv.Itoa(s.Count), s.Batch})
	}
	return rows
}

// DatasetTable flattens a dataset.
func DatasetTable(ds *sample.Dataset) [][]string {
	rows := make([][]string, 0, ds.Len())
	for _, r := range ds.Records {
		rows = append(rows, r.Values)
	}
	return rows
}
