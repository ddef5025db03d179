package batch

import (
	"strconv"
	"strings"

	"github.com/apflab/batchplan/internal/sample"
)

// IDPrefix prefixes the sequence number of every batch id.
const IDPrefix = "batch_"

// ID formats the id of the n-th batch (1-based).
func ID(n int) string {
	return IDPrefix + strconv.Itoa(n)
}

// ParseID returns the sequence number of a batch id.
func ParseID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, IDPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Batch is one finished instrument run. Columns is the header of the dataset
// the sample records came from.
type Batch struct {
	ID      string
	Columns []string
	Rows    []Row
}

// SampleCount returns the number of real sample rows.
func (b Batch) SampleCount() int {
	n := 0
	for _, r := range b.Rows {
		if r.IsSample() {
			n++
		}
	}
	return n
}

// Samples returns the sample records in batch order.
func (b Batch) Samples() []sample.Record {
	records := make([]sample.Record, 0, len(b.Rows))
	for _, r := range b.Rows {
		if r.IsSample() {
			records = append(records, r.Record)
		}
	}
	return records
}
