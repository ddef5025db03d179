package batch

import "github.com/apflab/batchplan/internal/sample"

// Kind is the value of the Tipo column.
type Kind string

// Row kinds.
const (
	KindQC     Kind = "QC"
	KindSample Kind = "Amostra"
)

// Row is one line of a batch: either a QC placeholder carrying Label, or a
// sample carrying the source Record.
type Row struct {
	Kind   Kind
	Label  string
	Record sample.Record
}

// IsSample reports whether the row holds a real sample.
func (r Row) IsSample() bool { return r.Kind == KindSample }

// Compose lays out one batch. For each (size, cycles) pair it emits cycles full
// passes over qcLabels, then the next size samples. Running out of samples
// shortens the segment but never the QC blocks, so an empty samples slice
// still produces every QC row. One trailing QC cycle closes the batch.
//
// segmentSizes and qcCounts are consumed pairwise; callers validate them
// through Layout.Validate.
func Compose(samples []sample.Record, segmentSizes, qcCounts []int, qcLabels []string) []Row {
	segments := min(len(segmentSizes), len(qcCounts))

	rows := make([]Row, 0, len(samples)+qcRows(qcCounts[:segments], qcLabels))
	cursor := 0
	for i := range segments {
		rows = appendQC(rows, qcLabels, qcCounts[i])

		end := min(cursor+segmentSizes[i], len(samples))
		for _, rec := range samples[cursor:end] {
			rows = append(rows, Row{Kind: KindSample, Record: rec})
		}
		cursor = end
	}

	return appendQC(rows, qcLabels, 1)
}

// Compose lays out samples with the layout's structure.
func (l Layout) Compose(samples []sample.Record) []Row {
	return Compose(samples, l.SegmentSizes, l.QCCounts, l.QCLabels)
}

func appendQC(rows []Row, labels []string, cycles int) []Row {
	for range cycles {
		for _, label := range labels {
			rows = append(rows, Row{Kind: KindQC, Label: label})
		}
	}
	return rows
}

func qcRows(qcCounts []int, labels []string) int {
	cycles := 1
	for _, n := range qcCounts {
		cycles += max(n, 0)
	}
	return cycles * len(labels)
}
