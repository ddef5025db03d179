package batch

import (
	"fmt"
	"sort"

	"github.com/apflab/batchplan/internal/sample"
)

// SummaryRow counts the samples of one Family/Genus pair within one batch.
type SummaryRow struct {
	Family string
	Genus  string
	Count  int
	Batch  string
}

// Summarize counts sample rows per (Family, Genus) in each batch. Rows follow
// batch order; within a batch, pairs are sorted by Family then Genus. A batch
// whose header lacks either grouping column, or a row without a kind, is an error.
func Summarize(batches []Batch, familyColumn, genusColumn string) ([]SummaryRow, error) {
	summary := []SummaryRow{}
	for _, b := range batches {
		familyCol, err := sample.IndexOf(b.Columns, familyColumn)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", b.ID, err)
		}
		genusCol, err := sample.IndexOf(b.Columns, genusColumn)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", b.ID, err)
		}

		counts := make(map[groupKey]int)
		var keys []groupKey
		for i, r := range b.Rows {
			switch r.Kind {
			case KindQC:
				continue
			case KindSample:
			default:
				return nil, fmt.Errorf("%w: %s row %d", ErrUnknownKind, b.ID, i+1)
			}

			k := groupKey{family: r.Record.Value(familyCol), genus: r.Record.Value(genusCol)}
			if _, seen := counts[k]; !seen {
				keys = append(keys, k)
			}
			counts[k]++
		}

		sort.Slice(keys, func(i, j int) bool {
			if keys[i].family != keys[j].family {
				return keys[i].family < keys[j].family
			}
			return keys[i].genus < keys[j].genus
		})

		for _, k := range keys {
			summary = append(summary, SummaryRow{
				Family: k.family,
				Genus:  k.genus,
				Count:  counts[k],
				Batch:  b.ID,
			})
		}
	}
	return summary, nil
}
