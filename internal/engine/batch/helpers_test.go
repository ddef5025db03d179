package batch

import (
	"strconv"

	"github.com/apflab/batchplan/internal/sample"
)

// taxon is a (family, genus, count) triple used to build fixture datasets.
type taxon struct {
	family string
	genus  string
	count  int
}

// fixtureDataset builds a dataset whose registry codes are APF0000, APF0001, ...
// in row order, laying the taxa out one block after the other.
func fixtureDataset(taxa ...taxon) *sample.Dataset {
	columns := []string{"Registro da amostra APF", "Família", "Gênero"}
	var rows [][]string
	for _, tx := range taxa {
		for range tx.count {
			rows = append(rows, []string{"APF" + pad(len(rows)), tx.family, tx.genus})
		}
	}
	ds, err := sample.NewDataset(columns, rows)
	if err != nil {
		panic(err)
	}
	return ds
}

func pad(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func rowsOf(ds *sample.Dataset) []int {
	out := make([]int, len(ds.Records))
	for i, r := range ds.Records {
		out[i] = r.Row
	}
	return out
}

func batchRows(b Batch) []int {
	var out []int
	for _, r := range b.Samples() {
		out = append(out, r.Row)
	}
	return out
}
