package sample

import "sort"

// Count is one bucket of a distribution.
type Count struct {
	Key   string
	Count int
}

// Distribution counts records per value of column, largest first. Ties keep
// first-appearance order. Empty cells are counted under the empty key.
func (d *Dataset) Distribution(column string) ([]Count, error) {
	col, err := d.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	pos := make(map[string]int)
	var counts []Count
	for _, r := range d.Records {
		key := r.Value(col)
		i, ok := pos[key]
		if !ok {
			i = len(counts)
			pos[key] = i
			counts = append(counts, Count{Key: key})
		}
		counts[i].Count++
	}

	sortCounts(counts)
	return counts, nil
}

// DistinctPerGroup counts distinct non-empty values of valueColumn per value of
// groupColumn, largest first. Records with an empty value are skipped, so a
// group made only of such records does not appear.
func (d *Dataset) DistinctPerGroup(groupColumn, valueColumn string) ([]Count, error) {
	gcol, err := d.ColumnIndex(groupColumn)
	if err != nil {
		return nil, err
	}
	vcol, err := d.ColumnIndex(valueColumn)
	if err != nil {
		return nil, err
	}

	pos := make(map[string]int)
	seen := make(map[[2]string]bool)
	var counts []Count
	for _, r := range d.Records {
		value := r.Value(vcol)
		if value == "" {
			continue
		}
		key := r.Value(gcol)
		i, ok := pos[key]
		if !ok {
			i = len(counts)
			pos[key] = i
			counts = append(counts, Count{Key: key})
		}
		pair := [2]string{key, value}
		if !seen[pair] {
			seen[pair] = true
			counts[i].Count++
		}
	}

	sortCounts(counts)
	return counts, nil
}

func sortCounts(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}
