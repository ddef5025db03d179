package sample

import (
	"fmt"
	"strings"
)

// Record is one row of the registry. Row is the zero-based position of the
// record in the source table and Values is aligned with Dataset.Columns.
type Record struct {
	Row    int
	Values []string
}

// Value returns the trimmed cell at column index i. Out-of-range indexes yield
// the empty string, which is how an absent cell (null) is represented.
func (r Record) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return strings.TrimSpace(r.Values[i])
}

// Dataset is an ordered table of records sharing one header.
type Dataset struct {
	Columns []string
	Records []Record

	index map[string]int
}

// NewDataset builds a Dataset from a header and raw rows. Short rows are padded
// with empty cells; trailing empty cells beyond the header are dropped.
func NewDataset(columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrEmptyHeader
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		values, err := fitRow(row, len(columns))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, Record{Row: i, Values: values})
	}

	return newDataset(columns, records), nil
}

func newDataset(columns []string, records []Record) *Dataset {
	ds := &Dataset{
		Columns: columns,
		Records: records,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		key := NormalizeName(c)
		if _, dup := ds.index[key]; !dup {
			ds.index[key] = i
		}
	}
	return ds
}

func fitRow(row []string, width int) ([]string, error) {
	values := make([]string, width)
	for i, v := range row {
		if i < width {
			values[i] = v
			continue
		}
		if strings.TrimSpace(v) != "" {
			return nil, fmt.Errorf("%w: %d cells, %d columns", ErrRaggedRow, len(row), width)
		}
	}
	return values, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// ColumnIndex resolves a column by name, ignoring accents and case.
func (d *Dataset) ColumnIndex(name string) (int, error) {
	if d == nil {
		return IndexOf(nil, name)
	}
	if d.index == nil {
		return IndexOf(d.Columns, name)
	}
	if i, ok := d.index[NormalizeName(name)]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

// IndexOf resolves name against a bare header the same way Dataset.ColumnIndex does.
func IndexOf(columns []string, name string) (int, error) {
	key := NormalizeName(name)
	for i, c := range columns {
		if NormalizeName(c) == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

// HasColumn reports whether name resolves to a column.
func (d *Dataset) HasColumn(name string) bool {
	_, err := d.ColumnIndex(name)
	return err == nil
}

// Subset returns a Dataset over the same header holding only the given records.
func (d *Dataset) Subset(records []Record) *Dataset {
	return newDataset(d.Columns, records)
}
