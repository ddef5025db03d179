package sample

// FindByRegistry returns the records whose registry column equals code.
func (d *Dataset) FindByRegistry(registryColumn, code string) (*Dataset, error) {
	col, err := d.ColumnIndex(registryColumn)
	if err != nil {
		return nil, err
	}

	var matches []Record
	for _, r := range d.Records {
		if r.Value(col) == code {
			matches = append(matches, r)
		}
	}
	return d.Subset(matches), nil
}

// RegistryCodes lists the distinct non-empty registry codes in order of first appearance.
func (d *Dataset) RegistryCodes(registryColumn string) ([]string, error) {
	col, err := d.ColumnIndex(registryColumn)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var codes []string
	for _, r := range d.Records {
		code := r.Value(col)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes, nil
}

// WithRegistryFirst drops records without a registry code and moves the
// registry column to the front of the header. Record.Row is preserved.
func (d *Dataset) WithRegistryFirst(registryColumn string) (*Dataset, error) {
	col, err := d.ColumnIndex(registryColumn)
	if err != nil {
		return nil, err
	}

	order := make([]int, 0, len(d.Columns))
	order = append(order, col)
	for i := range d.Columns {
		if i != col {
			order = append(order, i)
		}
	}

	columns := make([]string, len(order))
	for i, src := range order {
		columns[i] = d.Columns[src]
	}

	records := make([]Record, 0, len(d.Records))
	for _, r := range d.Records {
		if r.Value(col) == "" {
			continue
		}
		values := make([]string, len(order))
		for i, src := range order {
			values[i] = r.Values[src]
		}
		records = append(records, Record{Row: r.Row, Values: values})
	}

	return newDataset(columns, records), nil
}
