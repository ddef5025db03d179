package ingest

import (
	"fmt"
	"sort"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
)

// readSpreadsheet returns every row of sheet together with the name of the
// sheet actually read. An empty or absent sheet name selects the first sheet.
func readSpreadsheet(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening spreadsheet: %w", err)
	}

	name, err := resolveSheet(f.GetSheetMap(), sheet)
	if err != nil {
		return nil, "", err
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, name, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	return rows, name, nil
}

// resolveSheet picks want from the workbook's sheets. When want is empty or
// absent the sheet with the lowest index is used.
func resolveSheet(sheets map[int]string, want string) (string, error) {
	if len(sheets) == 0 {
		return "", ErrNoSheets
	}

	indexes := make([]int, 0, len(sheets))
	for i := range sheets {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		if sheets[i] == want {
			return want, nil
		}
	}
	return sheets[indexes[0]], nil
}
