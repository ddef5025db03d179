// Package ingest loads the extract registry into a sample.Dataset.
//
// Spreadsheets (.xlsx, .xlsm) are read with excelize; delimited text (.csv,
// .tsv, .txt) with encoding/csv. The first non-blank row is the header. Fully
// blank rows are skipped. Cells are kept verbatim; trimming happens on lookup.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apflab/batchplan/internal/logging"
	"github.com/apflab/batchplan/internal/sample"
)

// Loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrNoSheets          = errors.New("workbook has no sheets")
	ErrNoHeader          = errors.New("input has no header row")
)

// Options controls how an input file is read.
type Options struct {
	// Sheet is the worksheet of spreadsheet inputs. Empty or absent means the
	// first one.
	Sheet string
	// Delimiter separates fields of .csv and .txt inputs; .tsv always uses a tab.
	Delimiter rune
}

// Load reads the dataset at path, picking the reader from the file extension.
func Load(path string, opts Options) (*sample.Dataset, error) {
	return LoadWithContext(context.Background(), path, opts)
}

// LoadWithContext reads the dataset at path with logging context.
func LoadWithContext(ctx context.Context, path string, opts Options) (*sample.Dataset, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "ingest").
		Str("operation", "load_dataset").
		Str("input_path", path).
		Msg("loading registry")

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		var sheet string
		rows, sheet, err = readSpreadsheet(path, opts.Sheet)
		if err == nil && opts.Sheet != "" && sheet != opts.Sheet {
			log.Warn().
				Str("component", "ingest").
				Str("sheet", opts.Sheet).
				Str("using", sheet).
				Msg("sheet not found, reading the first sheet")
		}
	case ".ods":
		err = fmt.Errorf("%w: %q, save the registry as .xlsx first", ErrUnsupportedFormat, ext)
	case ".tsv":
		rows, err = readDelimited(path, '\t')
	case ".csv", ".txt":
		delim := opts.Delimiter
		if delim == 0 {
			delim = ','
		}
		rows, err = readDelimited(path, delim)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		log.Error().
			Str("component", "ingest").
			Err(err).
			Str("input_path", path).
			Msg("failed to read registry")
		return nil, err
	}

	ds, err := toDataset(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().
		Str("component", "ingest").
		Int("columns", len(ds.Columns)).
		Int("records", ds.Len()).
		Msg("registry loaded")

	return ds, nil
}

func toDataset(rows [][]string) (*sample.Dataset, error) {
	var body [][]string
	for _, row := range rows {
		if !isBlank(row) {
			body = append(body, row)
		}
	}
	if len(body) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, 0, len(body[0]))
	for _, h := range body[0] {
		header = append(header, strings.TrimSpace(h))
	}
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}

	return sample.NewDataset(header, body[1:])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
