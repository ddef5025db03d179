package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/logging"
	"github.com/apflab/batchplan/internal/sample"
)

// Writer defaults.
const (
	DefaultWorkers   = 4
	defaultBufSize   = 64 * 1024
	defaultFilePerm  = 0o644
	defaultDirPerm   = 0o755
	batchFileSuffix  = ".csv"
	tempFilePattern  = ".tmp-*"
	defaultDelimiter = ','
)

// ErrNoOutputDir is returned when a Writer is created without a directory.
var ErrNoOutputDir = errors.New("output directory is required")

// Options configures a Writer.
type Options struct {
	// Dir receives every file.
	Dir string
	// SummaryFile is the file name of the composition summary.
	SummaryFile string
	// RegistryColumn holds QC labels in batch tables.
	RegistryColumn string
	// Delimiter separates fields; zero means a comma.
	Delimiter rune
	// Workers bounds how many batch files are written at once.
	Workers int
}

// Writer writes batch tables to a directory.
type Writer struct {
	opts Options
}

// NewWriter returns a Writer for opts.
func NewWriter(opts Options) (*Writer, error) {
	if opts.Dir == "" {
		return nil, ErrNoOutputDir
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = defaultDelimiter
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	return &Writer{opts: opts}, nil
}

// BatchPath returns where the table of batch id is written.
func (w *Writer) BatchPath(id string) string {
	return filepath.Join(w.opts.Dir, id+batchFileSuffix)
}

// WriteBatches writes one table per batch and returns the paths in batch
// order. Batch files left in the directory by an earlier run are removed
// first, so the directory only ever holds the current plan. Files are written
// concurrently, at most Workers at a time; the first failure cancels the
// files not yet started.
func (w *Writer) WriteBatches(ctx context.Context, batches []batch.Batch) ([]string, error) {
	log := logging.ComponentLogger(logging.FromContext(ctx), "export")

	if err := os.MkdirAll(w.opts.Dir, defaultDirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	removed, err := w.removeBatchFiles()
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		log.Info().Int("files", removed).Str("dir", w.opts.Dir).Msg("previous batch files removed")
	}

	paths := make([]string, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Workers)
	for i, b := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			header, rows := BatchTable(b, w.opts.RegistryColumn)
			path := w.BatchPath(b.ID)
			if err := w.writeTable(path, header, rows); err != nil {
				return fmt.Errorf("writing %s: %w", b.ID, err)
			}
			paths[i] = path
			log.Debug().Str("batch", b.ID).Str("path", path).Int("rows", len(rows)).Msg("batch written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Int("batches", len(batches)).Str("dir", w.opts.Dir).Msg("batches written")
	return paths, nil
}

// removeBatchFiles deletes every batch_<n>.csv in the output directory.
func (w *Writer) removeBatchFiles() (int, error) {
	paths, err := batchFiles(w.opts.Dir)
	if err != nil {
		return 0, err
	}
	for _, p := range paths {
		if err = os.Remove(p); err != nil && !os.IsNotExist(err) {
			return 0, fmt.Errorf("removing previous batch file: %w", err)
		}
	}
	return len(paths), nil
}

// WriteSummary writes the composition summary and returns its path.
func (w *Writer) WriteSummary(ctx context.Context, summary []batch.SummaryRow) (string, error) {
	if err := os.MkdirAll(w.opts.Dir, defaultDirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(w.opts.Dir, w.opts.SummaryFile)
	if err := w.writeTable(path, SummaryHeader(), SummaryTable(summary)); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "export").
		Str("path", path).
		Int("rows", len(summary)).
		Msg("summary written")
	return path, nil
}

// WriteDataset writes ds to path with the writer's delimiter.
func (w *Writer) WriteDataset(path string, ds *sample.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return w.writeTable(path, ds.Columns, DatasetTable(ds))
}

// writeTable writes header and rows to a temporary file next to dest, then
// renames it over dest.
func (w *Writer) writeTable(dest string, header []string, rows [][]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), tempFilePattern)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriterSize(tmp, defaultBufSize)
	cw := csv.NewWriter(bw)
	cw.Comma = w.opts.Delimiter
	if err = cw.Write(header); err != nil {
		return err
	}
	if err = cw.WriteAll(rows); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(defaultFilePerm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, dest)
}
