package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apflab/batchplan/internal/config"
	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/export"
	"github.com/apflab/batchplan/internal/logging"
)

// buildFlags holds the overrides accepted by the build command.
type buildFlags struct {
	out             string
	samplesPerBatch int
	segmentSizes    []int
	qcCounts        []int
	qcLabels        []string
	familyColumn    string
	genusColumn     string
	sheet           string
	workers         int
	registryOnly    bool
	dryRun          bool
}

// NewBuildCmd creates the build command, which allocates a registry into
// batches and writes one table per batch plus the composition summary.
func NewBuildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build INPUT",
		Short: "Allocate samples into batches and write the batch tables",
		Long: `Reads a sample registry (.xlsx, .xlsm, .csv, .tsv or .txt) and partitions
it into batches of samples_per_batch samples. Samples sharing family and genus
are kept together first, then samples sharing a family, visited in family name
order, then the remainder. Every batch gets QC rows before each segment and
after the last one.

OpenDocument registries (.ods) are not read directly; save them as .xlsx
first. When the configured sheet is missing, the first sheet is read.

One <batch_id>.csv file is written per batch, together with the composition
summary listing how many samples of each family and genus every batch holds.
Batch files left in the output directory by an earlier build are removed.`,
		Example: `  # Build batches with the configured defaults
  batchplan build registry.xlsx

  # Only keep samples with a registry code, write to ./run-01
  batchplan build registry.xlsx --registry-only --out run-01

  # Print the composition summary without writing files
  batchplan build registry.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.out, "out", "o", "", "output directory (overrides output.dir)")
	f.IntVar(&flags.samplesPerBatch, "samples-per-batch", 0, "real samples per full batch")
	f.IntSliceVar(&flags.segmentSizes, "segment-sizes", nil, "sample segment sizes, e.g. 24,24,32")
	f.IntSliceVar(&flags.qcCounts, "qc-counts", nil, "QC cycles before each segment, e.g. 3,3,2")
	f.StringSliceVar(&flags.qcLabels, "qc-labels", nil, "labels of one QC cycle, in order")
	f.StringVar(&flags.familyColumn, "family-col", "", "family column name")
	f.StringVar(&flags.genusColumn, "genus-col", "", "genus column name")
	f.StringVar(&flags.sheet, "sheet", "", "worksheet to read from spreadsheet inputs")
	f.IntVar(&flags.workers, "workers", 0, "batch files written concurrently")
	f.BoolVar(&flags.registryOnly, "registry-only", false,
		"drop samples without a registry code and move that column first")
	f.BoolVar(&flags.dryRun, "dry-run", false, "allocate and print the summary without writing files")

	return cmd
}

// applyBuildFlags overlays the flags that were explicitly set onto cfg.
func applyBuildFlags(cmd *cobra.Command, cfg *config.Config, flags buildFlags) {
	changed := cmd.Flags().Changed

	if changed("out") {
		cfg.Output.Dir = flags.out
	}
	if changed("samples-per-batch") {
		cfg.Batch.SamplesPerBatch = flags.samplesPerBatch
	}
	if changed("segment-sizes") {
		cfg.Batch.SegmentSizes = flags.segmentSizes
	}
	if changed("qc-counts") {
		cfg.Batch.QCCountsPerSegment = flags.qcCounts
	}
	if changed("qc-labels") {
		cfg.Batch.QCLabels = flags.qcLabels
	}
	if changed("family-col") {
		cfg.Columns.Family = flags.familyColumn
	}
	if changed("genus-col") {
		cfg.Columns.Genus = flags.genusColumn
	}
	if changed("sheet") {
		cfg.Input.Sheet = flags.sheet
	}
	if changed("workers") {
		cfg.Output.Workers = flags.workers
	}
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, input string, flags buildFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg := effectiveConfig()
	applyBuildFlags(cmd, &cfg, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ds, err := loadDataset(ctx, cfg, input)
	if err != nil {
		return err
	}
	if flags.registryOnly {
		before := ds.Len()
		if ds, err = ds.WithRegistryFirst(cfg.Columns.Registry); err != nil {
			return fmt.Errorf("filtering by registry code: %w", err)
		}
		log.Info().Ctx(ctx).Int("kept", ds.Len()).Int("dropped", before-ds.Len()).
			Msg("samples without registry code dropped")
	}

	alloc, err := batch.NewAllocator(cfg.Batch.Layout(), cfg.Columns.Family, cfg.Columns.Genus)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	alloc.WithProgressCallback(func(p *batch.Progress) {
		s := p.Snapshot()
		log.Debug().Ctx(ctx).
			Str("tier", s.Tier).
			Int("batches", s.ProcessedBatches).
			Int("placed", s.ProcessedItems).
			Float64("percent", s.PercentComplete).
			Msg("allocation progress")
	})

	plan, err := alloc.Allocate(ctx, ds)
	if err != nil {
		return fmt.Errorf("allocating batches: %w", err)
	}

	if flags.dryRun {
		return renderPlan(cmd.OutOrStdout(), plan, nil, "")
	}

	w, err := export.NewWriter(export.Options{
		Dir:            cfg.Output.Dir,
		SummaryFile:    cfg.Output.SummaryFile,
		RegistryColumn: cfg.Columns.Registry,
		Delimiter:      delimiterRune(cfg.Output.Delimiter),
		Workers:        cfg.Output.Workers,
	})
	if err != nil {
		return err
	}

	paths, err := w.WriteBatches(ctx, plan.Batches)
	if err != nil {
		return err
	}
	summaryPath, err := w.WriteSummary(ctx, plan.Summary)
	if err != nil {
		return err
	}

	return renderPlan(cmd.OutOrStdout(), plan, paths, summaryPath)
}
