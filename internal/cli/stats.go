package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apflab/batchplan/internal/sample"
)

// NewStatsCmd creates the stats command, which prints taxonomic
// distributions of a registry.
func NewStatsCmd() *cobra.Command {
	var (
		top   int
		sheet string
	)

	cmd := &cobra.Command{
		Use:   "stats INPUT",
		Short: "Show family, species and registry code distributions",
		Long: `Prints the number of samples per family and per species, most frequent
first, and the number of distinct registry codes per family. Sections whose
column is missing from the registry are skipped, except the family one.`,
		Example: `  # Full distributions
  batchplan stats registry.xlsx

  # Ten most frequent entries per section
  batchplan stats registry.xlsx --top 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], sheet, top)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "show only the N largest entries per section (0 = all)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read from spreadsheet inputs")

	return cmd
}

// runStats executes the stats command.
func runStats(cmd *cobra.Command, input, sheet string, top int) error {
	ctx := cmd.Context()
	cfg := effectiveConfig()
	if cmd.Flags().Changed("sheet") {
		cfg.Input.Sheet = sheet
	}

	ds, err := loadDataset(ctx, cfg, input)
	if err != nil {
		return err
	}

	families, err := ds.Distribution(cfg.Columns.Family)
	if err != nil {
		return fmt.Errorf("family distribution: %w", err)
	}

	sections := []countSection{{
		Title:  fmt.Sprintf("Samples per family (%d records)", ds.Len()),
		Key:    "Family",
		Value:  "Samples",
		Counts: limitCounts(families, top),
	}}

	if ds.HasColumn(cfg.Columns.Species) {
		species, sErr := ds.Distribution(cfg.Columns.Species)
		if sErr != nil {
			return fmt.Errorf("species distribution: %w", sErr)
		}
		sections = append(sections, countSection{
			Title: "Samples per species", Key: "Species", Value: "Samples",
			Counts: limitCounts(species, top),
		})
	}

	if ds.HasColumn(cfg.Columns.Registry) {
		codes, rErr := ds.DistinctPerGroup(cfg.Columns.Family, cfg.Columns.Registry)
		if rErr != nil {
			return fmt.Errorf("registry codes per family: %w", rErr)
		}
		sections = append(sections, countSection{
			Title: "Registry codes per family", Key: "Family", Value: "Codes",
			Counts: limitCounts(codes, top),
		})
	}

	return renderSections(cmd.OutOrStdout(), sections)
}

// limitCounts keeps the first n counts; n <= 0 keeps them all.
func limitCounts(counts []sample.Count, n int) []sample.Count {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}
