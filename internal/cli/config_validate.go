package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apflab/batchplan/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file at
~/.batchplan/config.yaml (or --config) with BATCHPLAN_* overrides applied.

This includes:
- Config version compatibility
- Batch structure: segment sizes must add up to samples_per_batch and
  match the QC counts in length
- Non-empty column names, single-character delimiters and a valid log format`,
		Example: `  # Validate current configuration
  batchplan config validate

  # Validate and show detailed information
  batchplan config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	layout := cfg.Batch.Layout()

	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Samples per batch: %d\n", layout.SamplesPerBatch)
	cmd.Printf("  Segment sizes: %v\n", layout.SegmentSizes)
	cmd.Printf("  QC cycles per segment: %v\n", layout.QCCounts)
	cmd.Printf("  QC labels: %v\n", layout.QCLabels)
	cmd.Printf("  Rows per full batch: %d\n", layout.SamplesPerBatch+layout.QCRows())
	cmd.Printf("  Grouping columns: %s, %s\n", cfg.Columns.Family, cfg.Columns.Genus)
	cmd.Printf("  Registry column: %s\n", cfg.Columns.Registry)
	cmd.Printf("  Output directory: %s\n", cfg.Output.Dir)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
