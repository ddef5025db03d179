package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/export"
	"github.com/apflab/batchplan/internal/logging"
)

// NewSummaryCmd creates the summary command, which rebuilds the composition
// summary from batch files already on disk.
func NewSummaryCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "summary DIR",
		Short: "Summarize the family and genus composition of written batches",
		Long: `Reads every batch_<n>.csv file in DIR and prints, per batch, how many
samples of each family and genus it holds. QC rows are not counted.`,
		Example: `  # Print the composition of the batches in ./batches
  batchplan summary batches

  # Also rewrite the summary file inside the directory
  batchplan summary batches --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, args[0], write)
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "write the summary file into DIR")

	return cmd
}

// runSummary executes the summary command.
func runSummary(cmd *cobra.Command, dir string, write bool) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := effectiveConfig()
	delim := delimiterRune(cfg.Output.Delimiter)

	batches, err := export.ReadBatchDir(ctx, dir, cfg.Columns.Registry, delim)
	if err != nil {
		return fmt.Errorf("reading batches: %w", err)
	}
	log.Debug().Ctx(ctx).Str("dir", dir).Int("batches", len(batches)).Msg("batches read")

	summary, err := batch.Summarize(batches, cfg.Columns.Family, cfg.Columns.Genus)
	if err != nil {
		return fmt.Errorf("summarizing batches: %w", err)
	}

	if write {
		w, wErr := export.NewWriter(export.Options{
			Dir:         dir,
			SummaryFile: cfg.Output.SummaryFile,
			Delimiter:   delim,
		})
		if wErr != nil {
			return wErr
		}
		path, wErr := w.WriteSummary(ctx, summary)
		if wErr != nil {
			return wErr
		}
		cmd.Printf("Summary written to %s\n", path)
	}

	return renderSummary(cmd.OutOrStdout(), summary)
}
