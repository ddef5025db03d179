package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/apflab/batchplan/internal/config"
	"github.com/apflab/batchplan/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the batchplan CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
// Every subcommand runs with the effective configuration (defaults, config
// file, BATCHPLAN_* environment) installed as the global config.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "batchplan",
		Short: "Plan analytical batches for plant-extract samples",
		Long: `batchplan partitions a registry of plant-extract samples into fixed-size
analytical batches, keeping taxonomically related samples together and
interleaving QC rows at fixed positions.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, lookupEnv)
			if err != nil {
				return &ExitError{Code: ExitConfig, Err: err}
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/.batchplan/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(
		NewBuildCmd(), NewSummaryCmd(), NewStatsCmd(), NewLookupCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Split a registry spreadsheet into batches under ./batches
  batchplan build registry.xlsx

  # Preview the batch composition without writing files
  batchplan build registry.xlsx --dry-run

  # Use 40-sample batches
  batchplan build registry.csv --samples-per-batch 40 --segment-sizes 12,12,16

  # Rebuild the composition summary from written batch files
  batchplan summary batches/

  # Show family and species distributions
  batchplan stats registry.xlsx

  # Find a sample by registry code
  batchplan lookup registry.xlsx APF-0042

  # Write the default configuration
  batchplan config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
