package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apflab/batchplan/internal/export"
)

// NewLookupCmd creates the lookup command, which finds samples by registry code.
func NewLookupCmd() *cobra.Command {
	var (
		list  bool
		out   string
		sheet string
	)

	cmd := &cobra.Command{
		Use:   "lookup INPUT [CODE]",
		Short: "Find samples by registry code",
		Long: `Prints every sample whose registry column equals CODE. With --list, prints
the distinct registry codes of the registry in order of first appearance.`,
		Example: `  # Show the record of one sample
  batchplan lookup registry.xlsx APF-0042

  # Save the matching records
  batchplan lookup registry.xlsx APF-0042 --out apf-0042.csv

  # List every registry code
  batchplan lookup registry.xlsx --list`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := effectiveConfig()
			if cmd.Flags().Changed("sheet") {
				cfg.Input.Sheet = sheet
			}

			ds, err := loadDataset(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}

			if list {
				codes, listErr := ds.RegistryCodes(cfg.Columns.Registry)
				if listErr != nil {
					return listErr
				}
				for _, code := range codes {
					if _, err = fmt.Fprintln(cmd.OutOrStdout(), code); err != nil {
						return err
					}
				}
				return nil
			}

			if len(args) < 2 {
				return errors.New("a registry code is required unless --list is set")
			}
			matches, err := ds.FindByRegistry(cfg.Columns.Registry, args[1])
			if err != nil {
				return err
			}
			if matches.Len() == 0 {
				cmd.Printf("No sample with registry code %q\n", args[1])
				return nil
			}

			if out != "" {
				w, wErr := export.NewWriter(export.Options{
					Dir:       ".",
					Delimiter: delimiterRune(cfg.Output.Delimiter),
				})
				if wErr != nil {
					return wErr
				}
				if wErr = w.WriteDataset(out, matches); wErr != nil {
					return fmt.Errorf("writing %s: %w", out, wErr)
				}
				cmd.Printf("%d record(s) written to %s\n", matches.Len(), out)
				return nil
			}

			return renderRecords(cmd.OutOrStdout(), matches)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list distinct registry codes")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the matching records to this file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read from spreadsheet inputs")

	return cmd
}
