package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/apflab/batchplan/internal/engine/batch"
	"github.com/apflab/batchplan/internal/sample"
)

// Rendering constants.
const (
	tabPadding   = 2
	emptyTaxon   = "(none)"
	ruleMinWidth = 20
)

// headerColor returns the Lip Gloss color used for section titles.
func headerColor() lipgloss.Color { return lipgloss.Color("39") }

// isWriterTerminal reports whether w is a terminal, so styled output is used.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// countSection is one titled table of key/count pairs.
type countSection struct {
	Title  string
	Key    string
	Value  string
	Counts []sample.Count
}

// displayTaxon shows empty family and genus values explicitly.
func displayTaxon(s string) string {
	if s == "" {
		return emptyTaxon
	}
	return s
}

// writeTitle writes a section title, bold and colored on a terminal.
func writeTitle(w io.Writer, title string) error {
	if isWriterTerminal(w) {
		style := lipgloss.NewStyle().Bold(true).Foreground(headerColor())
		_, err := fmt.Fprintln(w, style.Render(title))
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.Repeat("=", max(len(title), ruleMinWidth)))
	return err
}

// renderPlan prints the outcome of a build: written files, if any, and the
// composition summary.
func renderPlan(w io.Writer, plan *batch.Plan, paths []string, summaryPath string) error {
	p := message.NewPrinter(language.English)

	samples := 0
	for _, b := range plan.Batches {
		samples += b.SampleCount()
	}

	if err := writeTitle(w, "BATCH PLAN"); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "Batches: %d\nSamples: %d\n", len(plan.Batches), samples); err != nil {
		return err
	}
	if len(paths) > 0 {
		if _, err := fmt.Fprintf(w, "Batch files: %s .. %s\n", paths[0], paths[len(paths)-1]); err != nil {
			return err
		}
	}
	if summaryPath != "" {
		if _, err := fmt.Fprintf(w, "Summary: %s\n", summaryPath); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	return renderSummary(w, plan.Summary)
}

// renderSummary prints composition summary rows as a table.
func renderSummary(w io.Writer, summary []batch.SummaryRow) error {
	if len(summary) == 0 {
		_, err := fmt.Fprintln(w, "No samples allocated.")
		return err
	}

	p := message.NewPrinter(language.English)
	styled := isWriterTerminal(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Batch\tFamily\tGenus\tCount")
	fmt.Fprintln(tw, "-----\t------\t-----\t-----")

	prev := ""
	for _, row := range summary {
		id := row.Batch
		if id == prev {
			id = ""
		} else if prev != "" && styled {
			fmt.Fprintln(tw, "\t\t\t")
		}
		prev = row.Batch

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			id, displayTaxon(row.Family), displayTaxon(row.Genus), p.Sprintf("%d", row.Count))
	}
	return tw.Flush()
}

// renderSections prints each count section as a two-column table.
func renderSections(w io.Writer, sections []countSection) error {
	p := message.NewPrinter(language.English)

	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeTitle(w, s.Title); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "%s\t%s\t\n", s.Key, s.Value)
		for _, c := range s.Counts {
			fmt.Fprintf(tw, "%s\t%s\t\n", displayTaxon(c.Key), p.Sprintf("%d", c.Count))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// renderRecords prints each record of ds as a block of column: value lines.
func renderRecords(w io.Writer, ds *sample.Dataset) error {
	for i, r := range ds.Records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeTitle(w, fmt.Sprintf("Record %d", r.Row+1)); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		for col, name := range ds.Columns {
			fmt.Fprintf(tw, "%s\t%s\n", name+":", r.Value(col))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
