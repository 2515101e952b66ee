package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// PrintBreakdownResults outputs the per-signal explanation of one file's score.
func PrintBreakdownResults(breakdown *schema.FileBreakdown, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, breakdown)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"signal", "raw_score", "weight", "contribution", "evidence"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, c := range breakdown.Components {
					rec := []string{
						string(c.Name),
						fmtFloat(c.RawScore),
						fmt.Sprintf("%.2f", c.Weight),
						fmtFloat(c.Contribution),
						strings.Join(c.Details, "; "),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printBreakdownTable(breakdown, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// printBreakdownTable generates and writes the human-readable signal table.
func printBreakdownTable(breakdown *schema.FileBreakdown, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "File:  %s\n", breakdown.Path); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Score: %s (%s)\n\n",
		fmtFloat(breakdown.CompositeScore), contract.GetColorLabel(breakdown.CompositeScore)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Signal", "Raw", "Weight", "Contribution", "Evidence"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range breakdown.Components {
		data = append(data, []string{
			string(c.Name),
			fmtFloat(c.RawScore),
			fmt.Sprintf("%.2f", c.Weight),
			fmtFloat(c.Contribution),
			strings.Join(c.Details, "; "),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Breakdown computed in %v\n", duration)
	return err
}
