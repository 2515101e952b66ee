package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// PrintSnapshotResults outputs the workspace history log, newest first.
func PrintSnapshotResults(snaps []*schema.DebtSnapshot, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snaps)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"date", "score", "files", "high_debt"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, s := range snaps {
					rec := []string{
						formatEpoch(s.Timestamp),
						fmtFloat(s.CompositeScore),
						strconv.Itoa(s.FileCount),
						strconv.Itoa(s.HighDebtCount),
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
			return printSnapshotTable(snaps, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// printSnapshotTable generates and writes the human-readable history table.
// The trend column compares each snapshot against the next older one.
func printSnapshotTable(snaps []*schema.DebtSnapshot, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(writer, "No snapshots recorded yet, run 'debtengine scan' first.")
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Date", "Score", "Trend", "Files", "High Debt"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range snaps {
		trend := ""
		if i+1 < len(snaps) {
			trend = fmt.Sprintf("%+.1f", s.CompositeScore-snaps[i+1].CompositeScore)
		}
		data = append(data, []string{
			formatEpoch(s.Timestamp),
			fmtFloat(s.CompositeScore),
			trend,
			strconv.Itoa(s.FileCount),
			strconv.Itoa(s.HighDebtCount),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d snapshots in %v\n", len(snaps), duration)
	return err
}
