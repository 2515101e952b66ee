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

// PrintRegisterResults outputs tracked debt items, newest first.
func PrintRegisterResults(items []*schema.RegisterItem, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, items)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "title", "severity", "type", "status", "file", "note", "created", "updated"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, item := range items {
					rec := []string{
						item.ID,
						item.Title,
						string(item.Severity),
						string(item.Type),
						string(item.Status),
						item.FilePath,
						item.Note,
						formatEpoch(item.CreatedAt),
						formatEpoch(item.UpdatedAt),
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
			return printRegisterTable(items, cfg, duration, w)
		}, "Wrote table")
	}
}

// printRegisterTable generates and writes the human-readable item table.
// IDs print in full so they can be pasted into resolve and rm.
func printRegisterTable(items []*schema.RegisterItem, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(writer, "No debt items recorded. Add one with 'debtengine register add'.")
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"ID", "Title", "Severity", "Type", "Status", "File", "Updated"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := GetMaxTablePathWidth(cfg)

	var data [][]string
	for _, item := range items {
		data = append(data, []string{
			item.ID,
			item.Title,
			string(item.Severity),
			string(item.Type),
			string(item.Status),
			contract.TruncatePath(item.FilePath, pathWidth),
			formatEpoch(item.UpdatedAt),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d debt items in %v\n", len(items), duration)
	return err
}

// PrintBudgetResults outputs every budget with its current usage.
func PrintBudgetResults(usages []schema.BudgetUsage, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, usages)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "pattern", "label", "max_score", "mean_score", "files", "state"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, u := range usages {
					rec := []string{
						u.Budget.ID,
						u.Budget.Pattern,
						u.Budget.Label,
						fmtFloat(u.Budget.MaxScore),
						fmtFloat(u.MeanScore),
						strconv.Itoa(u.FileCount),
						budgetState(u),
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
			return printBudgetTable(usages, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// budgetState reduces a usage row to ok, over or unused. A budget matching
// no files never violates.
func budgetState(u schema.BudgetUsage) string {
	switch {
	case u.FileCount == 0:
		return "unused"
	case u.MeanScore > u.Budget.MaxScore:
		return "over"
	default:
		return "ok"
	}
}

// printBudgetTable generates and writes the human-readable budget table.
func printBudgetTable(usages []schema.BudgetUsage, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if len(usages) == 0 {
		_, err := fmt.Fprintln(writer, "No budgets set. Add one with 'debtengine budget set'.")
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Pattern", "Label", "Max", "Mean", "Files", "State", "ID"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, u := range usages {
		data = append(data, []string{
			u.Budget.Pattern,
			u.Budget.Label,
			fmtFloat(u.Budget.MaxScore),
			fmtFloat(u.MeanScore),
			strconv.Itoa(u.FileCount),
			budgetState(u),
			u.Budget.ID,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d budgets in %v\n", len(usages), duration)
	return err
}

// PrintWatchlistResults outputs the pinned files with their stored scores.
func PrintWatchlistResults(entries []schema.WatchlistEntry, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"path", "pinned_at", "score"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, e := range entries {
					score := ""
					if e.Score != nil {
						score = fmtFloat(*e.Score)
					}
					if err := csvWriter.Write([]string{e.RelativePath, formatEpoch(e.PinnedAt), score}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printWatchlistTable(entries, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// printWatchlistTable generates and writes the human-readable pin table.
func printWatchlistTable(entries []schema.WatchlistEntry, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(writer, "Watchlist is empty. Pin a file with 'debtengine pin'.")
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Path", "Pinned", "Score", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := GetMaxTablePathWidth(cfg)

	var data [][]string
	for _, e := range entries {
		score := "not scored"
		label := ""
		if e.Score != nil {
			score = fmtFloat(*e.Score)
			label = contract.GetColorLabel(*e.Score)
		}
		data = append(data, []string{
			contract.TruncatePath(e.RelativePath, pathWidth),
			formatEpoch(e.PinnedAt),
			score,
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d of %d pins used, listed in %v\n", len(entries), schema.MaxWatchlistPins, duration)
	return err
}
