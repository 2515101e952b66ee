package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// PrintWorkspaceResults outputs the open workspace summary.
func PrintWorkspaceResults(meta *schema.WorkspaceMeta, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, meta)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"root", "branch", "files", "last_scan", "store"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return csvWriter.Write([]string{
					meta.Root,
					meta.Branch,
					strconv.Itoa(meta.FileCount),
					formatEpoch(meta.LastAnalysisAt),
					string(cfg.StoreBackend),
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printWorkspaceText(meta, cfg, w)
		}, "Wrote table")
	}
}

// printWorkspaceText prints a compact key-value block for the workspace.
func printWorkspaceText(meta *schema.WorkspaceMeta, cfg *contract.Config, writer io.Writer) error {
	branch := meta.Branch
	if branch == "" {
		branch = "n/a"
	}

	labels := []string{"Root:", "Branch:", "Files:", "Last scan:", "Store:"}
	values := []any{
		meta.Root,
		branch,
		meta.FileCount,
		formatEpoch(meta.LastAnalysisAt),
		cfg.StoreBackend,
	}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(writer, "%-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// PrintStoreStatusResults outputs durable-store health and row counts.
func PrintStoreStatusResults(status schema.StoreStatus, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"table", "rows"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, name := range sortedTableNames(status.TableSizes) {
					rec := []string{name, strconv.FormatInt(status.TableSizes[name], 10)}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printStoreStatusText(status, duration, w)
		}, "Wrote table")
	}
}

// printStoreStatusText prints the health block plus a per-table row count table.
func printStoreStatusText(status schema.StoreStatus, duration time.Duration, writer io.Writer) error {
	connected := "yes"
	if !status.Connected {
		connected = "no"
	}

	labels := []string{"Backend:", "Connected:", "Files:", "Snapshots:"}
	values := []any{status.Backend, connected, status.FileCount, status.SnapshotCount}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(writer, "%-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	if len(status.TableSizes) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Table", "Rows"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedTableNames(status.TableSizes) {
		data = append(data, []string{name, strconv.FormatInt(status.TableSizes[name], 10)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Status gathered in %v\n", duration)
	return err
}

func sortedTableNames(sizes map[string]int64) []string {
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
