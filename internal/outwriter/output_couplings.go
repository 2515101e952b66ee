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

// PrintCouplingResults outputs file pairs that keep changing together.
func PrintCouplingResults(pairs []*schema.CouplingPair, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, pairs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"file_a", "file_b", "co_changes", "ratio", "import_link"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, p := range pairs {
					rec := []string{
						p.FileA,
						p.FileB,
						strconv.Itoa(p.CoChangeCount),
						fmt.Sprintf("%.2f", p.CouplingRatio),
						strconv.FormatBool(p.HasImportLink),
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
			return printCouplingTable(pairs, cfg, duration, w)
		}, "Wrote table")
	}
}

// printCouplingTable generates and writes the human-readable pair table.
func printCouplingTable(pairs []*schema.CouplingPair, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(pairs) == 0 {
		_, err := fmt.Fprintln(writer, "No change couplings found in the history window.")
		return err
	}

	table := tablewriter.NewWriter(writer)

	table.Header([]string{"File A", "File B", "Co-Changes", "Ratio", "Import"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := GetMaxTablePathWidth(cfg)

	var data [][]string
	for _, p := range pairs {
		importMark := ""
		if p.HasImportLink {
			importMark = "yes"
		}
		data = append(data, []string{
			contract.TruncatePath(p.FileA, pathWidth),
			contract.TruncatePath(p.FileB, pathWidth),
			strconv.Itoa(p.CoChangeCount),
			fmt.Sprintf("%.2f", p.CouplingRatio),
			importMark,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d coupled pairs in %v\n", len(pairs), duration)
	return err
}
