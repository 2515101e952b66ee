package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// PrintScanHeader prints a concise, 2-line header before a workspace scan.
func PrintScanHeader(cfg *contract.Config) {
	workspace := filepath.Base(cfg.WorkspaceRoot)
	if workspace == "" || workspace == "." {
		workspace = "current"
	}

	gitState := "active"
	if !cfg.GitActive {
		gitState = "inactive, history signals score 0"
	}

	// Line 1: The workspace summary
	fmt.Printf("Workspace: %s (git: %s)\n", workspace, gitState)

	// Line 2: The actual history window being analyzed
	fmt.Printf("Window: %s → %s (%d days)\n",
		cfg.Since.Format(contract.DateTimeFormat),
		time.Now().Format(contract.DateTimeFormat),
		cfg.HistoryDays)
}

// PrintScanResults outputs the scan rollup, dispatching based on the output format configured.
func PrintScanResults(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForScan(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForScan(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printScanTable(result, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printJSONResultsForScan handles opening the file and calling the JSON writer.
func printJSONResultsForScan(result *schema.AnalysisResult, cfg *contract.Config) error {
	type jsonScanResult struct {
		WorkspaceScore float64                    `json:"workspace_score"`
		FileCount      int                        `json:"file_count"`
		HighDebtCount  int                        `json:"high_debt_count"`
		DurationMS     int64                      `json:"duration_ms"`
		Files          []schema.EnrichedFileScore `json:"files"`
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, jsonScanResult{
			WorkspaceScore: result.WorkspaceScore,
			FileCount:      result.FileCount,
			HighDebtCount:  result.HighDebtCount,
			DurationMS:     result.DurationMS,
			Files:          schema.EnrichFiles(result.Files, cfg.ResultLimit),
		})
	}, "Wrote JSON")
}

// printCSVResultsForScan handles opening the file and calling the CSV writer.
func printCSVResultsForScan(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, scanCSVHeader(true), func(csvWriter *csv.Writer) error {
			for _, f := range schema.EnrichFiles(result.Files, cfg.ResultLimit) {
				rec := append([]string{strconv.Itoa(f.Rank)}, fileCSVRecord(&f.FileScore, fmtFloat, intFmt)...)
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printScanTable generates and writes the human-readable table.
func printScanTable(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Path", "Score", "Label", "LOC"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	ranked := schema.EnrichFiles(result.Files, cfg.ResultLimit)

	var data [][]string
	for _, f := range ranked {
		data = append(data, []string{
			strconv.Itoa(f.Rank),
			contract.TruncatePath(f.RelativePath, GetMaxTablePathWidth(cfg)),
			fmtFloat(f.CompositeScore),
			contract.GetColorLabel(f.CompositeScore),
			fmt.Sprintf(intFmt, f.LOC),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d of %d files (workspace mean: %s, high debt: %d)\n",
		len(ranked), result.FileCount, fmtFloat(result.WorkspaceScore), result.HighDebtCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scan completed in %v with %d workers. Store backend: %s\n",
		duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// PrintRescoreResults outputs a single-file rescore, dispatching based on the output format configured.
func PrintRescoreResults(score *schema.FileScore, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, score)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, scanCSVHeader(false), func(csvWriter *csv.Writer) error {
				return csvWriter.Write(fileCSVRecord(score, fmtFloat, intFmt))
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printRescoreText(score, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// printRescoreText prints a compact key-value block for one file.
func printRescoreText(score *schema.FileScore, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	labels := []string{"Path:", "Score:", "LOC:", "Language:", "Modified:", "Supervision:"}
	values := []any{
		score.RelativePath,
		fmt.Sprintf("%s (%s)", fmtFloat(score.CompositeScore), contract.GetColorLabel(score.CompositeScore)),
		fmt.Sprintf(intFmt, score.LOC),
		score.Language,
		formatEpoch(score.LastModified),
		score.Supervision,
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

	_, err := fmt.Fprintf(writer, "\nRescored in %v\n", duration)
	return err
}

// scanCSVHeader is the shared per-file CSV header. The rank column appears
// only in ranked listings.
func scanCSVHeader(withRank bool) []string {
	header := []string{"file", "score", "label", "loc", "language"}
	for _, key := range schema.SignalOrder {
		header = append(header, string(key))
	}
	if withRank {
		return append([]string{"rank"}, header...)
	}
	return header
}

// fileCSVRecord renders one file's CSV row: identity, composite and the
// eight per-signal contributions in canonical order.
func fileCSVRecord(score *schema.FileScore, fmtFloat func(float64) string, intFmt string) []string {
	rec := []string{
		score.RelativePath,
		fmtFloat(score.CompositeScore),
		schema.GetPlainLabel(score.CompositeScore),
		fmt.Sprintf(intFmt, score.LOC),
		string(score.Language),
	}
	for _, key := range schema.SignalOrder {
		rec = append(rec, fmtFloat(score.Components.Slot(key).Contribution))
	}
	return rec
}
