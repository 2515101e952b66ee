// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScan prints workspace scan results using the configured output format.
func (ow *OutWriter) WriteScan(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return PrintScanResults(result, cfg, duration)
}

// WriteRescore prints a single-file rescore using the configured output format.
func (ow *OutWriter) WriteRescore(score *schema.FileScore, cfg *contract.Config, duration time.Duration) error {
	return PrintRescoreResults(score, cfg, duration)
}

// WriteHeatmap prints the directory rollup tree using the configured output format.
func (ow *OutWriter) WriteHeatmap(root *schema.HeatmapNode, cfg *contract.Config, duration time.Duration) error {
	return PrintHeatmapResults(root, cfg, duration)
}

// WriteBreakdown prints a per-signal breakdown using the configured output format.
func (ow *OutWriter) WriteBreakdown(breakdown *schema.FileBreakdown, cfg *contract.Config, duration time.Duration) error {
	return PrintBreakdownResults(breakdown, cfg, duration)
}

// WriteCouplings prints change-coupling pairs using the configured output format.
func (ow *OutWriter) WriteCouplings(pairs []*schema.CouplingPair, cfg *contract.Config, duration time.Duration) error {
	return PrintCouplingResults(pairs, cfg, duration)
}

// WriteSnapshots prints the debt trend using the configured output format.
func (ow *OutWriter) WriteSnapshots(snaps []*schema.DebtSnapshot, cfg *contract.Config, duration time.Duration) error {
	return PrintSnapshotResults(snaps, cfg, duration)
}

// WriteRegister prints tracked debt items using the configured output format.
func (ow *OutWriter) WriteRegister(items []*schema.RegisterItem, cfg *contract.Config, duration time.Duration) error {
	return PrintRegisterResults(items, cfg, duration)
}

// WriteBudgets prints budgets with usage using the configured output format.
func (ow *OutWriter) WriteBudgets(usages []schema.BudgetUsage, cfg *contract.Config, duration time.Duration) error {
	return PrintBudgetResults(usages, cfg, duration)
}

// WriteWatchlist prints the pinned files using the configured output format.
func (ow *OutWriter) WriteWatchlist(entries []schema.WatchlistEntry, cfg *contract.Config, duration time.Duration) error {
	return PrintWatchlistResults(entries, cfg, duration)
}

// WriteWorkspace prints the workspace summary using the configured output format.
func (ow *OutWriter) WriteWorkspace(meta *schema.WorkspaceMeta, cfg *contract.Config, duration time.Duration) error {
	return PrintWorkspaceResults(meta, cfg, duration)
}

// WriteStoreStatus prints durable-store health using the configured output format.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config, duration time.Duration) error {
	return PrintStoreStatusResults(status, cfg, duration)
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table
// output based on terminal width and the fixed table columns.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns plus borders, separators and padding
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
