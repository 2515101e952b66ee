package core

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/debtengine/debtengine/core/signal"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// AnalysisInputs is the shared workspace-wide context consumed by the
// per-file analyzers: the effective history window, the resolved weights,
// change counts and co-change pairs from the activity log, blame attribution,
// the import graph and the coverage report. Built once per run and read-only
// afterwards.
type AnalysisInputs struct {
	HistoryDays  int
	Weights      schema.Weights
	ChangeCounts map[string]int
	CoChange     schema.CoChangeTable
	Blame        map[string]map[string]int
	Imports      *signal.ImportGraph
	Coverage     *signal.CoverageReport
}

// Memo bounds for reusing AnalysisInputs across rapid single-file rescans,
// e.g. a watcher-triggered burst. Full scans always rebuild and refresh.
const (
	inputsMemoSize = 8
	inputsMemoTTL  = 30 * time.Second
)

func inputsMemoKey(root string, historyDays int) string {
	return root + ":" + strconv.Itoa(historyDays)
}

// buildAnalysisInputs assembles the workspace context for one run. History
// facts are skipped outside a Git repository; if the activity log itself
// fails, the history-derived signals degrade to zero and the run continues.
func buildAnalysisInputs(ctx context.Context, cfg *contract.Config, client contract.GitClient, relPaths []string) *AnalysisInputs {
	inputs := &AnalysisInputs{
		HistoryDays:  cfg.HistoryDays,
		Weights:      cfg.Weights,
		ChangeCounts: make(map[string]int),
		Blame:        make(map[string]map[string]int),
		Imports:      signal.BuildImportGraph(cfg.WorkspaceRoot, relPaths),
		Coverage:     signal.LoadCoverageReport(cfg.WorkspaceRoot),
	}

	if !cfg.GitActive {
		return inputs
	}

	out, err := client.ActivityLog(ctx, cfg.WorkspaceRoot, cfg.Since)
	if err != nil {
		contract.LogWarn("Git history unavailable, history signals degrade to zero", err)
		return inputs
	}
	inputs.CoChange = signal.ParseActivityLog(out)
	inputs.ChangeCounts = inputs.CoChange.FileChangeCounts
	inputs.Blame = collectBlame(ctx, cfg, client, relPaths)

	return inputs
}

// collectBlame gathers per-author line counts for every file with a bounded
// worker pool. Files whose blame fails (e.g. not yet committed) get no entry
// and score zero on the knowledge signal.
func collectBlame(ctx context.Context, cfg *contract.Config, client contract.GitClient, relPaths []string) map[string]map[string]int {
	type blameResult struct {
		path  string
		lines map[string]int
	}

	fileCh := make(chan string, len(relPaths))
	resultCh := make(chan blameResult, len(relPaths))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for rel := range fileCh {
				lines, err := client.AuthorLineCounts(ctx, cfg.WorkspaceRoot, rel)
				if err != nil {
					continue
				}
				resultCh <- blameResult{path: rel, lines: lines}
			}
		})
	}

	for _, rel := range relPaths {
		fileCh <- rel
	}
	close(fileCh)

	wg.Wait()
	close(resultCh)

	blame := make(map[string]map[string]int, len(relPaths))
	for r := range resultCh {
		blame[r.path] = r.lines
	}
	return blame
}
