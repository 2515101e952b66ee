package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// ProgressFunc consumes scan progress events. Delivery is buffered and
// one-way; a slow consumer never blocks the scoring workers.
type ProgressFunc func(schema.Progress)

// runWorkspaceScan walks the workspace, builds the shared analysis inputs
// once and scores every file with a bounded worker pool. The returned file
// list preserves enumeration order; unreadable files are skipped silently.
func (e *Engine) runWorkspaceScan(ctx context.Context, cfg *contract.Config, onProgress ProgressFunc) (*schema.AnalysisResult, *AnalysisInputs, error) {
	start := time.Now()

	relPaths, err := ListSourceFiles(cfg.WorkspaceRoot, cfg.Excludes, cfg.PathFilter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk workspace %s: %w", cfg.WorkspaceRoot, err)
	}
	if len(relPaths) == 0 {
		return nil, nil, errors.New("no source files found")
	}

	inputs := buildAnalysisInputs(ctx, cfg, e.client, relPaths)
	e.memo.Add(inputsMemoKey(cfg.WorkspaceRoot, cfg.HistoryDays), inputs)

	files := scoreAll(cfg, inputs, relPaths, onProgress)
	result := buildAnalysisResult(files, highDebtBar(cfg), time.Since(start))
	return result, inputs, nil
}

// scoreAll fans the file list out to cfg.Workers scoring goroutines. Progress
// fires at dispatch time, before the file is scored, in enumeration order.
// Results land in an index-addressed slice so the final list keeps that order
// regardless of worker interleaving.
func scoreAll(cfg *contract.Config, inputs *AnalysisInputs, relPaths []string, onProgress ProgressFunc) []schema.FileScore {
	type job struct {
		index int
		rel   string
	}

	jobCh := make(chan job, len(relPaths))
	results := make([]*schema.FileScore, len(relPaths))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for j := range jobCh {
				score, err := scoreFile(cfg, inputs, j.rel)
				if err != nil {
					continue // unreadable file, skip
				}
				// Each goroutine writes to a *unique* index, which is safe.
				results[j.index] = score
			}
		})
	}

	// The progress buffer covers every event up front so dispatch never
	// blocks on the consumer.
	var progressCh chan schema.Progress
	var progressWg sync.WaitGroup
	if onProgress != nil {
		progressCh = make(chan schema.Progress, len(relPaths))
		progressWg.Go(func() {
			for p := range progressCh {
				onProgress(p)
			}
		})
	}

	for i, rel := range relPaths {
		if progressCh != nil {
			progressCh <- schema.Progress{Current: i + 1, Total: len(relPaths), CurrentFile: rel}
		}
		jobCh <- job{index: i, rel: rel}
	}
	close(jobCh)
	wg.Wait()

	if progressCh != nil {
		close(progressCh)
	}
	progressWg.Wait()

	files := make([]schema.FileScore, 0, len(relPaths))
	for _, s := range results {
		if s != nil {
			files = append(files, *s)
		}
	}
	return files
}

// persistScanResult writes the scan outcome durably: every file score in one
// transaction, then the snapshot log and the coupling table. Snapshot and
// coupling bookkeeping failures are warnings, not scan failures.
func (e *Engine) persistScanResult(cfg *contract.Config, result *schema.AnalysisResult, inputs *AnalysisInputs) error {
	store := e.mgr.GetScoreStore()

	scores := make([]*schema.FileScore, len(result.Files))
	mtimes := make(map[string]int64, len(result.Files))
	for i := range result.Files {
		scores[i] = &result.Files[i]
		mtimes[result.Files[i].Path] = result.Files[i].LastModified
	}
	if err := store.UpsertScores(scores, mtimes); err != nil {
		return fmt.Errorf("failed to persist file scores: %w", err)
	}

	snap := &schema.DebtSnapshot{
		Timestamp:      time.Now().Unix(),
		CompositeScore: result.WorkspaceScore,
		FileCount:      result.FileCount,
		HighDebtCount:  result.HighDebtCount,
	}
	if err := store.AddSnapshot(snap); err != nil {
		contract.LogWarn("Failed to record debt snapshot", err)
	} else if err := store.PruneSnapshots(snapshotRetention(cfg)); err != nil {
		contract.LogWarn("Failed to prune debt snapshots", err)
	}

	known := make([]string, 0, len(result.Files))
	for i := range result.Files {
		known = append(known, result.Files[i].RelativePath)
	}
	pairs := buildCouplingPairs(cfg.WorkspaceRoot, inputs.CoChange, known, cfg.MinCouplingRatio)
	if err := store.ReplaceCouplings(pairs); err != nil {
		contract.LogWarn("Failed to persist coupling pairs", err)
	}

	return nil
}

// highDebtBar is the composite score above which a file counts as high-debt.
func highDebtBar(cfg *contract.Config) float64 {
	if cfg.WarningThreshold > 0 {
		return cfg.WarningThreshold
	}
	return schema.HighDebtThreshold
}

func snapshotRetention(cfg *contract.Config) int {
	if cfg.Settings != nil && cfg.Settings.SnapshotRetention > 0 {
		return cfg.Settings.SnapshotRetention
	}
	return schema.DefaultSnapshotRetention
}
