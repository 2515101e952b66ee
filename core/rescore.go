package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/debtengine/debtengine/core/signal"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// GetRescoreResults scores a single file incrementally. A durable row whose
// cached mtime still matches the file on disk is returned verbatim with no
// recompute and no write; otherwise the file is rescored against rebuilt
// analysis inputs, the view is patched and one row is upserted.
func (e *Engine) GetRescoreResults(ctx context.Context, cfg *contract.Config, fileArg string) (*schema.FileScore, time.Duration, error) {
	start := time.Now()

	absPath, relPath, err := resolveWorkspacePath(cfg.WorkspaceRoot, fileArg)
	if err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, 0, fmt.Errorf("file %s is not accessible: %w", relPath, err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory, not a file", relPath)
	}
	if !signal.IsSourceFile(absPath) {
		return nil, 0, fmt.Errorf("%s is not a recognized source file", relPath)
	}

	store := e.mgr.GetScoreStore()
	cachedMtime, err := store.GetMtime(absPath)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("failed to read cached mtime: %w", err)
	}

	if err == nil && cachedMtime == info.ModTime().Unix() {
		score, err := store.GetScore(absPath)
		if err == nil {
			e.view.patchFileIfAbsent(cfg.WorkspaceRoot, score, highDebtBar(cfg))
			return score, time.Since(start), nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("failed to load stored score: %w", err)
		}
		// Mtime row without a score row, treat as cold.
	}

	inputs, err := e.inputsForRescore(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}
	score, err := scoreFile(cfg, inputs, relPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to score %s: %w", relPath, err)
	}

	e.view.patchFile(cfg.WorkspaceRoot, score, highDebtBar(cfg))

	if err := store.UpsertScore(score, score.LastModified); err != nil {
		return nil, 0, fmt.Errorf("rescore completed but persisting the score failed: %w", err)
	}
	return score, time.Since(start), nil
}

// ExecuteRescore rescores one file and prints the resulting score.
// It serves as the main entry point for the 'rescore' command.
func (e *Engine) ExecuteRescore(ctx context.Context, cfg *contract.Config, fileArg string) error {
	score, duration, err := e.GetRescoreResults(ctx, cfg, fileArg)
	if err != nil {
		return err
	}
	return outwriter.PrintRescoreResults(score, cfg, duration)
}

// inputsForRescore returns memoized analysis inputs when a recent scan or
// rescore left them behind, otherwise rebuilds them from a fresh walk. The
// memo keeps a burst of watcher-triggered rescores from re-reading git
// history once per file.
func (e *Engine) inputsForRescore(ctx context.Context, cfg *contract.Config) (*AnalysisInputs, error) {
	key := inputsMemoKey(cfg.WorkspaceRoot, cfg.HistoryDays)
	if inputs, ok := e.memo.Get(key); ok {
		return inputs, nil
	}

	relPaths, err := ListSourceFiles(cfg.WorkspaceRoot, cfg.Excludes, cfg.PathFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace %s: %w", cfg.WorkspaceRoot, err)
	}
	inputs := buildAnalysisInputs(ctx, cfg, e.client, relPaths)
	e.memo.Add(key, inputs)
	return inputs, nil
}
