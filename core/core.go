// Package core has the scoring engine and the executors behind every command.
package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// Engine owns the long-lived pieces every operation shares: the git client,
// the durable store manager, the in-memory result view and the memoized
// analysis inputs used by rapid successive rescores. It is dependency-injected
// into commands and the MCP server rather than living in package state.
type Engine struct {
	client contract.GitClient
	mgr    contract.StoreManager
	view   *resultCache
	memo   *expirable.LRU[string, *AnalysisInputs]
}

// NewEngine wires an engine from its collaborators.
func NewEngine(client contract.GitClient, mgr contract.StoreManager) *Engine {
	return &Engine{
		client: client,
		mgr:    mgr,
		view:   newResultCache(),
		memo:   expirable.NewLRU[string, *AnalysisInputs](inputsMemoSize, nil, inputsMemoTTL),
	}
}

// GetScanResults runs a full workspace scan and returns the rollup. The fresh
// view is published before the durable write, so a persistence failure leaves
// queryable in-memory results behind even though it surfaces as the
// operation's error.
func (e *Engine) GetScanResults(ctx context.Context, cfg *contract.Config, onProgress ProgressFunc) (*schema.AnalysisResult, time.Duration, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		outwriter.PrintScanHeader(cfg)
	}

	result, inputs, err := e.runWorkspaceScan(ctx, cfg, onProgress)
	if err != nil {
		return nil, 0, err
	}

	e.view.replace(cfg.WorkspaceRoot, result, buildHeatmap(cfg.WorkspaceRoot, result.Files))

	if err := e.persistScanResult(cfg, result, inputs); err != nil {
		return nil, 0, fmt.Errorf("scan completed but persisting scores failed: %w", err)
	}
	return result, time.Since(start), nil
}

// ExecuteScan runs the full workspace scan and prints the ranked results.
// It serves as the main entry point for the 'scan' command.
func (e *Engine) ExecuteScan(ctx context.Context, cfg *contract.Config) error {
	result, duration, err := e.GetScanResults(ctx, cfg, nil)
	if err != nil {
		return err
	}
	if err := outwriter.PrintScanResults(result, cfg, duration); err != nil {
		return err
	}
	return e.printPinnedAfterScan(cfg, result)
}

// GetHeatmapResults returns the directory rollup tree for the workspace,
// hydrating the view from the durable store when no scan ran in this process.
func (e *Engine) GetHeatmapResults(_ context.Context, cfg *contract.Config) (*schema.HeatmapNode, time.Duration, error) {
	start := time.Now()
	if heatmap, ok := e.view.currentHeatmap(cfg.WorkspaceRoot); ok {
		return heatmap, time.Since(start), nil
	}
	if _, err := e.hydrateFromStore(cfg); err != nil {
		return nil, 0, err
	}
	heatmap, ok := e.view.currentHeatmap(cfg.WorkspaceRoot)
	if !ok {
		return nil, 0, errors.New("no heatmap available")
	}
	return heatmap, time.Since(start), nil
}

// ExecuteHeatmap prints the directory rollup tree.
// It serves as the main entry point for the 'heatmap' command.
func (e *Engine) ExecuteHeatmap(ctx context.Context, cfg *contract.Config) error {
	heatmap, duration, err := e.GetHeatmapResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintHeatmapResults(heatmap, cfg, duration)
}

// GetBreakdownResults returns the per-signal explainability view for one
// file, from the in-memory view first and the durable store second.
func (e *Engine) GetBreakdownResults(_ context.Context, cfg *contract.Config, fileArg string) (*schema.FileBreakdown, time.Duration, error) {
	start := time.Now()
	absPath, relPath, err := resolveWorkspacePath(cfg.WorkspaceRoot, fileArg)
	if err != nil {
		return nil, 0, err
	}

	if score, ok := e.view.lookup(cfg.WorkspaceRoot, absPath, relPath); ok {
		breakdown := score.Breakdown()
		return &breakdown, time.Since(start), nil
	}

	score, err := e.mgr.GetScoreStore().GetScore(absPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("no score recorded for %s, run 'debtengine scan' first", relPath)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load stored score: %w", err)
	}
	breakdown := score.Breakdown()
	return &breakdown, time.Since(start), nil
}

// ExecuteBreakdown prints the per-signal breakdown for one file.
// It serves as the main entry point for the 'breakdown' command.
func (e *Engine) ExecuteBreakdown(ctx context.Context, cfg *contract.Config, fileArg string) error {
	breakdown, duration, err := e.GetBreakdownResults(ctx, cfg, fileArg)
	if err != nil {
		return err
	}
	return outwriter.PrintBreakdownResults(breakdown, cfg, duration)
}

// ensureView returns the current in-memory result for the workspace,
// rebuilding it from the durable store when this process has not scanned yet.
func (e *Engine) ensureView(cfg *contract.Config) (*schema.AnalysisResult, error) {
	if result, ok := e.view.current(cfg.WorkspaceRoot); ok {
		return result, nil
	}
	return e.hydrateFromStore(cfg)
}

// hydrateFromStore rebuilds the in-memory view from durable rows. Shared
// database backends can hold rows from several workspaces, so rows are
// filtered to the configured root before the view is published.
func (e *Engine) hydrateFromStore(cfg *contract.Config) (*schema.AnalysisResult, error) {
	rows, err := e.mgr.GetScoreStore().GetAllScores()
	if err != nil {
		return nil, fmt.Errorf("failed to load stored scores: %w", err)
	}

	prefix := cfg.WorkspaceRoot + string(filepath.Separator)
	files := make([]schema.FileScore, 0, len(rows))
	for _, row := range rows {
		if strings.HasPrefix(row.Path, prefix) {
			files = append(files, *row)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no stored scores for this workspace, run 'debtengine scan' first")
	}

	result := buildAnalysisResult(files, highDebtBar(cfg), 0)
	e.view.replace(cfg.WorkspaceRoot, result, buildHeatmap(cfg.WorkspaceRoot, files))
	return result, nil
}

// resolveWorkspacePath turns a user-supplied file argument, absolute or
// workspace-relative, into the absolute and slash-relative forms used as
// store and view keys. Paths outside the workspace are rejected.
func resolveWorkspacePath(root, arg string) (string, string, error) {
	absPath := filepath.Clean(arg)
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(root, arg)
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("file %s is outside the workspace %s", arg, root)
	}
	return absPath, filepath.ToSlash(rel), nil
}
