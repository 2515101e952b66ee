package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// ExecuteWatchlistPin pins a file to the watchlist.
// It serves as the main entry point for the 'pin' command.
func (e *Engine) ExecuteWatchlistPin(_ context.Context, cfg *contract.Config, fileArg string) error {
	absPath, relPath, err := resolveWorkspacePath(cfg.WorkspaceRoot, fileArg)
	if err != nil {
		return err
	}

	store := e.mgr.GetScoreStore()
	pins, err := store.ListPins()
	if err != nil {
		return fmt.Errorf("failed to list pins: %w", err)
	}

	alreadyPinned := false
	for _, pin := range pins {
		if pin.FilePath == absPath {
			alreadyPinned = true
			break
		}
	}
	if !alreadyPinned && len(pins) >= schema.MaxWatchlistPins {
		return fmt.Errorf("watchlist is full (max %d pins), unpin a file first", schema.MaxWatchlistPins)
	}

	if err := store.PinFile(absPath, time.Now()); err != nil {
		return fmt.Errorf("failed to pin %s: %w", relPath, err)
	}

	fmt.Printf("Pinned %s\n", relPath)
	return nil
}

// ExecuteWatchlistUnpin removes a file from the watchlist.
// It serves as the main entry point for the 'unpin' command.
func (e *Engine) ExecuteWatchlistUnpin(_ context.Context, cfg *contract.Config, fileArg string) error {
	absPath, relPath, err := resolveWorkspacePath(cfg.WorkspaceRoot, fileArg)
	if err != nil {
		return err
	}

	err = e.mgr.GetScoreStore().UnpinFile(absPath)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s is not pinned", relPath)
	}
	if err != nil {
		return fmt.Errorf("failed to unpin %s: %w", relPath, err)
	}

	fmt.Printf("Unpinned %s\n", relPath)
	return nil
}

// GetWatchlistResults joins every pin with its current stored score.
func (e *Engine) GetWatchlistResults(_ context.Context, cfg *contract.Config) ([]schema.WatchlistEntry, time.Duration, error) {
	start := time.Now()

	store := e.mgr.GetScoreStore()
	pins, err := store.ListPins()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pins: %w", err)
	}

	entries := make([]schema.WatchlistEntry, 0, len(pins))
	for _, pin := range pins {
		entry := schema.WatchlistEntry{
			RelativePath: contract.ToRelPath(cfg.WorkspaceRoot, pin.FilePath),
			PinnedAt:     pin.PinnedAt,
		}
		if score, err := store.GetScore(pin.FilePath); err == nil {
			composite := score.CompositeScore
			entry.Score = &composite
		}
		entries = append(entries, entry)
	}
	return entries, time.Since(start), nil
}

// ExecuteWatchlistPins prints the pinned files with their current scores.
// It serves as the main entry point for the 'pins' command.
func (e *Engine) ExecuteWatchlistPins(ctx context.Context, cfg *contract.Config) error {
	entries, duration, err := e.GetWatchlistResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintWatchlistResults(entries, cfg, duration)
}

// printPinnedAfterScan appends a short watchlist section to text scan output
// so pinned files stay visible even when they rank below the result limit.
func (e *Engine) printPinnedAfterScan(cfg *contract.Config, result *schema.AnalysisResult) error {
	if cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return nil
	}

	pins, err := e.mgr.GetScoreStore().ListPins()
	if err != nil {
		contract.LogWarn("Failed to list watchlist pins", err)
		return nil
	}
	if len(pins) == 0 {
		return nil
	}

	fmt.Println("\nWatchlist:")
	for _, pin := range pins {
		rel := contract.ToRelPath(cfg.WorkspaceRoot, pin.FilePath)
		found := false
		for i := range result.Files {
			if result.Files[i].Path == pin.FilePath {
				fmt.Printf("  - %s (score %.1f)\n", rel, result.Files[i].CompositeScore)
				found = true
				break
			}
		}
		if !found {
			fmt.Printf("  - %s (not scored in this run)\n", rel)
		}
	}
	return nil
}
