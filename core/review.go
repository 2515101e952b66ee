package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// ExecuteReview records a supervision decision against a scored file. The
// decision lands in the durable store only; the next scan or rescore rebuilds
// the in-memory view from fresh data anyway.
// It serves as the main entry point for the 'review' command.
func (e *Engine) ExecuteReview(_ context.Context, cfg *contract.Config, fileArg, statusArg, note string) error {
	status := schema.SupervisionStatus(strings.ToLower(strings.TrimSpace(statusArg)))
	if _, ok := schema.ValidSupervisionStatuses[status]; !ok {
		return fmt.Errorf("invalid supervision status '%s'. must be none, acceptable, regressed", statusArg)
	}

	absPath, relPath, err := resolveWorkspacePath(cfg.WorkspaceRoot, fileArg)
	if err != nil {
		return err
	}

	store := e.mgr.GetScoreStore()
	score, err := store.GetScore(absPath)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no score recorded for %s, run 'debtengine scan' first", relPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load stored score: %w", err)
	}

	if err := store.UpdateSupervision(absPath, status, note, score.CompositeScore); err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}

	fmt.Printf("Marked %s as %s (score %.1f)\n", relPath, status, score.CompositeScore)
	return nil
}
