package core

import (
	"context"
	"fmt"
	"time"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// GetWorkspaceResults assembles the workspace meta view: root, checked-out
// branch and the file count and time of the most recent scan.
func (e *Engine) GetWorkspaceResults(ctx context.Context, cfg *contract.Config) (*schema.WorkspaceMeta, time.Duration, error) {
	start := time.Now()

	meta := &schema.WorkspaceMeta{Root: cfg.WorkspaceRoot}

	if cfg.GitActive {
		branch, err := e.client.CurrentBranch(ctx, cfg.WorkspaceRoot)
		if err != nil {
			contract.LogWarn("Failed to resolve current branch", err)
		} else {
			meta.Branch = branch
		}
	}

	snaps, err := e.mgr.GetScoreStore().ListSnapshots(1)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read latest snapshot: %w", err)
	}
	if len(snaps) > 0 {
		meta.FileCount = snaps[0].FileCount
		meta.LastAnalysisAt = snaps[0].Timestamp
	}
	return meta, time.Since(start), nil
}

// ExecuteWorkspace prints the workspace meta view.
// It serves as the main entry point for the 'workspace' command.
func (e *Engine) ExecuteWorkspace(ctx context.Context, cfg *contract.Config) error {
	meta, duration, err := e.GetWorkspaceResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintWorkspaceResults(meta, cfg, duration)
}
