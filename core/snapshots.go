package core

import (
	"context"
	"fmt"
	"time"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// GetSnapshotResults returns the most recent debt snapshots, newest first.
func (e *Engine) GetSnapshotResults(_ context.Context, cfg *contract.Config) ([]*schema.DebtSnapshot, time.Duration, error) {
	start := time.Now()
	snaps, err := e.mgr.GetScoreStore().ListSnapshots(cfg.ResultLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list debt snapshots: %w", err)
	}
	return snaps, time.Since(start), nil
}

// ExecuteSnapshots prints the workspace debt trend.
// It serves as the main entry point for the 'snapshots' command.
func (e *Engine) ExecuteSnapshots(ctx context.Context, cfg *contract.Config) error {
	snaps, duration, err := e.GetSnapshotResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintSnapshotResults(snaps, cfg, duration)
}
