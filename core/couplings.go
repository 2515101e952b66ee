package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/debtengine/debtengine/core/signal"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/schema"
)

// GetCouplingResults returns the change-coupling pairs for the workspace.
// With git available the co-change table is computed fresh from the history
// window; without it the pairs persisted by the last scan are served instead.
func (e *Engine) GetCouplingResults(ctx context.Context, cfg *contract.Config) ([]*schema.CouplingPair, time.Duration, error) {
	start := time.Now()

	if cfg.GitActive {
		out, err := e.client.ActivityLog(ctx, cfg.WorkspaceRoot, cfg.Since)
		if err == nil {
			table := signal.ParseActivityLog(out)
			pairs := buildCouplingPairs(cfg.WorkspaceRoot, table, e.viewFileList(cfg.WorkspaceRoot), cfg.MinCouplingRatio)
			return pairs, time.Since(start), nil
		}
		contract.LogWarn("Git history unavailable, serving persisted coupling pairs", err)
	}

	stored, err := e.mgr.GetScoreStore().ListCouplings(schema.MaxCouplingResults)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load persisted coupling pairs: %w", err)
	}
	minRatio := effectiveCouplingRatio(cfg.MinCouplingRatio)
	pairs := make([]*schema.CouplingPair, 0, len(stored))
	for _, p := range stored {
		if p.CouplingRatio >= minRatio {
			pairs = append(pairs, p)
		}
	}
	return pairs, time.Since(start), nil
}

// ExecuteCouplings prints the change-coupling pairs.
// It serves as the main entry point for the 'couplings' command.
func (e *Engine) ExecuteCouplings(ctx context.Context, cfg *contract.Config) error {
	pairs, duration, err := e.GetCouplingResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintCouplingResults(pairs, cfg, duration)
}

// buildCouplingPairs turns a co-change table into the reportable pair list:
// pairs seen together at least twice, at or above the minimum ratio, with at
// least one member among the known files when a known set is given, sorted by
// co-change count descending and capped. Import hints are resolved only for
// pairs that survive the cap, since each hint costs a file read.
func buildCouplingPairs(root string, table schema.CoChangeTable, known []string, minRatio float64) []*schema.CouplingPair {
	minRatio = effectiveCouplingRatio(minRatio)

	knownSet := make(map[string]struct{}, len(known))
	for _, rel := range known {
		knownSet[rel] = struct{}{}
	}

	pairs := make([]*schema.CouplingPair, 0, len(table.Pairs))
	for _, p := range table.Pairs {
		if p.Count < schema.MinCoChangeCount {
			continue
		}
		ratio := signal.PairRatio(table, p)
		if ratio < minRatio {
			continue
		}
		if len(knownSet) > 0 {
			_, okA := knownSet[p.FileA]
			_, okB := knownSet[p.FileB]
			if !okA && !okB {
				continue
			}
		}
		pairs = append(pairs, &schema.CouplingPair{
			FileA:         p.FileA,
			FileB:         p.FileB,
			CouplingRatio: ratio,
			CoChangeCount: p.Count,
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].CoChangeCount > pairs[j].CoChangeCount
	})
	if len(pairs) > schema.MaxCouplingResults {
		pairs = pairs[:schema.MaxCouplingResults]
	}

	for _, p := range pairs {
		p.HasImportLink = hasImportLink(root, p.FileA, p.FileB)
	}
	return pairs
}

// hasImportLink reports whether the first file's source mentions the second
// file's stem, a cheap textual stand-in for an import edge. An unreadable
// file yields false.
func hasImportLink(root, relA, relB string) bool {
	stemB := signal.Stem(relB)
	if stemB == "" {
		return false
	}
	source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relA)))
	if err != nil {
		return false
	}
	return strings.Contains(string(source), stemB)
}

// viewFileList returns the relative paths in the current view, or nil when
// the workspace has no view yet. Couplings tolerate the empty case by
// skipping the known-files filter.
func (e *Engine) viewFileList(workspace string) []string {
	result, ok := e.view.current(workspace)
	if !ok {
		return nil
	}
	files := make([]string, 0, len(result.Files))
	for i := range result.Files {
		files = append(files, result.Files[i].RelativePath)
	}
	return files
}

func effectiveCouplingRatio(minRatio float64) float64 {
	if minRatio <= 0 {
		return schema.DefaultCouplingRatio
	}
	return minRatio
}
