package core

import (
	"sync"
	"time"

	"github.com/debtengine/debtengine/schema"
)

// resultCache is the in-memory view of the most recent analysis for the
// single open workspace. One coarse mutex guards it; scores are computed
// outside the critical section and spliced in afterwards, so readers always
// see a self-consistent snapshot, possibly a stale one. A full scan replacing
// the view discards any single-file patch that interleaved with it; that is
// the accepted last-full-writer-wins race.
type resultCache struct {
	mu        sync.Mutex
	workspace string
	result    *schema.AnalysisResult
	heatmap   *schema.HeatmapNode
}

func newResultCache() *resultCache {
	return &resultCache{}
}

// replace publishes a full scan wholesale.
func (c *resultCache) replace(workspace string, result *schema.AnalysisResult, heatmap *schema.HeatmapNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workspace = workspace
	c.result = result
	c.heatmap = heatmap
}

// current returns the live result when the view is bound to this workspace.
func (c *resultCache) current(workspace string) (*schema.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workspace != workspace || c.result == nil {
		return nil, false
	}
	return c.result, true
}

// currentHeatmap returns the live heatmap when the view is bound to this workspace.
func (c *resultCache) currentHeatmap(workspace string) (*schema.HeatmapNode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workspace != workspace || c.heatmap == nil {
		return nil, false
	}
	return c.heatmap, true
}

// lookup finds a file in the live result by absolute or relative path and
// returns a copy of it.
func (c *resultCache) lookup(workspace, absPath, relPath string) (*schema.FileScore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workspace != workspace || c.result == nil {
		return nil, false
	}
	for i := range c.result.Files {
		f := &c.result.Files[i]
		if f.Path == absPath || f.RelativePath == relPath {
			score := *f
			return &score, true
		}
	}
	return nil, false
}

// patchFile upserts one rescored file into the view. When the view is empty
// or bound to a different workspace it is replaced wholesale with a
// single-file result; otherwise the file list is copied, the entry upserted
// by absolute or relative path, the rollup recomputed and the heatmap rebuilt
// from scratch. Old snapshots held by readers stay untouched.
func (c *resultCache) patchFile(workspace string, score *schema.FileScore, highDebtBar float64) {
	c.patch(workspace, score, highDebtBar, false)
}

// patchFileIfAbsent patches the view only when the file is not already
// present, covering a cached hit served from the durable store in a process
// that has not scored this file yet.
func (c *resultCache) patchFileIfAbsent(workspace string, score *schema.FileScore, highDebtBar float64) {
	c.patch(workspace, score, highDebtBar, true)
}

func (c *resultCache) patch(workspace string, score *schema.FileScore, highDebtBar float64, onlyIfAbsent bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.workspace != workspace || c.result == nil {
		files := []schema.FileScore{*score}
		c.workspace = workspace
		c.result = buildAnalysisResult(files, highDebtBar, 0)
		c.heatmap = buildHeatmap(workspace, files)
		return
	}

	files := make([]schema.FileScore, len(c.result.Files))
	copy(files, c.result.Files)

	replaced := false
	for i := range files {
		if files[i].Path == score.Path || files[i].RelativePath == score.RelativePath {
			if onlyIfAbsent {
				return
			}
			files[i] = *score
			replaced = true
			break
		}
	}
	if !replaced {
		files = append(files, *score)
	}

	c.result = buildAnalysisResult(files, highDebtBar, time.Duration(c.result.DurationMS)*time.Millisecond)
	c.heatmap = buildHeatmap(workspace, files)
}

// buildAnalysisResult computes the workspace rollup over a file list.
func buildAnalysisResult(files []schema.FileScore, highDebtBar float64, duration time.Duration) *schema.AnalysisResult {
	total := 0.0
	highDebt := 0
	for i := range files {
		total += files[i].CompositeScore
		if files[i].CompositeScore > highDebtBar {
			highDebt++
		}
	}
	mean := 0.0
	if len(files) > 0 {
		mean = total / float64(len(files))
	}
	return &schema.AnalysisResult{
		WorkspaceScore: mean,
		FileCount:      len(files),
		HighDebtCount:  highDebt,
		Files:          files,
		DurationMS:     duration.Milliseconds(),
	}
}
