package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtengine/debtengine/schema"
)

func cachedFile(relPath string, score float64) schema.FileScore {
	return schema.FileScore{
		FileFingerprint: schema.FileFingerprint{
			Path:         "/ws/" + relPath,
			RelativePath: relPath,
			LOC:          10,
		},
		CompositeScore: score,
	}
}

func TestBuildAnalysisResult(t *testing.T) {
	files := []schema.FileScore{
		cachedFile("a.go", 90),
		cachedFile("b.go", 40),
		cachedFile("c.go", 65),
	}

	result := buildAnalysisResult(files, schema.HighDebtThreshold, 2*time.Second)

	assert.Equal(t, 3, result.FileCount)
	assert.InDelta(t, 65.0, result.WorkspaceScore, 0.001)
	assert.Equal(t, 1, result.HighDebtCount, "only scores strictly above the bar count")
	assert.Equal(t, int64(2000), result.DurationMS)
}

func TestBuildAnalysisResult_Empty(t *testing.T) {
	result := buildAnalysisResult(nil, schema.HighDebtThreshold, 0)
	assert.Equal(t, 0, result.FileCount)
	assert.Equal(t, 0.0, result.WorkspaceScore)
	assert.Equal(t, 0, result.HighDebtCount)
}

func TestResultCache_ReplaceAndCurrent(t *testing.T) {
	cache := newResultCache()

	_, ok := cache.current("/ws")
	assert.False(t, ok, "empty cache serves nothing")

	files := []schema.FileScore{cachedFile("a.go", 50)}
	result := buildAnalysisResult(files, schema.HighDebtThreshold, 0)
	cache.replace("/ws", result, buildHeatmap("/ws", files))

	got, ok := cache.current("/ws")
	require.True(t, ok)
	assert.Equal(t, result, got)

	heatmap, ok := cache.currentHeatmap("/ws")
	require.True(t, ok)
	assert.Len(t, heatmap.Children, 1)

	// A different workspace sees nothing
	_, ok = cache.current("/other")
	assert.False(t, ok)
	_, ok = cache.currentHeatmap("/other")
	assert.False(t, ok)
}

func TestResultCache_Lookup(t *testing.T) {
	cache := newResultCache()
	files := []schema.FileScore{cachedFile("pkg/a.go", 50)}
	cache.replace("/ws", buildAnalysisResult(files, schema.HighDebtThreshold, 0), nil)

	byAbs, ok := cache.lookup("/ws", "/ws/pkg/a.go", "nope")
	require.True(t, ok)
	assert.Equal(t, 50.0, byAbs.CompositeScore)

	byRel, ok := cache.lookup("/ws", "/nope", "pkg/a.go")
	require.True(t, ok)
	assert.Equal(t, 50.0, byRel.CompositeScore)

	// Lookup returns a copy
	byAbs.CompositeScore = 99
	again, ok := cache.lookup("/ws", "/ws/pkg/a.go", "")
	require.True(t, ok)
	assert.Equal(t, 50.0, again.CompositeScore)

	_, ok = cache.lookup("/ws", "/ws/missing.go", "missing.go")
	assert.False(t, ok)
}

func TestResultCache_PatchFile(t *testing.T) {
	cache := newResultCache()
	files := []schema.FileScore{cachedFile("a.go", 50), cachedFile("b.go", 70)}
	cache.replace("/ws", buildAnalysisResult(files, schema.HighDebtThreshold, 0), buildHeatmap("/ws", files))

	before, _ := cache.current("/ws")

	// Replacing an existing entry recomputes the rollup
	updated := cachedFile("a.go", 90)
	cache.patchFile("/ws", &updated, schema.HighDebtThreshold)

	after, ok := cache.current("/ws")
	require.True(t, ok)
	assert.Equal(t, 2, after.FileCount)
	assert.InDelta(t, 80.0, after.WorkspaceScore, 0.001)
	assert.Equal(t, 2, after.HighDebtCount)

	// Old snapshots held by readers stay intact
	assert.InDelta(t, 60.0, before.WorkspaceScore, 0.001)
	assert.Equal(t, 50.0, before.Files[0].CompositeScore)

	// A new file appends
	extra := cachedFile("c.go", 30)
	cache.patchFile("/ws", &extra, schema.HighDebtThreshold)
	after, _ = cache.current("/ws")
	assert.Equal(t, 3, after.FileCount)

	// The heatmap is rebuilt alongside
	heatmap, ok := cache.currentHeatmap("/ws")
	require.True(t, ok)
	assert.Len(t, heatmap.Children, 3)
}

func TestResultCache_PatchFile_ColdView(t *testing.T) {
	cache := newResultCache()

	// Patching an empty cache publishes a single-file view
	score := cachedFile("a.go", 75)
	cache.patchFile("/ws", &score, schema.HighDebtThreshold)

	result, ok := cache.current("/ws")
	require.True(t, ok)
	assert.Equal(t, 1, result.FileCount)
	assert.Equal(t, 1, result.HighDebtCount)

	// Patching under a different workspace replaces the binding wholesale
	other := cachedFile("z.go", 10)
	cache.patchFile("/elsewhere", &other, schema.HighDebtThreshold)

	_, ok = cache.current("/ws")
	assert.False(t, ok)
	result, ok = cache.current("/elsewhere")
	require.True(t, ok)
	assert.Equal(t, 1, result.FileCount)
}

func TestResultCache_PatchFileIfAbsent(t *testing.T) {
	cache := newResultCache()
	files := []schema.FileScore{cachedFile("a.go", 50)}
	cache.replace("/ws", buildAnalysisResult(files, schema.HighDebtThreshold, 0), nil)

	// Present file: view keeps the existing entry
	stale := cachedFile("a.go", 90)
	cache.patchFileIfAbsent("/ws", &stale, schema.HighDebtThreshold)
	got, ok := cache.lookup("/ws", "/ws/a.go", "a.go")
	require.True(t, ok)
	assert.Equal(t, 50.0, got.CompositeScore)

	// Absent file: appended as usual
	fresh := cachedFile("b.go", 20)
	cache.patchFileIfAbsent("/ws", &fresh, schema.HighDebtThreshold)
	result, _ := cache.current("/ws")
	assert.Equal(t, 2, result.FileCount)
}
