package core

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/store"
	"github.com/debtengine/debtengine/schema"
)

// newMockedEngine wires an engine against a mocked git client and score store.
func newMockedEngine() (*Engine, *contract.MockGitClient, *store.MockScoreStore) {
	mockClient := &contract.MockGitClient{}
	mockStore := &store.MockScoreStore{}
	mockMgr := &store.MockStoreManager{}
	mockMgr.On("GetScoreStore").Return(mockStore)
	return NewEngine(mockClient, mockMgr), mockClient, mockStore
}

func TestResolveWorkspacePath(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		expectedAbs string
		expectedRel string
		wantErr     bool
	}{
		{"relative path", "pkg/a.go", "/ws/pkg/a.go", "pkg/a.go", false},
		{"absolute path", "/ws/pkg/a.go", "/ws/pkg/a.go", "pkg/a.go", false},
		{"dot segments collapse", "pkg/../pkg/a.go", "/ws/pkg/a.go", "pkg/a.go", false},
		{"escapes the workspace", "../outside.go", "", "", true},
		{"absolute outside", "/etc/passwd", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, rel, err := resolveWorkspacePath("/ws", tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAbs, abs)
			assert.Equal(t, tt.expectedRel, rel)
		})
	}
}

func TestGetBreakdownResults_FromView(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	files := []schema.FileScore{cachedFile("pkg/a.go", 55)}
	engine.view.replace("/ws", buildAnalysisResult(files, schema.HighDebtThreshold, 0), nil)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	breakdown, _, err := engine.GetBreakdownResults(context.Background(), cfg, "pkg/a.go")

	require.NoError(t, err)
	assert.Equal(t, "pkg/a.go", breakdown.Path)
	assert.Equal(t, 55.0, breakdown.CompositeScore)
	assert.Len(t, breakdown.Components, 8)

	// The store is never consulted on a view hit
	mockStore.AssertNotCalled(t, "GetScore")
}

func TestGetBreakdownResults_FromStore(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	stored := cachedFile("pkg/a.go", 42)
	mockStore.On("GetScore", "/ws/pkg/a.go").Return(&stored, nil)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	breakdown, _, err := engine.GetBreakdownResults(context.Background(), cfg, "pkg/a.go")

	require.NoError(t, err)
	assert.Equal(t, 42.0, breakdown.CompositeScore)
	mockStore.AssertExpectations(t)
}

func TestGetBreakdownResults_NeverScored(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	mockStore.On("GetScore", "/ws/pkg/a.go").Return(nil, sql.ErrNoRows)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	_, _, err := engine.GetBreakdownResults(context.Background(), cfg, "pkg/a.go")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no score recorded")
	mockStore.AssertExpectations(t)
}

func TestGetBreakdownResults_OutsideWorkspace(t *testing.T) {
	engine, _, _ := newMockedEngine()

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	_, _, err := engine.GetBreakdownResults(context.Background(), cfg, "../elsewhere.go")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "outside the workspace")
}

func TestHydrateFromStore_FiltersForeignRows(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	mine := cachedFile("a.go", 80)
	foreign := schema.FileScore{
		FileFingerprint: schema.FileFingerprint{Path: "/other/b.go", RelativePath: "b.go"},
		CompositeScore:  10,
	}
	mockStore.On("GetAllScores").Return([]*schema.FileScore{&mine, &foreign}, nil)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	result, err := engine.hydrateFromStore(cfg)

	require.NoError(t, err)
	assert.Equal(t, 1, result.FileCount)
	assert.Equal(t, "a.go", result.Files[0].RelativePath)

	// The view and heatmap are published as a side effect
	_, ok := engine.view.current("/ws")
	assert.True(t, ok)
	heatmap, ok := engine.view.currentHeatmap("/ws")
	require.True(t, ok)
	assert.Len(t, heatmap.Children, 1)
}

func TestHydrateFromStore_NoRows(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	mockStore.On("GetAllScores").Return([]*schema.FileScore{}, nil)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	_, err := engine.hydrateFromStore(cfg)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no stored scores")
}

func TestEnsureView_PrefersLiveView(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	files := []schema.FileScore{cachedFile("a.go", 30)}
	engine.view.replace("/ws", buildAnalysisResult(files, schema.HighDebtThreshold, 0), nil)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	result, err := engine.ensureView(cfg)

	require.NoError(t, err)
	assert.Equal(t, 1, result.FileCount)
	mockStore.AssertNotCalled(t, "GetAllScores")
}

func TestGetHeatmapResults_HydratesWhenCold(t *testing.T) {
	engine, _, mockStore := newMockedEngine()

	stored := cachedFile("pkg/a.go", 60)
	mockStore.On("GetAllScores").Return([]*schema.FileScore{&stored}, nil)

	cfg := &contract.Config{WorkspaceRoot: "/ws"}
	heatmap, _, err := engine.GetHeatmapResults(context.Background(), cfg)

	require.NoError(t, err)
	require.Len(t, heatmap.Children, 1)
	assert.Equal(t, "pkg", heatmap.Children[0].Name)
	mockStore.AssertExpectations(t)

	// A second call serves the published view without another store read
	_, _, err = engine.GetHeatmapResults(context.Background(), cfg)
	require.NoError(t, err)
	mockStore.AssertNumberOfCalls(t, "GetAllScores", 1)
}
