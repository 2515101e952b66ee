package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtengine/debtengine/schema"
)

func heatmapFile(relPath string, score float64, loc int) schema.FileScore {
	return schema.FileScore{
		FileFingerprint: schema.FileFingerprint{
			Path:         "/ws/" + relPath,
			RelativePath: relPath,
			LOC:          loc,
		},
		CompositeScore: score,
	}
}

func TestBuildHeatmap(t *testing.T) {
	files := []schema.FileScore{
		heatmapFile("main.go", 40, 100),
		heatmapFile("pkg/util.go", 70, 200),
		heatmapFile("pkg/sub/deep.go", 20, 50),
	}

	root := buildHeatmap("/ws", files)

	require.NotNil(t, root)
	assert.Equal(t, "ws", root.Name)
	assert.Equal(t, "/ws", root.Path)
	assert.Nil(t, root.Score, "aggregation nodes never carry a score")
	assert.True(t, root.IsDir())
	require.Len(t, root.Children, 2)

	// Leaves attach in file order
	leaf := root.Children[0]
	assert.Equal(t, "main.go", leaf.Name)
	assert.Equal(t, "main.go", leaf.Path)
	assert.False(t, leaf.IsDir())
	require.NotNil(t, leaf.Score)
	assert.Equal(t, 40.0, *leaf.Score)
	require.NotNil(t, leaf.LOC)
	assert.Equal(t, 100, *leaf.LOC)

	pkg := root.Children[1]
	assert.Equal(t, "pkg", pkg.Name)
	assert.Equal(t, "pkg", pkg.Path)
	assert.Nil(t, pkg.Score)
	require.Len(t, pkg.Children, 2)
	assert.Equal(t, "util.go", pkg.Children[0].Name)

	sub := pkg.Children[1]
	assert.Equal(t, "sub", sub.Name)
	assert.Equal(t, "pkg/sub", sub.Path)
	assert.Nil(t, sub.Score)
	require.Len(t, sub.Children, 1)
	assert.Equal(t, "pkg/sub/deep.go", sub.Children[0].Path)
}

func TestBuildHeatmap_SharedDirectories(t *testing.T) {
	files := []schema.FileScore{
		heatmapFile("pkg/a.go", 10, 10),
		heatmapFile("pkg/b.go", 20, 20),
	}

	root := buildHeatmap("/ws", files)

	// Both leaves land under a single pkg node
	require.Len(t, root.Children, 1)
	assert.Equal(t, "pkg", root.Children[0].Name)
	assert.Len(t, root.Children[0].Children, 2)
}

func TestBuildHeatmap_FileAndDirShareName(t *testing.T) {
	files := []schema.FileScore{
		heatmapFile("parser.go", 10, 10),
		heatmapFile("parser.go/impossible.go", 20, 20), // pathological but must not collide
	}

	root := buildHeatmap("/ws", files)

	require.Len(t, root.Children, 2)
	assert.False(t, root.Children[0].IsDir())
	assert.True(t, root.Children[1].IsDir())
}

func TestBuildHeatmap_Empty(t *testing.T) {
	root := buildHeatmap("/ws", nil)
	require.NotNil(t, root)
	assert.Empty(t, root.Children)
	assert.True(t, root.IsDir(), "the root stays an aggregation node even when empty")
}

func TestBuildHeatmap_LeafValuesAreCopies(t *testing.T) {
	files := []schema.FileScore{heatmapFile("a.go", 33, 5)}
	root := buildHeatmap("/ws", files)

	files[0].CompositeScore = 99
	assert.Equal(t, 33.0, *root.Children[0].Score, "mutating the file list must not reach the tree")
}
