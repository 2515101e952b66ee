package core

import (
	"path/filepath"
	"strings"

	"github.com/debtengine/debtengine/schema"
)

// buildHeatmap folds the flat file list into the directory rollup tree.
// Leaves carry their file's score and line count; internal nodes are
// aggregation points only, so the root never carries a score. The tree is
// always rebuilt wholesale from the current file list, never diffed.
func buildHeatmap(workspaceRoot string, files []schema.FileScore) *schema.HeatmapNode {
	root := &schema.HeatmapNode{
		Name:     filepath.Base(workspaceRoot),
		Path:     workspaceRoot,
		Children: []*schema.HeatmapNode{},
	}
	for i := range files {
		insertHeatmapLeaf(root, &files[i])
	}
	return root
}

// insertHeatmapLeaf walks or creates the directory nodes along the file's
// relative path and attaches the file as a leaf under the last one.
// Directory children are matched by name among children that are themselves
// directories, so a file and a directory sharing a name never collide.
func insertHeatmapLeaf(root *schema.HeatmapNode, file *schema.FileScore) {
	segments := strings.Split(file.RelativePath, "/")
	node := root
	for i, seg := range segments[:len(segments)-1] {
		var dir *schema.HeatmapNode
		for _, child := range node.Children {
			if child.Name == seg && child.IsDir() {
				dir = child
				break
			}
		}
		if dir == nil {
			dir = &schema.HeatmapNode{
				Name:     seg,
				Path:     strings.Join(segments[:i+1], "/"),
				Children: []*schema.HeatmapNode{},
			}
			node.Children = append(node.Children, dir)
		}
		node = dir
	}

	score := file.CompositeScore
	loc := file.LOC
	node.Children = append(node.Children, &schema.HeatmapNode{
		Name:  segments[len(segments)-1],
		Path:  file.RelativePath,
		Score: &score,
		LOC:   &loc,
	})
}
