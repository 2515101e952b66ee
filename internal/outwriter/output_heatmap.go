package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// PrintHeatmapResults outputs the directory rollup tree.
func PrintHeatmapResults(root *schema.HeatmapNode, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, root)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"path", "score", "label", "loc"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeHeatmapLeaves(csvWriter, root, fmtFloat)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printHeatmapTree(root, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeHeatmapLeaves emits one CSV record per leaf, depth first in stored order.
func writeHeatmapLeaves(csvWriter *csv.Writer, node *schema.HeatmapNode, fmtFloat func(float64) string) error {
	if !node.IsDir() {
		loc := 0
		if node.LOC != nil {
			loc = *node.LOC
		}
		score := 0.0
		if node.Score != nil {
			score = *node.Score
		}
		rec := []string{node.Path, fmtFloat(score), schema.GetPlainLabel(score), strconv.Itoa(loc)}
		return csvWriter.Write(rec)
	}
	for _, child := range node.Children {
		if err := writeHeatmapLeaves(csvWriter, child, fmtFloat); err != nil {
			return err
		}
	}
	return nil
}

// printHeatmapTree renders the tree as indented text. Directories are
// aggregation points and print without a score; leaves print score and label.
// The tree is walked in stored order and never reordered, it is shared with
// the live cache.
func printHeatmapTree(root *schema.HeatmapNode, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	// First pass sizes the name column so scores line up.
	nameWidth := 0
	var measure func(node *schema.HeatmapNode, depth int)
	measure = func(node *schema.HeatmapNode, depth int) {
		width := depth*2 + len(node.Name)
		if node.IsDir() {
			width++ // trailing slash
		}
		if width > nameWidth {
			nameWidth = width
		}
		for _, child := range node.Children {
			measure(child, depth+1)
		}
	}
	measure(root, 0)

	leafCount := 0
	var walk func(node *schema.HeatmapNode, depth int) error
	walk = func(node *schema.HeatmapNode, depth int) error {
		indent := strings.Repeat("  ", depth)
		if node.IsDir() {
			if _, err := fmt.Fprintf(writer, "%s%s/\n", indent, node.Name); err != nil {
				return err
			}
			for _, child := range node.Children {
				if err := walk(child, depth+1); err != nil {
					return err
				}
			}
			return nil
		}

		leafCount++
		score := 0.0
		if node.Score != nil {
			score = *node.Score
		}
		padding := nameWidth - depth*2 - len(node.Name)
		if padding < 0 {
			padding = 0
		}
		_, err := fmt.Fprintf(writer, "%s%s%s  %6s  %s\n",
			indent, node.Name, strings.Repeat(" ", padding),
			fmtFloat(score), contract.GetColorLabel(score))
		return err
	}

	if err := walk(root, 0); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "\nHeatmap over %d files in %v\n", leafCount, duration)
	return err
}
