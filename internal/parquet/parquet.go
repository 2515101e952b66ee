// Package parquet provides data structures and functions for exporting
// debtengine scores to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/debtengine/debtengine/schema"
)

// FileScoreRow is the flattened export shape of one stored file score.
// This struct maps to the file_scores database table.
type FileScoreRow struct {
	// Path is the absolute path of the scored file (store primary key)
	Path string `parquet:"path,snappy"`

	// RelativePath is the path relative to the workspace root
	RelativePath string `parquet:"relative_path,snappy"`

	// Language is the detected language tag
	Language string `parquet:"language,snappy"`

	// LOC is the file's line count at scoring time
	LOC int32 `parquet:"loc,snappy"`

	// LastModified is the on-disk mtime captured at scoring time
	LastModified time.Time `parquet:"last_modified,snappy"`

	// CompositeScore is the weighted sum of the eight signal contributions
	CompositeScore float64 `parquet:"composite_score,snappy"`

	// Supervision is the reviewer tri-state (none, acceptable, regressed)
	Supervision string `parquet:"supervision,snappy"`

	// Raw signal scores, one column per signal in canonical order
	ChurnRate              float64 `parquet:"churn_rate,snappy"`
	CodeSmellDensity       float64 `parquet:"code_smell_density,snappy"`
	CouplingIndex          float64 `parquet:"coupling_index,snappy"`
	ChangeCoupling         float64 `parquet:"change_coupling,snappy"`
	TestCoverageGap        float64 `parquet:"test_coverage_gap,snappy"`
	KnowledgeConcentration float64 `parquet:"knowledge_concentration,snappy"`
	CyclomaticComplexity   float64 `parquet:"cyclomatic_complexity,snappy"`
	DecisionStaleness      float64 `parquet:"decision_staleness,snappy"`
}

// SnapshotRow is the export shape of one workspace debt snapshot.
// This struct maps to the debt_snapshots database table.
type SnapshotRow struct {
	// SnapshotID is the append-only log row id
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// TakenAt is when the snapshot was recorded
	TakenAt time.Time `parquet:"taken_at,snappy"`

	// CompositeScore is the workspace mean composite at snapshot time
	CompositeScore float64 `parquet:"composite_score,snappy"`

	// FileCount is the number of scored files
	FileCount int32 `parquet:"file_count,snappy"`

	// HighDebtCount is the number of files above the high-debt threshold
	HighDebtCount int32 `parquet:"high_debt_count,snappy"`
}

// WriteFileScoresParquet writes a slice of FileScoreRow structs to a Parquet file.
func WriteFileScoresParquet(data []FileScoreRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the FileScoreRow struct tags
	writer := parquet.NewGenericWriter[FileScoreRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSnapshotsParquet writes a slice of SnapshotRow structs to a Parquet file.
func WriteSnapshotsParquet(data []SnapshotRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the SnapshotRow struct tags
	writer := parquet.NewGenericWriter[SnapshotRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertFileScores flattens stored FileScores into Parquet export rows.
func ConvertFileScores(scores []*schema.FileScore) []FileScoreRow {
	result := make([]FileScoreRow, len(scores))
	for i, score := range scores {
		result[i] = FileScoreRow{
			Path:                   score.Path,
			RelativePath:           score.RelativePath,
			Language:               string(score.Language),
			LOC:                    int32(score.LOC),
			LastModified:           time.Unix(score.LastModified, 0).UTC(),
			CompositeScore:         score.CompositeScore,
			Supervision:            string(score.Supervision),
			ChurnRate:              score.Components.ChurnRate.RawScore,
			CodeSmellDensity:       score.Components.CodeSmellDensity.RawScore,
			CouplingIndex:          score.Components.CouplingIndex.RawScore,
			ChangeCoupling:         score.Components.ChangeCoupling.RawScore,
			TestCoverageGap:        score.Components.TestCoverageGap.RawScore,
			KnowledgeConcentration: score.Components.KnowledgeConcentration.RawScore,
			CyclomaticComplexity:   score.Components.CyclomaticComplexity.RawScore,
			DecisionStaleness:      score.Components.DecisionStaleness.RawScore,
		}
	}
	return result
}

// ConvertSnapshots flattens stored DebtSnapshots into Parquet export rows.
func ConvertSnapshots(snaps []*schema.DebtSnapshot) []SnapshotRow {
	result := make([]SnapshotRow, len(snaps))
	for i, snap := range snaps {
		result[i] = SnapshotRow{
			SnapshotID:     snap.ID,
			TakenAt:        time.Unix(snap.Timestamp, 0).UTC(),
			CompositeScore: snap.CompositeScore,
			FileCount:      int32(snap.FileCount),
			HighDebtCount:  int32(snap.HighDebtCount),
		}
	}
	return result
}
