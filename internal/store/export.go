package store

import (
	"errors"
	"fmt"

	"github.com/debtengine/debtengine/internal/parquet"
)

// ExecuteStoreExport writes the stored file scores and debt snapshots to a
// pair of Parquet files named after the given prefix.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	ss := Manager.GetScoreStore()

	// Check if there's any data to export
	status, err := ss.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.FileCount == 0 {
		return errors.New("no scored files found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Stored file scores: %d\n", status.FileCount)
	fmt.Printf("Debt snapshots: %d\n", status.SnapshotCount)

	scores, err := ss.GetAllScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve file scores: %w", err)
	}

	// A limit of zero returns the whole snapshot log
	snaps, err := ss.ListSnapshots(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshots: %w", err)
	}

	scoreRows := parquet.ConvertFileScores(scores)
	snapRows := parquet.ConvertSnapshots(snaps)

	scoresFile := outputFile + ".file_scores.parquet"
	if err := parquet.WriteFileScoresParquet(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write file scores: %w", err)
	}
	fmt.Printf("Exported %d file scores to: %s\n", len(scoreRows), scoresFile)

	snapsFile := outputFile + ".snapshots.parquet"
	if err := parquet.WriteSnapshotsParquet(snapRows, snapsFile); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	fmt.Printf("Exported %d snapshots to: %s\n", len(snapRows), snapsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
