package history

import (
	"errors"
	"fmt"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/parquet"
)

// ExecuteExport performs the actual export of build history to a Parquet file.
func ExecuteExport(store contract.HistoryStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no build history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total build runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve build runs: %w", err)
	}

	parquetRuns := parquet.ConvertBuildRunRecords(runs)

	runsFile := outputFile + ".build_runs.parquet"
	if err := parquet.WriteBuildRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write build runs: %w", err)
	}
	fmt.Printf("Exported %d build runs to: %s\n", len(parquetRuns), runsFile)

	return nil
}
