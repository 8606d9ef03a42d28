package iostore

import (
	"errors"
	"fmt"

	"github.com/jreiser/trendreport/internal/parquet"
)

// ExecuteStoreExport performs the actual export of stored report data to Parquet files.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the results store
	store := Manager.GetResultsStore()
	if store == nil {
		return errors.New("results store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no report data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total cohort rows: %d\n", status.TableSizes[cohortRowsTable])

	// Retrieve all report runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}

	// Retrieve all cohort rows
	cohortRows, err := store.GetAllCohortRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve cohort rows: %w", err)
	}

	// Write report runs to Parquet
	runsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRuns(runs, runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(runs), runsFile)

	// Write cohort rows to Parquet
	cohortRowsFile := outputFile + ".cohort_rows.parquet"
	if err := parquet.WriteCohortSummaries(cohortRows, cohortRowsFile); err != nil {
		return fmt.Errorf("failed to write cohort rows: %w", err)
	}
	fmt.Printf("Exported %d cohort rows to: %s\n", len(cohortRows), cohortRowsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
