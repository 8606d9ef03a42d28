// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/jreiser/trendreport/schema"
)

// ResultsStore defines the interface for tracking report runs and
// persisting collapsed cohort rows. This allows the store layer to be
// mocked for testing.
type ResultsStore interface {
	// BeginRun creates a new report run and returns its unique ID.
	BeginRun(scheme schema.LabelScheme, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the report run with completion data.
	EndRun(runID int64, endTime time.Time, totalRows int) error

	// RecordCohortRows stores the collapsed rows of one run.
	RecordCohortRows(runID int64, rows []schema.LabeledRow) error

	// GetStatus returns status information about the results store.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns retrieves all report runs from the store.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllCohortRows retrieves all stored cohort rows.
	GetAllCohortRows() ([]schema.StoredCohortRow, error)

	// Clear drops all stored runs and rows.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// RecordSource loads raw check-in populations from persisted snapshots.
// The production implementation reads parquet files; tests substitute
// in-memory fixtures.
type RecordSource interface {
	// ReadRawRecords loads one population snapshot.
	ReadRawRecords(path string) ([]schema.RawRecord, error)
}
