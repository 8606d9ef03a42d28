// Package parquet provides data structures and functions for loading
// check-in snapshots and exporting report tables using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/jreiser/trendreport/schema"
	"github.com/parquet-go/parquet-go"
)

// RawCheckin is the snapshot row for one check-in event.
// This struct maps to the tested/untested/predicted parquet files.
type RawCheckin struct {
	// SessionID identifies the individual within a source population
	SessionID string `parquet:"session_id,snappy"`

	// TimeSinceTest is the signed offset from the test event in nanoseconds
	TimeSinceTest int64 `parquet:"time_since_test,snappy"`

	// TestedPredicted is "Tested", "Predicted" or "Untested"
	TestedPredicted string `parquet:"tested_predicted_indicator,snappy"`

	// Positive is the test outcome (nullable: 0 negative, 1 positive)
	Positive *int32 `parquet:"positive,optional,snappy"`

	// Raw behavior answers (nullable categorical tokens)
	CombinedStayedHome        *string `parquet:"combined_stayed_home,optional,snappy"`
	CombinedSociallyDistanced *string `parquet:"combined_socially_distanced,optional,snappy"`
	CanceledAppointments      *string `parquet:"canceled_appointments,optional,snappy"`
	WoreMaskIndoors           *string `parquet:"wore_mask_indoors,optional,snappy"`
	WoreMaskOutdoors          *string `parquet:"wore_mask_outdoors,optional,snappy"`

	// EstimatePeopleContact is the self-reported contact count (nullable)
	EstimatePeopleContact *float64 `parquet:"estimate_people_contact,optional,snappy"`
}

// CohortSummary is the export row for one collapsed cohort group.
type CohortSummary struct {
	RunID                int64    `parquet:"run_id,snappy"`
	Day                  float64  `parquet:"days_since_test,snappy"`
	Cohort               string   `parquet:"tested_predicted_indicator,snappy"`
	Outcome              int32    `parquet:"outcome,snappy"`
	CohortLabel          string   `parquet:"cohort_label,snappy"`
	StayedHome           *float64 `parquet:"combined_stayed_home_NEW,optional,snappy"`
	SociallyDistanced    *float64 `parquet:"combined_socially_distanced_NEW,optional,snappy"`
	CanceledAppointments *float64 `parquet:"canceled_appointments_NEW,optional,snappy"`
	MaskIndoors          *float64 `parquet:"wore_mask_indoors_NEW,optional,snappy"`
	MaskOutdoors         *float64 `parquet:"wore_mask_outdoors_NEW,optional,snappy"`
	MaskWearing          *float64 `parquet:"mask_wearing,optional,snappy"`
	ContactMedian        *float64 `parquet:"estimate_people_contact_median,optional,snappy"`
	NObs                 int64    `parquet:"nobs,snappy"`
}

// LongBehavior is the export row for one (group, behavior) pair.
type LongBehavior struct {
	Day           float64  `parquet:"days_since_test,snappy"`
	CohortLabel   string   `parquet:"cohort_label,snappy"`
	Behavior      string   `parquet:"behavior,snappy"`
	BehaviorLabel string   `parquet:"behavior_label,snappy"`
	Value         *float64 `parquet:"value,optional,snappy"`
	NObs          int64    `parquet:"nobs,snappy"`
}

// ReportRun is the export row for one tracked report run.
type ReportRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	Scheme        string     `parquet:"scheme,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalRows     int32      `parquet:"total_rows,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// FileSource loads check-in populations from parquet snapshots on disk.
type FileSource struct{}

// ReadRawRecords loads one population snapshot. A missing or malformed
// snapshot aborts the run; there is no partial-success mode.
func (FileSource) ReadRawRecords(path string) ([]schema.RawRecord, error) {
	rows, err := parquet.ReadFile[RawCheckin](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	records := make([]schema.RawRecord, len(rows))
	for i, row := range rows {
		records[i] = schema.RawRecord{
			SessionID:                 row.SessionID,
			TimeSinceTest:             time.Duration(row.TimeSinceTest),
			TestedPredicted:           row.TestedPredicted,
			Positive:                  row.Positive,
			CombinedStayedHome:        row.CombinedStayedHome,
			CombinedSociallyDistanced: row.CombinedSociallyDistanced,
			CanceledAppointments:      row.CanceledAppointments,
			WoreMaskIndoors:           row.WoreMaskIndoors,
			WoreMaskOutdoors:          row.WoreMaskOutdoors,
			EstimatePeopleContact:     row.EstimatePeopleContact,
		}
	}
	return records, nil
}

// WriteRawRecords writes raw records back to a parquet snapshot. Used by
// tests and fixture tooling.
func WriteRawRecords(records []schema.RawRecord, outputPath string) error {
	rows := make([]RawCheckin, len(records))
	for i, rec := range records {
		rows[i] = RawCheckin{
			SessionID:                 rec.SessionID,
			TimeSinceTest:             int64(rec.TimeSinceTest),
			TestedPredicted:           rec.TestedPredicted,
			Positive:                  rec.Positive,
			CombinedStayedHome:        rec.CombinedStayedHome,
			CombinedSociallyDistanced: rec.CombinedSociallyDistanced,
			CanceledAppointments:      rec.CanceledAppointments,
			WoreMaskIndoors:           rec.WoreMaskIndoors,
			WoreMaskOutdoors:          rec.WoreMaskOutdoors,
			EstimatePeopleContact:     rec.EstimatePeopleContact,
		}
	}
	return writeParquet(rows, outputPath)
}

// WriteCohortSummaries writes collapsed cohort rows to a parquet file.
func WriteCohortSummaries(rows []schema.StoredCohortRow, outputPath string) error {
	return writeParquet(ConvertStoredCohortRows(rows), outputPath)
}

// WriteLongBehaviors writes long-form rows to a parquet file.
func WriteLongBehaviors(rows []schema.LongRow, outputPath string) error {
	out := make([]LongBehavior, len(rows))
	for i, row := range rows {
		out[i] = LongBehavior{
			Day:           row.Day,
			CohortLabel:   row.CohortLabel,
			Behavior:      string(row.Behavior),
			BehaviorLabel: row.BehaviorLabel,
			Value:         row.Value,
			NObs:          row.NObs,
		}
	}
	return writeParquet(out, outputPath)
}

// WriteReportRuns writes tracked report runs to a parquet file.
func WriteReportRuns(runs []schema.RunRecord, outputPath string) error {
	out := make([]ReportRun, len(runs))
	for i, run := range runs {
		out[i] = ReportRun{
			RunID:         run.RunID,
			Scheme:        run.Scheme,
			StartTime:     run.StartTime,
			EndTime:       run.EndTime,
			RunDurationMs: run.RunDurationMs,
			TotalRows:     run.TotalRows,
			ConfigParams:  run.ConfigParams,
		}
	}
	return writeParquet(out, outputPath)
}

// ConvertStoredCohortRows converts schema.StoredCohortRow to CohortSummary
// for parquet export.
func ConvertStoredCohortRows(rows []schema.StoredCohortRow) []CohortSummary {
	result := make([]CohortSummary, len(rows))
	for i, row := range rows {
		result[i] = CohortSummary{
			RunID:                row.RunID,
			Day:                  row.Day,
			Cohort:               row.Cohort,
			Outcome:              int32(row.Outcome),
			CohortLabel:          row.CohortLabel,
			StayedHome:           row.StayedHome,
			SociallyDistanced:    row.SociallyDistanced,
			CanceledAppointments: row.CanceledAppointments,
			MaskIndoors:          row.MaskIndoors,
			MaskOutdoors:         row.MaskOutdoors,
			MaskWearing:          row.MaskWearing,
			ContactMedian:        row.ContactMedian,
			NObs:                 row.NObs,
		}
	}
	return result
}

// writeParquet writes a slice of rows to a parquet file using struct
// schema inference from the row type's tags.
func writeParquet[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}
