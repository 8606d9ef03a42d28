package schema

import "time"

// RunRecord represents a single report run tracked in the results store.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	Scheme        string     `json:"scheme"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RunDurationMs *int32     `json:"run_duration_ms"`
	TotalRows     int32      `json:"total_rows"`
	ConfigParams  *string    `json:"config_params"`
}

// StoredCohortRow is the flat, column-per-behavior form of a LabeledRow
// used by the results store and the parquet export.
type StoredCohortRow struct {
	RunID                int64    `json:"run_id"`
	Day                  float64  `json:"day"`
	Cohort               string   `json:"cohort"`
	Outcome              int8     `json:"outcome"`
	CohortLabel          string   `json:"cohort_label"`
	StayedHome           *float64 `json:"combined_stayed_home_NEW"`
	SociallyDistanced    *float64 `json:"combined_socially_distanced_NEW"`
	CanceledAppointments *float64 `json:"canceled_appointments_NEW"`
	MaskIndoors          *float64 `json:"wore_mask_indoors_NEW"`
	MaskOutdoors         *float64 `json:"wore_mask_outdoors_NEW"`
	MaskWearing          *float64 `json:"mask_wearing"`
	ContactMedian        *float64 `json:"estimate_people_contact_median"`
	NObs                 int64    `json:"nobs"`
}

// StoreStatus summarizes the state of the results store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// FlattenLabeledRow converts a LabeledRow to its stored form.
func FlattenLabeledRow(runID int64, row LabeledRow) StoredCohortRow {
	return StoredCohortRow{
		RunID:                runID,
		Day:                  row.Key.Day,
		Cohort:               row.Key.Cohort,
		Outcome:              int8(row.Key.Outcome),
		CohortLabel:          row.CohortLabel,
		StayedHome:           row.Means[BehaviorStayedHome],
		SociallyDistanced:    row.Means[BehaviorSociallyDistanced],
		CanceledAppointments: row.Means[BehaviorCanceledAppointments],
		MaskIndoors:          row.Means[BehaviorMaskIndoors],
		MaskOutdoors:         row.Means[BehaviorMaskOutdoors],
		MaskWearing:          row.Means[BehaviorMaskWearing],
		ContactMedian:        row.ContactMedian,
		NObs:                 row.NObs,
	}
}
