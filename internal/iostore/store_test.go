package iostore

import (
	"testing"
	"time"

	"github.com/jreiser/trendreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func labeledRow(day float64, cohort string, outcome schema.OutcomeCode, label string) schema.LabeledRow {
	return schema.LabeledRow{
		CollapsedRow: schema.CollapsedRow{
			Key: schema.GroupKey{Day: day, Cohort: cohort, Outcome: outcome},
			Means: map[schema.Behavior]*float64{
				schema.BehaviorStayedHome:  floatPtr(0.5),
				schema.BehaviorMaskWearing: floatPtr(0.75),
			},
			ContactMedian: floatPtr(3),
			NObs:          10,
		},
		CohortLabel: label,
	}
}

func TestResultsStore_NoneBackend(t *testing.T) {
	store, err := NewResultsStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(schema.TestedVsUntestedScheme, time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.RecordCohortRows(1, []schema.LabeledRow{labeledRow(0, "Tested", schema.OutcomePositive, "Tested-Positive")}))
	assert.NoError(t, store.EndRun(1, time.Now(), 1))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestResultsStore_SQLite(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	configParams := map[string]any{
		"data_dir":  "/test/data",
		"long":      false,
		"precision": 2,
	}
	runID, err := store.BeginRun(schema.TestedVsUntestedScheme, startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	rows := []schema.LabeledRow{
		labeledRow(0, "Tested", schema.OutcomeNegative, "Tested-Negative"),
		labeledRow(0, "Tested", schema.OutcomePositive, "Tested-Positive"),
		labeledRow(0, "Untested", schema.OutcomeNA, "Untested"),
	}
	require.NoError(t, store.RecordCohortRows(runID, rows))
	require.NoError(t, store.EndRun(runID, time.Now(), len(rows)))
}

func TestResultsStore_MultipleRuns(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var runIDs []int64
	for i := range 3 {
		id, err := store.BeginRun(schema.TestedVsPredictedScheme, time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		runIDs = append(runIDs, id)

		require.NoError(t, store.RecordCohortRows(id, []schema.LabeledRow{
			labeledRow(float64(i), "Tested", schema.OutcomePositive, "Tested-Positive"),
		}))
		require.NoError(t, store.EndRun(id, time.Now(), 1))
	}

	assert.Equal(t, 3, len(runIDs))
	assert.NotEqual(t, runIDs[0], runIDs[1])
	assert.NotEqual(t, runIDs[1], runIDs[2])
}

func TestResultsStore_RunDuration(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	runID, err := store.BeginRun(schema.TestedVsUntestedScheme, startTime, nil)
	require.NoError(t, err)

	endTime := startTime.Add(250 * time.Millisecond)
	require.NoError(t, store.EndRun(runID, endTime, 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, string(schema.TestedVsUntestedScheme), run.Scheme)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(250), *run.RunDurationMs)
	require.NotNil(t, run.EndTime)
	assert.Equal(t, int32(1), run.TotalRows)
}

func TestResultsStore_GetAllRuns(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	startTime := time.Now()
	configs := []map[string]any{
		{"long": false},
		{"long": true, "smooth_window": 7},
	}

	var runIDs []int64
	for _, config := range configs {
		id, err := store.BeginRun(schema.TestedVsUntestedScheme, startTime, config)
		require.NoError(t, err)
		runIDs = append(runIDs, id)

		require.NoError(t, store.EndRun(id, startTime.Add(time.Minute), 1))
	}

	runs, err = store.GetAllRuns()
	assert.NoError(t, err)
	require.Len(t, runs, 2)

	for i, run := range runs {
		assert.Equal(t, runIDs[i], run.RunID)
		assert.Equal(t, int32(1), run.TotalRows)
		require.NotNil(t, run.RunDurationMs)
		assert.Greater(t, *run.RunDurationMs, int32(0))
		assert.NotNil(t, run.ConfigParams)
	}
}

func TestResultsStore_GetAllCohortRows(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	rows, err := store.GetAllCohortRows()
	assert.NoError(t, err)
	assert.Empty(t, rows)

	runID, err := store.BeginRun(schema.TestedVsUntestedScheme, time.Now(), nil)
	require.NoError(t, err)

	in := schema.LabeledRow{
		CollapsedRow: schema.CollapsedRow{
			Key: schema.GroupKey{Day: 2.5, Cohort: "Tested", Outcome: schema.OutcomePositive},
			Means: map[schema.Behavior]*float64{
				schema.BehaviorStayedHome:        floatPtr(0.25),
				schema.BehaviorSociallyDistanced: nil,
				schema.BehaviorMaskWearing:       floatPtr(1),
			},
			ContactMedian: floatPtr(4.5),
			NObs:          17,
		},
		CohortLabel: "Tested-Positive",
	}
	require.NoError(t, store.RecordCohortRows(runID, []schema.LabeledRow{in}))

	rows, err = store.GetAllCohortRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, runID, row.RunID)
	assert.Equal(t, 2.5, row.Day)
	assert.Equal(t, "Tested", row.Cohort)
	assert.Equal(t, int8(schema.OutcomePositive), row.Outcome)
	assert.Equal(t, "Tested-Positive", row.CohortLabel)
	require.NotNil(t, row.StayedHome)
	assert.Equal(t, 0.25, *row.StayedHome)
	assert.Nil(t, row.SociallyDistanced, "missing aggregates survive the round trip as NULL")
	require.NotNil(t, row.MaskWearing)
	assert.Equal(t, 1.0, *row.MaskWearing)
	require.NotNil(t, row.ContactMedian)
	assert.Equal(t, 4.5, *row.ContactMedian)
	assert.Equal(t, int64(17), row.NObs)
}

func TestResultsStore_GetStatus(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)

	runID, err := store.BeginRun(schema.TestedVsUntestedScheme, time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordCohortRows(runID, []schema.LabeledRow{
		labeledRow(0, "Tested", schema.OutcomeNegative, "Tested-Negative"),
		labeledRow(1, "Tested", schema.OutcomeNegative, "Tested-Negative"),
	}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
	assert.False(t, status.OldestRunTime.IsZero())
	assert.Equal(t, int64(1), status.TableSizes[reportRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[cohortRowsTable])
}

func TestResultsStore_Clear(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(schema.TestedVsUntestedScheme, time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordCohortRows(runID, []schema.LabeledRow{
		labeledRow(0, "Untested", schema.OutcomeNA, "Untested"),
	}))

	require.NoError(t, store.Clear())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[cohortRowsTable])
}

func TestNewResultsStore_UnsupportedBackend(t *testing.T) {
	_, err := NewResultsStore(schema.StoreBackend("bogus"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
