package cohort

import (
	"testing"

	"github.com/jreiser/trendreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longRow(day float64, cohort string, value *float64) schema.LongRow {
	return schema.LongRow{
		Day:           day,
		CohortLabel:   cohort,
		Behavior:      schema.BehaviorStayedHome,
		BehaviorLabel: schema.BehaviorDisplayNames[schema.BehaviorStayedHome],
		Value:         value,
		NObs:          5,
	}
}

func TestSmoothLongWindowZeroIsPassthrough(t *testing.T) {
	rows := []schema.LongRow{
		longRow(0, "Tested-Positive", floatPtr(1)),
		longRow(1, "Tested-Positive", floatPtr(0)),
	}

	out, err := SmoothLong(rows, 0)
	require.NoError(t, err)
	assert.Equal(t, rows, out)
}

func TestSmoothLongRejectsEvenWindow(t *testing.T) {
	_, err := SmoothLong(nil, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive odd")
}

func TestSmoothLongRejectsNegativeWindow(t *testing.T) {
	_, err := SmoothLong(nil, -3)
	require.Error(t, err)
}

func TestSmoothLongCenteredWindowThree(t *testing.T) {
	rows := []schema.LongRow{
		longRow(0, "Tested-Positive", floatPtr(0)),
		longRow(1, "Tested-Positive", floatPtr(3)),
		longRow(2, "Tested-Positive", floatPtr(6)),
	}

	out, err := SmoothLong(rows, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Edges truncate the window to the available days.
	require.NotNil(t, out[0].Value)
	assert.InDelta(t, 1.5, *out[0].Value, 1e-12) // mean(0, 3)
	require.NotNil(t, out[1].Value)
	assert.InDelta(t, 3.0, *out[1].Value, 1e-12) // mean(0, 3, 6)
	require.NotNil(t, out[2].Value)
	assert.InDelta(t, 4.5, *out[2].Value, 1e-12) // mean(3, 6)
}

func TestSmoothLongSkipsMissingInsideWindow(t *testing.T) {
	rows := []schema.LongRow{
		longRow(0, "Tested-Positive", floatPtr(2)),
		longRow(1, "Tested-Positive", nil),
		longRow(2, "Tested-Positive", floatPtr(4)),
	}

	out, err := SmoothLong(rows, 3)
	require.NoError(t, err)

	require.NotNil(t, out[1].Value)
	assert.InDelta(t, 3.0, *out[1].Value, 1e-12) // mean(2, 4), nil day skipped
}

func TestSmoothLongAllMissingStaysMissing(t *testing.T) {
	rows := []schema.LongRow{
		longRow(0, "Untested", nil),
		longRow(1, "Untested", nil),
	}

	out, err := SmoothLong(rows, 3)
	require.NoError(t, err)
	assert.Nil(t, out[0].Value)
	assert.Nil(t, out[1].Value)
}

func TestSmoothLongSeriesAreIndependent(t *testing.T) {
	rows := []schema.LongRow{
		longRow(0, "Tested-Positive", floatPtr(0)),
		longRow(1, "Tested-Positive", floatPtr(10)),
		longRow(0, "Tested-Negative", floatPtr(100)),
		longRow(1, "Tested-Negative", floatPtr(200)),
	}

	out, err := SmoothLong(rows, 3)
	require.NoError(t, err)

	// Each cohort smooths over its own days only.
	assert.InDelta(t, 5.0, *out[0].Value, 1e-12)
	assert.InDelta(t, 5.0, *out[1].Value, 1e-12)
	assert.InDelta(t, 150.0, *out[2].Value, 1e-12)
	assert.InDelta(t, 150.0, *out[3].Value, 1e-12)
}

func TestSmoothLongDoesNotMutateInput(t *testing.T) {
	orig := floatPtr(1)
	rows := []schema.LongRow{
		longRow(0, "Tested-Positive", orig),
		longRow(1, "Tested-Positive", floatPtr(5)),
	}

	_, err := SmoothLong(rows, 3)
	require.NoError(t, err)

	assert.Same(t, orig, rows[0].Value)
	assert.Equal(t, 1.0, *rows[0].Value)
}
