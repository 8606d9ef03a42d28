package recode

import (
	"testing"
	"time"

	"github.com/jreiser/trendreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }

func TestApplyRecodesTokens(t *testing.T) {
	records := []schema.RawRecord{
		{
			SessionID:                 "s1",
			TimeSinceTest:             48 * time.Hour,
			TestedPredicted:           schema.CohortTested,
			CombinedStayedHome:        strPtr("True"),
			CombinedSociallyDistanced: strPtr("False"),
			CanceledAppointments:      strPtr("Yes"),
			WoreMaskIndoors:           strPtr("No"),
			WoreMaskOutdoors:          strPtr("Yes"),
		},
	}

	out, err := Apply(records, schema.DefaultFieldSpecs)
	require.NoError(t, err)
	require.Len(t, out, 1)

	rec := out[0]
	assert.Equal(t, 2.0, rec.DaysSinceTest)
	assert.Equal(t, 1.0, *rec.Indicators[schema.BehaviorStayedHome])
	assert.Equal(t, 0.0, *rec.Indicators[schema.BehaviorSociallyDistanced])
	assert.Equal(t, 1.0, *rec.Indicators[schema.BehaviorCanceledAppointments])
	assert.Equal(t, 0.0, *rec.Indicators[schema.BehaviorMaskIndoors])
	assert.Equal(t, 1.0, *rec.Indicators[schema.BehaviorMaskOutdoors])

	// Original fields are retained
	assert.Equal(t, "True", *rec.CombinedStayedHome)
	assert.Equal(t, "s1", rec.SessionID)
}

func TestApplyTokenMatchingIsCaseSensitive(t *testing.T) {
	records := []schema.RawRecord{
		{CombinedStayedHome: strPtr("true")}, // lowercase is not a recognized token
		{CombinedStayedHome: strPtr("TRUE")},
		{CombinedStayedHome: strPtr("True")},
	}

	out, err := Apply(records, schema.DefaultFieldSpecs)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Nil(t, out[0].Indicators[schema.BehaviorStayedHome])
	assert.Nil(t, out[1].Indicators[schema.BehaviorStayedHome])
	assert.Equal(t, 1.0, *out[2].Indicators[schema.BehaviorStayedHome])
}

func TestApplyMissingStaysMissing(t *testing.T) {
	records := []schema.RawRecord{{}} // all behavior fields nil

	out, err := Apply(records, schema.DefaultFieldSpecs)
	require.NoError(t, err)
	require.Len(t, out, 1)

	for _, b := range schema.Behaviors {
		assert.Nil(t, out[0].Indicators[b], "behavior %s should stay missing", b)
	}
}

func TestApplyNeverDropsRecords(t *testing.T) {
	records := []schema.RawRecord{
		{CombinedStayedHome: strPtr("garbage")},
		{},
		{CombinedStayedHome: strPtr("True")},
	}

	out, err := Apply(records, schema.DefaultFieldSpecs)
	require.NoError(t, err)
	assert.Len(t, out, len(records))
}

func TestApplyDerivesMaskWearing(t *testing.T) {
	tests := []struct {
		name     string
		indoors  *string
		outdoors *string
		want     *float64
	}{
		{"both yes", strPtr("Yes"), strPtr("Yes"), floatPtr(1)},
		{"indoors only", strPtr("Yes"), strPtr("No"), floatPtr(1)},
		{"outdoors only", strPtr("No"), strPtr("Yes"), floatPtr(1)},
		{"both no", strPtr("No"), strPtr("No"), floatPtr(0)},
		{"one missing one no", nil, strPtr("No"), floatPtr(0)},
		{"one missing one yes", nil, strPtr("Yes"), floatPtr(1)},
		{"both missing", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []schema.RawRecord{{WoreMaskIndoors: tt.indoors, WoreMaskOutdoors: tt.outdoors}}
			out, err := Apply(records, schema.DefaultFieldSpecs)
			require.NoError(t, err)

			got := out[0].Indicators[schema.BehaviorMaskWearing]
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestApplyNegativeOffsetKeepsSign(t *testing.T) {
	records := []schema.RawRecord{{TimeSinceTest: -36 * time.Hour}}

	out, err := Apply(records, schema.DefaultFieldSpecs)
	require.NoError(t, err)
	assert.Equal(t, -1.5, out[0].DaysSinceTest)
}

func TestValidateSpecsRejectsUnknownField(t *testing.T) {
	specs := []schema.FieldSpec{
		{Field: "no_such_field", TrueToken: "Yes", FalseToken: "No", Target: schema.BehaviorStayedHome},
	}

	_, err := Apply(nil, specs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_field")
}

func TestValidateSpecsRejectsIdenticalTokens(t *testing.T) {
	specs := []schema.FieldSpec{
		{Field: "combined_stayed_home", TrueToken: "Yes", FalseToken: "Yes", Target: schema.BehaviorStayedHome},
	}

	err := ValidateSpecs(specs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identical")
}
