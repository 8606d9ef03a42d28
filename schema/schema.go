// Package schema has configs, models and constants for all parts of trendreport.
package schema

import "time"

// RawRecord represents one check-in event for one individual on one day,
// as loaded from a snapshot. Pointer fields are nullable in the snapshot
// and stay nullable in memory; nil always means "missing", never zero.
type RawRecord struct {
	// SessionID groups check-ins belonging to one individual. It is stable
	// within a source population but not unique across populations.
	SessionID string

	// TimeSinceTest is the signed duration between this check-in and the
	// individual's test event. Negative means before the test.
	TimeSinceTest time.Duration

	// TestedPredicted is the source population indicator:
	// "Tested", "Predicted" or "Untested".
	TestedPredicted string

	// Positive is the test outcome: 0 negative, 1 positive, nil when not
	// applicable (e.g. untested individuals).
	Positive *int32

	// Raw behavior fields. Each takes one of two recognized tokens or nil.
	CombinedStayedHome        *string
	CombinedSociallyDistanced *string
	CanceledAppointments      *string
	WoreMaskIndoors           *string
	WoreMaskOutdoors          *string

	// EstimatePeopleContact is the self-reported contact count.
	EstimatePeopleContact *float64
}

// RecodedRecord is a RawRecord augmented with binary behavior indicators
// and a numeric day offset. Original fields are retained; no records are
// dropped during recoding.
type RecodedRecord struct {
	RawRecord

	// DaysSinceTest is TimeSinceTest converted to a fractional day count.
	DaysSinceTest float64

	// Indicators holds one entry per configured behavior plus the derived
	// mask indicator. Values are 1, 0 or nil, never anything else.
	Indicators map[Behavior]*float64
}

// GroupKey is the grouping granularity for the cohort collapse.
// A missing outcome is its own group value (OutcomeNA), not dropped.
type GroupKey struct {
	Day     float64
	Cohort  string
	Outcome OutcomeCode
}

// CollapsedRow is one summary row per GroupKey: the mean of each binary
// behavior indicator over non-missing values, the median contact count
// over non-missing values, and the raw group size. A nil aggregate means
// the group had no non-missing values for that field.
type CollapsedRow struct {
	Key           GroupKey
	Means         map[Behavior]*float64
	ContactMedian *float64
	NObs          int64
}

// LabeledRow is a CollapsedRow with display labels attached under one of
// the two labeling schemes. Order is the scheme's fixed cohort ordering,
// usable as a sort key for reproducible output.
type LabeledRow struct {
	CollapsedRow
	OutcomeLabel string
	CohortLabel  string
	Order        int
}

// LongRow is one (group, behavior) pair produced by unpivoting the
// behavior means of a LabeledRow. NObs and the group key repeat across
// all behaviors of a group.
type LongRow struct {
	Day           float64  `json:"day"`
	CohortLabel   string   `json:"cohort"`
	Behavior      Behavior `json:"behavior"`
	BehaviorLabel string   `json:"behavior_label"`
	Value         *float64 `json:"value"`
	NObs          int64    `json:"nobs"`
}

// OutcomeFromPositive maps a nullable positive flag to its sentinel code.
func OutcomeFromPositive(positive *int32) OutcomeCode {
	if positive == nil {
		return OutcomeNA
	}
	if *positive != 0 {
		return OutcomePositive
	}
	return OutcomeNegative
}

// Days converts a duration to a fractional day count.
func Days(d time.Duration) float64 {
	return d.Hours() / 24.0
}
