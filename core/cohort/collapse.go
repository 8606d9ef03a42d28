package cohort

import (
	"sort"

	"github.com/jreiser/trendreport/schema"
	"gonum.org/v1/gonum/stat"
)

// groupAgg accumulates the non-missing values of one group during collapse.
type groupAgg struct {
	values   map[schema.Behavior][]float64
	contacts []float64
	nobs     int64
}

// Collapse groups records by (day, cohort, outcome) and reduces each group
// to the mean of every behavior indicator over non-missing values, the
// median contact count over non-missing values, and the raw group size.
// A group with no non-missing values for a field gets a nil aggregate,
// never a zero. Output order is sorted by group key so runs are diffable.
func Collapse(records []schema.RecodedRecord) []schema.CollapsedRow {
	// 1. Accumulate per group.
	groups := make(map[schema.GroupKey]*groupAgg)
	for i := range records {
		rec := &records[i]
		key := schema.GroupKey{
			Day:     rec.DaysSinceTest,
			Cohort:  rec.TestedPredicted,
			Outcome: schema.OutcomeFromPositive(rec.Positive),
		}
		agg := groups[key]
		if agg == nil {
			agg = &groupAgg{values: make(map[schema.Behavior][]float64, len(schema.Behaviors))}
			groups[key] = agg
		}
		agg.nobs++
		for _, b := range schema.Behaviors {
			if v := rec.Indicators[b]; v != nil {
				agg.values[b] = append(agg.values[b], *v)
			}
		}
		if rec.EstimatePeopleContact != nil {
			agg.contacts = append(agg.contacts, *rec.EstimatePeopleContact)
		}
	}

	// 2. Reduce each group to one summary row.
	rows := make([]schema.CollapsedRow, 0, len(groups))
	for key, agg := range groups {
		row := schema.CollapsedRow{
			Key:           key,
			Means:         make(map[schema.Behavior]*float64, len(schema.Behaviors)),
			ContactMedian: median(agg.contacts),
			NObs:          agg.nobs,
		}
		for _, b := range schema.Behaviors {
			row.Means[b] = mean(agg.values[b])
		}
		rows = append(rows, row)
	}

	// 3. Deterministic output order.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Key, rows[j].Key
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Cohort != b.Cohort {
			return a.Cohort < b.Cohort
		}
		return a.Outcome < b.Outcome
	})

	return rows
}

// mean returns the arithmetic mean of xs, or nil for an empty slice.
func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := stat.Mean(xs, nil)
	return &m
}

// median returns the median of xs with midpoint interpolation for even
// counts, or nil for an empty slice. xs is sorted in place.
func median(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)
	mid := len(xs) / 2
	var m float64
	if len(xs)%2 == 1 {
		m = xs[mid]
	} else {
		m = (xs[mid-1] + xs[mid]) / 2
	}
	return &m
}
