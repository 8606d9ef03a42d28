package cohort

import (
	"fmt"
	"sort"

	"github.com/jreiser/trendreport/schema"
	"gonum.org/v1/gonum/floats"
)

// SmoothLong applies a centered moving average of the given window to each
// (cohort, behavior) series of the long table, ordered by day. Missing
// values are skipped inside a window; a window with only missing values
// stays missing. Window 0 disables smoothing; even windows are rejected
// because the average would not be centered on a day.
func SmoothLong(rows []schema.LongRow, window int) ([]schema.LongRow, error) {
	if window == 0 {
		return rows, nil
	}
	if window < 0 || window%2 == 0 {
		return nil, fmt.Errorf("smoothing window must be a positive odd number, got %d", window)
	}

	// Bucket row indices per series, keeping the input untouched.
	type seriesKey struct {
		cohort   string
		behavior schema.Behavior
	}
	series := make(map[seriesKey][]int)
	for i, row := range rows {
		k := seriesKey{cohort: row.CohortLabel, behavior: row.Behavior}
		series[k] = append(series[k], i)
	}

	out := make([]schema.LongRow, len(rows))
	copy(out, rows)

	half := window / 2
	for _, idx := range series {
		sort.Slice(idx, func(a, b int) bool { return rows[idx[a]].Day < rows[idx[b]].Day })
		for pos, i := range idx {
			lo := max(0, pos-half)
			hi := min(len(idx)-1, pos+half)
			var vals []float64
			for _, j := range idx[lo : hi+1] {
				if v := rows[j].Value; v != nil {
					vals = append(vals, *v)
				}
			}
			if len(vals) == 0 {
				out[i].Value = nil
				continue
			}
			m := floats.Sum(vals) / float64(len(vals))
			out[i].Value = &m
		}
	}

	return out, nil
}
