package cohort

import "github.com/jreiser/trendreport/schema"

// ToLong unpivots the behavior means of labeled rows into one row per
// (group, behavior) pair for faceted charting. The contact median is not
// unpivoted; it travels with the wide table on a separate plotting path.
// NObs and the group key repeat across all behaviors of a group.
func ToLong(rows []schema.LabeledRow) []schema.LongRow {
	long := make([]schema.LongRow, 0, len(rows)*len(schema.Behaviors))
	for _, row := range rows {
		for _, b := range schema.Behaviors {
			long = append(long, schema.LongRow{
				Day:           row.Key.Day,
				CohortLabel:   row.CohortLabel,
				Behavior:      b,
				BehaviorLabel: schema.BehaviorDisplayNames[b],
				Value:         row.Means[b],
				NObs:          row.NObs,
			})
		}
	}
	return long
}
