package cohort

import (
	"fmt"
	"sort"

	"github.com/jreiser/trendreport/schema"
)

// untestedOrder fixes the cohort ordering for the tested-vs-untested scheme.
var untestedOrder = map[string]int{
	"Untested":        0,
	"Tested-Negative": 1,
	"Tested-Positive": 2,
}

// predictedOrder fixes the cohort ordering for the tested-vs-predicted scheme.
var predictedOrder = map[string]int{
	"Predicted-Negative": 0,
	"Predicted-Positive": 1,
	"Tested-Negative":    2,
	"Tested-Positive":    3,
}

// AssignLabels attaches display labels and the scheme's fixed cohort
// ordering to collapsed rows. A row whose (cohort, outcome) combination is
// not representable in the scheme is a data error: the caller merged the
// wrong populations for this scheme, and labeling aborts.
func AssignLabels(rows []schema.CollapsedRow, scheme schema.LabelScheme) ([]schema.LabeledRow, error) {
	labeled := make([]schema.LabeledRow, 0, len(rows))
	for _, row := range rows {
		outcomeLabel, err := outcomeLabelFor(row.Key, scheme)
		if err != nil {
			return nil, err
		}

		cohortLabel := row.Key.Cohort
		if outcomeLabel != "" {
			cohortLabel = row.Key.Cohort + "-" + outcomeLabel
		}

		order, err := orderFor(cohortLabel, scheme)
		if err != nil {
			return nil, err
		}

		labeled = append(labeled, schema.LabeledRow{
			CollapsedRow: row,
			OutcomeLabel: outcomeLabel,
			CohortLabel:  cohortLabel,
			Order:        order,
		})
	}

	sort.Slice(labeled, func(i, j int) bool {
		if labeled[i].Order != labeled[j].Order {
			return labeled[i].Order < labeled[j].Order
		}
		return labeled[i].Key.Day < labeled[j].Key.Day
	})

	return labeled, nil
}

// outcomeLabelFor maps an outcome code to its display label under a scheme.
// Only the untested scheme admits a missing outcome (untested individuals).
func outcomeLabelFor(key schema.GroupKey, scheme schema.LabelScheme) (string, error) {
	switch key.Outcome {
	case schema.OutcomeNegative:
		return "Negative", nil
	case schema.OutcomePositive:
		return "Positive", nil
	case schema.OutcomeNA:
		if scheme == schema.TestedVsUntestedScheme && key.Cohort == schema.CohortUntested {
			return "", nil
		}
		return "", fmt.Errorf("cohort %q at day %v has a missing outcome, which scheme %q cannot label",
			key.Cohort, key.Day, scheme)
	default:
		return "", fmt.Errorf("unknown outcome code %d for cohort %q", key.Outcome, key.Cohort)
	}
}

// orderFor resolves the fixed lexical position of a composite cohort label.
func orderFor(cohortLabel string, scheme schema.LabelScheme) (int, error) {
	var ordering map[string]int
	switch scheme {
	case schema.TestedVsUntestedScheme:
		ordering = untestedOrder
	case schema.TestedVsPredictedScheme:
		ordering = predictedOrder
	default:
		return 0, fmt.Errorf("unknown labeling scheme %q", scheme)
	}

	order, ok := ordering[cohortLabel]
	if !ok {
		return 0, fmt.Errorf("cohort label %q is not part of scheme %q", cohortLabel, scheme)
	}
	return order, nil
}
