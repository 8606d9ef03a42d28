// Package cohort merges, collapses, labels and reshapes recoded check-ins.
package cohort

import "github.com/jreiser/trendreport/schema"

// MergeTestedUntested combines the tested and untested populations by row
// concatenation. Fields absent from one source stay nil in its rows; that
// is expected schema union, not an error.
func MergeTestedUntested(tested, untested []schema.RecodedRecord) []schema.RecodedRecord {
	combined := make([]schema.RecodedRecord, 0, len(tested)+len(untested))
	combined = append(combined, tested...)
	combined = append(combined, untested...)
	return combined
}

// MergeTestedPredicted combines the tested and predicted populations,
// excluding predicted records whose session also appears in the tested
// population. Without the anti-join an individual who was tested would
// contribute to both cohorts and bias the predicted baseline.
func MergeTestedPredicted(tested, predicted []schema.RecodedRecord) []schema.RecodedRecord {
	testedSessions := make(map[string]struct{}, len(tested))
	for i := range tested {
		testedSessions[tested[i].SessionID] = struct{}{}
	}

	combined := make([]schema.RecodedRecord, 0, len(tested)+len(predicted))
	combined = append(combined, tested...)
	for i := range predicted {
		if _, ok := testedSessions[predicted[i].SessionID]; ok {
			continue
		}
		combined = append(combined, predicted[i])
	}
	return combined
}
