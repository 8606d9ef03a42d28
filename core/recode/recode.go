// Package recode turns raw categorical check-in fields into binary indicators.
package recode

import (
	"fmt"
	"sort"

	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/schema"
)

// rawFieldGetters resolves field-spec names against the snapshot schema.
// A spec naming a field outside this map is a configuration error.
var rawFieldGetters = map[string]func(*schema.RawRecord) *string{
	"combined_stayed_home":        func(r *schema.RawRecord) *string { return r.CombinedStayedHome },
	"combined_socially_distanced": func(r *schema.RawRecord) *string { return r.CombinedSociallyDistanced },
	"canceled_appointments":       func(r *schema.RawRecord) *string { return r.CanceledAppointments },
	"wore_mask_indoors":           func(r *schema.RawRecord) *string { return r.WoreMaskIndoors },
	"wore_mask_outdoors":          func(r *schema.RawRecord) *string { return r.WoreMaskOutdoors },
}

// Apply recodes every record against the field specs and derives the
// combined mask indicator and the numeric day offset. Original fields are
// retained and no records are dropped. Unexpected tokens recode to
// missing and are reported as a warning per field, never coerced to 0.
func Apply(records []schema.RawRecord, specs []schema.FieldSpec) ([]schema.RecodedRecord, error) {
	// 1. Validate the specs against the schema before touching any data.
	if err := ValidateSpecs(specs); err != nil {
		return nil, err
	}

	// 2. Recode record by record.
	unexpected := make(map[string]int)
	out := make([]schema.RecodedRecord, len(records))
	for i := range records {
		rec := schema.RecodedRecord{
			RawRecord:     records[i],
			DaysSinceTest: schema.Days(records[i].TimeSinceTest),
			Indicators:    make(map[schema.Behavior]*float64, len(specs)+1),
		}
		for _, spec := range specs {
			raw := rawFieldGetters[spec.Field](&records[i])
			rec.Indicators[spec.Target] = recodeToken(raw, spec, unexpected)
		}

		// 3. Derive mask_wearing from the two mask indicators.
		rec.Indicators[schema.BehaviorMaskWearing] = combineMask(rec.Indicators)
		out[i] = rec
	}

	// 4. Surface unexpected tokens once per field, in a stable order.
	fields := make([]string, 0, len(unexpected))
	for f := range unexpected {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		contract.LogWarn(
			fmt.Sprintf("field %s: %d unexpected tokens recoded to missing", f, unexpected[f]), nil)
	}

	return out, nil
}

// ValidateSpecs fails fast when a spec references a field that does not
// exist in the check-in schema. This guards against a typo silently
// producing an all-missing behavior column.
func ValidateSpecs(specs []schema.FieldSpec) error {
	for _, spec := range specs {
		if _, ok := rawFieldGetters[spec.Field]; !ok {
			return fmt.Errorf("recode field %q is not present in the check-in schema", spec.Field)
		}
		if spec.TrueToken == spec.FalseToken {
			return fmt.Errorf("recode field %q has identical true and false tokens %q", spec.Field, spec.TrueToken)
		}
	}
	return nil
}

// recodeToken maps one raw value to 1, 0 or nil. Comparison against the
// configured tokens is case-sensitive.
func recodeToken(raw *string, spec schema.FieldSpec, unexpected map[string]int) *float64 {
	if raw == nil {
		return nil
	}
	switch *raw {
	case spec.TrueToken:
		v := 1.0
		return &v
	case spec.FalseToken:
		v := 0.0
		return &v
	default:
		unexpected[spec.Field]++
		return nil
	}
}

// combineMask returns the elementwise max of the two mask indicators.
// Missing inputs are ignored unless both are missing.
func combineMask(indicators map[schema.Behavior]*float64) *float64 {
	a := indicators[schema.MaskSourceBehaviors[0]]
	b := indicators[schema.MaskSourceBehaviors[1]]
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		v := *b
		return &v
	case b == nil:
		v := *a
		return &v
	default:
		v := max(*a, *b)
		return &v
	}
}
