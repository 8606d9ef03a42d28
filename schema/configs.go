package schema

// FieldSpec maps one raw categorical field to its binary indicator.
// Matching is case-sensitive: TrueToken recodes to 1, FalseToken to 0,
// and any other value (missing included) recodes to missing.
type FieldSpec struct {
	Field      string   // raw field name in the snapshot
	TrueToken  string   // token recoded to 1
	FalseToken string   // token recoded to 0
	Target     Behavior // indicator column the recode writes
}

// DefaultFieldSpecs is the fixed recoding table for the check-in surveys.
// The combined_* fields come from the survey vendor with Python-style
// booleans; the remaining fields carry plain yes/no answers.
var DefaultFieldSpecs = []FieldSpec{
	{Field: "combined_stayed_home", TrueToken: "True", FalseToken: "False", Target: BehaviorStayedHome},
	{Field: "combined_socially_distanced", TrueToken: "True", FalseToken: "False", Target: BehaviorSociallyDistanced},
	{Field: "canceled_appointments", TrueToken: "Yes", FalseToken: "No", Target: BehaviorCanceledAppointments},
	{Field: "wore_mask_indoors", TrueToken: "Yes", FalseToken: "No", Target: BehaviorMaskIndoors},
	{Field: "wore_mask_outdoors", TrueToken: "Yes", FalseToken: "No", Target: BehaviorMaskOutdoors},
}

// MaskSourceBehaviors are the two indicators combined into mask_wearing.
var MaskSourceBehaviors = [2]Behavior{BehaviorMaskIndoors, BehaviorMaskOutdoors}

// BehaviorDisplayNames translates behavior columns to chart-facing labels.
var BehaviorDisplayNames = map[Behavior]string{
	BehaviorStayedHome:           "Stayed home",
	BehaviorSociallyDistanced:    "Socially distanced",
	BehaviorCanceledAppointments: "Canceled appointments",
	BehaviorMaskIndoors:          "Wore mask indoors",
	BehaviorMaskOutdoors:         "Wore mask outdoors",
	BehaviorMaskWearing:          "Wore a mask",
}

// CohortStyle is the fixed rendering style for one cohort label.
// Renderers consume it as-is; nothing in the core depends on it.
type CohortStyle struct {
	Color     string // hex color for lines and points
	LineStyle string // "solid" or "dashed"
	Shape     string // point shape name
}

// Palette maps cohort labels to their fixed chart styles. It is passed to
// renderers as explicit configuration, never mutated at runtime.
type Palette map[string]CohortStyle

// DefaultPalette covers every cohort label both labeling schemes produce.
var DefaultPalette = Palette{
	"Untested":           {Color: "#7f7f7f", LineStyle: "dashed", Shape: "circle"},
	"Tested-Negative":    {Color: "#1f77b4", LineStyle: "solid", Shape: "circle"},
	"Tested-Positive":    {Color: "#d62728", LineStyle: "solid", Shape: "square"},
	"Predicted-Negative": {Color: "#17becf", LineStyle: "dashed", Shape: "circle"},
	"Predicted-Positive": {Color: "#ff7f0e", LineStyle: "dashed", Shape: "square"},
}
