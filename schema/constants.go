package schema

// Custom string types for type safety.
type (
	// Behavior identifies one binary behavior column in the collapsed table.
	Behavior string

	// OutputMode represents the format of the output.
	OutputMode string

	// LabelScheme selects how cohort display labels are assigned.
	LabelScheme string

	// StoreBackend represents the database backend for the results store.
	StoreBackend string

	// OutcomeCode is the sentinel-coded test outcome used in group keys.
	OutcomeCode int8
)

// Behavior columns of the collapsed table. The recoded columns carry the
// _NEW suffix of their raw source field; mask_wearing is derived from the
// two mask columns and has no raw counterpart.
const (
	BehaviorStayedHome           Behavior = "combined_stayed_home_NEW"
	BehaviorSociallyDistanced    Behavior = "combined_socially_distanced_NEW"
	BehaviorCanceledAppointments Behavior = "canceled_appointments_NEW"
	BehaviorMaskIndoors          Behavior = "wore_mask_indoors_NEW"
	BehaviorMaskOutdoors         Behavior = "wore_mask_outdoors_NEW"
	BehaviorMaskWearing          Behavior = "mask_wearing"
)

// Behaviors is the fixed unpivot order of the behavior columns.
var Behaviors = []Behavior{
	BehaviorStayedHome,
	BehaviorSociallyDistanced,
	BehaviorCanceledAppointments,
	BehaviorMaskIndoors,
	BehaviorMaskOutdoors,
	BehaviorMaskWearing,
}

// Test outcome codes. OutcomeNA stands in for a missing outcome so that
// untested groups survive the collapse instead of being dropped.
const (
	OutcomeNegative OutcomeCode = 0
	OutcomePositive OutcomeCode = 1
	OutcomeNA       OutcomeCode = -1
)

// Source population indicators as they appear in the snapshots.
const (
	CohortTested    = "Tested"
	CohortPredicted = "Predicted"
	CohortUntested  = "Untested"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All labeling schemes supported.
const (
	TestedVsUntestedScheme  LabelScheme = "untested"
	TestedVsPredictedScheme LabelScheme = "predicted"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite"
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgres"
	NoneBackend       StoreBackend = "none" // default
)
