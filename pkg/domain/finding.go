package domain

// RiskLevel is the three-tier classification of an aggregated risk score.
type RiskLevel string

const (
	// RiskLevelSafe is assigned to scores below 40.
	RiskLevelSafe RiskLevel = "safe"
	// RiskLevelWarning is assigned to scores in [40, 70).
	RiskLevelWarning RiskLevel = "warning"
	// RiskLevelDanger is assigned to scores of 70 and above.
	RiskLevelDanger RiskLevel = "danger"
)

// Details is the opaque structured payload a detector attaches to its finding.
type Details map[string]any

// Finding is the output of a single detector for one analysis.
//
// A Confidence of 0 means the detector could not evaluate the destination; such
// findings are reported but never take part in aggregation.
type Finding struct {
	// Detector is the registry key of the detector that produced the finding.
	Detector string `json:"detector"`
	// Name is the human-readable detector name.
	Name string `json:"name"`
	// Weight is the fixed aggregation weight of the detector, in [0,1].
	Weight float64 `json:"weight"`
	// Risk is in [0,100].
	Risk int `json:"risk"`
	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
	// Reason is a short explanation, or the error text for failed detectors.
	Reason string `json:"reason"`
	// Details carries detector-specific data.
	Details Details `json:"details,omitempty"`
}

// Evaluated reports whether the finding should take part in aggregation.
func (f Finding) Evaluated() bool {
	return f.Confidence > 0
}
