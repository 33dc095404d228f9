package domain

import (
	"time"

	"github.com/google/uuid"
)

// EscalationOutcome records what happened to the escalation step of an analysis.
type EscalationOutcome string

const (
	// EscalationInvoked means the escalation detector ran and its finding is included.
	EscalationInvoked EscalationOutcome = "invoked"
	// EscalationDisabled means the caller did not permit escalation.
	EscalationDisabled EscalationOutcome = "disabled"
	// EscalationUnavailable means no usable escalation client was supplied.
	EscalationUnavailable EscalationOutcome = "unavailable"
	// EscalationOutOfBand means the preliminary score was outside the ambiguous band.
	EscalationOutOfBand EscalationOutcome = "out_of_band"
	// EscalationCarried means the escalation finding was carried over from an earlier analysis.
	EscalationCarried EscalationOutcome = "carried"
)

// AggregatedResult is the scored verdict for a single hostname.
type AggregatedResult struct {
	Hostname   string    `json:"hostname"`
	TotalRisk  int       `json:"totalRisk"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	Findings   []Finding `json:"findings"`
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Escalation tells whether the escalation detector took part.
	Escalation EscalationOutcome `json:"escalation,omitempty"`
	// Whitelisted is set when the hostname belongs to a known or user-trusted domain.
	Whitelisted bool `json:"whitelisted,omitempty"`
	// Skipped is set when the destination is not analyzable (IP literal, localhost, non-web protocol).
	Skipped bool `json:"skipped,omitempty"`
	// SkipReason explains why the destination was skipped.
	SkipReason string `json:"skipReason,omitempty"`
}

// Finding returns the finding produced by the given detector key, if any.
func (r AggregatedResult) Finding(detector string) (Finding, bool) {
	for _, f := range r.Findings {
		if f.Detector == detector {
			return f, true
		}
	}

	return Finding{}, false
}

// AnalysisID uniquely identifies a persisted analysis.
type AnalysisID uuid.UUID

// String returns the canonical textual form of the ID.
func (id AnalysisID) String() string {
	return uuid.UUID(id).String()
}

// Analysis is a persisted analysis record.
type Analysis struct {
	ID        AnalysisID
	URL       string
	Hostname  string
	Result    AggregatedResult
	CreatedAt time.Time
}
