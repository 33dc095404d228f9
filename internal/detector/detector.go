// Package detector defines the contract shared by every risk detector, the
// registry that holds them and the boundary that keeps detector failures from
// escaping an analysis.
package detector

import (
	"context"

	"phishguard/pkg/domain"
)

// Registry keys of the built-in detectors. They double as the keys of the
// enabled-detectors configuration map.
const (
	KeyTyposquat = "typosquat"
	KeyProtocol  = "protocol"
	KeyDomainAge = "domainAge"
	KeyContent   = "contentAnalysis"
	KeyBlacklist = "kisaBlacklist"
	KeyLLM       = "llmAnalysis"
)

// Context is the input of one analysis, shared read-only by all detectors.
type Context struct {
	URL      string
	Hostname string
	// Protocol includes the trailing colon, e.g. "https:".
	Protocol string
	Path     string
	// Page is nil when no page content was extracted.
	Page *domain.PageContent
	// Prior holds the findings gathered before the escalation step. It is only
	// set for escalation detectors.
	Prior []domain.Finding
}

// Detector produces a single risk finding for a destination.
//
// Implementations return an error when they cannot evaluate; Safe turns it
// into a zero-confidence finding. Detector, Name and Weight of the returned
// finding are filled in by Safe.
//
//go:generate mockgen -package mockdetector -source=detector.go -destination=mock/mockdetector.go *
type Detector interface {
	// Key is the registry key, e.g. "typosquat".
	Key() string
	// Name is the display name, e.g. "TyposquatDetector".
	Name() string
	// Weight is the fixed aggregation weight in [0,1].
	Weight() float64
	// Analyze evaluates the destination described by dc.
	Analyze(ctx context.Context, dc Context) (domain.Finding, error)
}
