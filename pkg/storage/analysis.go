package storage

import (
	"context"
	"time"

	"phishguard/pkg/domain"
)

// DefaultPageSize is used when a listing is requested with a zero limit.
const DefaultPageSize = 20

// Analyses groups a page of analysis records together with an optional
// NextCursor used for pagination.
type Analyses struct {
	// Analyses contains the current page, newest first.
	Analyses []domain.Analysis
	// NextCursor is the creation time to pass as the cursor of the next page.
	// It is nil when there is no next page.
	NextCursor *time.Time
}

// AnalysisStorage persists aggregated results.
type AnalysisStorage interface {
	// StoreAnalysis inserts a record. A zero ID is replaced with a new one and a
	// zero CreatedAt with the current time.
	StoreAnalysis(ctx context.Context, analysis domain.Analysis) (*domain.Analysis, error)
	// AnalysisByID fetches a record. It returns nil when not found.
	AnalysisByID(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error)
	// AnalysesByHostname returns records of hostname created before the
	// optional cursor, newest first, limited by limit (DefaultPageSize when 0).
	AnalysesByHostname(ctx context.Context, hostname string, cursor time.Time, limit uint) (Analyses, error)
}
