package analyzer

import (
	"context"

	"phishguard/pkg/domain"
)

// Request describes one analysis.
type Request struct {
	// URL is the destination to analyze. A missing scheme means https.
	URL string
	// Page is the metadata extracted from the destination, if any. A request
	// with page content bypasses the cache read.
	//
	// Requests whose EnableLLM or Detectors change the effective switches
	// neither read nor fill the result cache.
	Page *domain.PageContent
	// EnableLLM overrides the configured escalation switch when set.
	EnableLLM *bool
	// Detectors overrides the configured enabled map key by key.
	Detectors map[string]bool
	// Whitelist adds domains trusted for this request only.
	Whitelist []string
}

// Result is an aggregated verdict together with how it was produced.
type Result struct {
	domain.AggregatedResult
	// ID is set when the result was persisted.
	ID *domain.AnalysisID
	// Cached is set when the result was served from the result cache.
	Cached bool
}

// Analyzer is the application service behind the API and the CLI.
//
//go:generate mockgen -package mockanalyzer -source=interface.go -destination=mock/mockanalyzer.go *
type Analyzer interface {
	// Analyze scores a URL. Unanalyzable destinations yield a skipped result
	// and an empty hostname yields serrors.ErrBadRequest.
	Analyze(ctx context.Context, req Request) (*Result, error)
	// AnalyzePage re-scores a URL with page content and without escalation,
	// keeping the escalation finding of the cached result. whitelist adds
	// domains trusted for this call, as Request.Whitelist does.
	AnalyzePage(ctx context.Context, rawURL string, page *domain.PageContent, whitelist []string) (*Result, error)
	// Analysis returns a persisted analysis.
	Analysis(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error)
	// Analyses pages through the persisted analyses of a hostname, newest first.
	Analyses(ctx context.Context, hostname string, cursor string, limit uint) ([]domain.Analysis, string, error)
	// InvalidateCache drops every cached result and returns how many were dropped.
	InvalidateCache(ctx context.Context) int
	// ReloadCorpus reloads the known-domain corpus and returns its size.
	ReloadCorpus(ctx context.Context) (int, error)
}
