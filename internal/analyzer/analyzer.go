// Package analyzer is the application service that turns a URL into a scored
// verdict: it parses the URL, skips destinations that cannot be analyzed,
// honors the whitelist, serves and fills the result cache, runs the ensemble
// and persists fresh results.
package analyzer

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"go.uber.org/zap"

	"phishguard/internal/cache"
	"phishguard/internal/config"
	"phishguard/internal/corpus"
	"phishguard/internal/detector"
	"phishguard/internal/ensemble"
	"phishguard/internal/normalizer"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
	"phishguard/pkg/storage"
)

// Skip reasons of results for destinations that are not analyzed.
const (
	SkipLocalhost           = "localhost"
	SkipIPLiteral           = "ip_literal"
	SkipUnsupportedProtocol = "unsupported_protocol"
)

// ResultCache is the cache of aggregated results keyed by hostname.
type ResultCache = cache.TTL[string, domain.AggregatedResult]

// NewResultCache creates the result cache with the given limits.
func NewResultCache(ttl time.Duration, maxEntries int, opts ...cache.Option) *ResultCache {
	return cache.New[string, domain.AggregatedResult]("analysis", ttl, maxEntries, opts...)
}

// Options are the defaults applied to every request.
type Options struct {
	// EnableLLM permits the escalation step unless a request says otherwise.
	EnableLLM bool
	// Detectors is the configured enabled map.
	Detectors map[string]bool
	// Whitelist holds domains trusted in addition to the corpus.
	Whitelist []string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		EnableLLM: cfg.Ensemble.EnableLLM,
		Detectors: cfg.Ensemble.Detectors,
		Whitelist: cfg.Whitelist,
	}
}

// Deps are the collaborators of the analyzer. Storage may be nil, in which
// case results are not persisted.
type Deps struct {
	Ensemble *ensemble.Ensemble
	Corpus   *corpus.Store
	Cache    *ResultCache
	Storage  storage.AnalysisStorage
}

// analyzer is the concrete implementation of the Analyzer interface.
type analyzer struct {
	options Options
	deps    Deps
	now     func() time.Time
}

var _ Analyzer = (*analyzer)(nil)

// New creates a new Analyzer.
func New(deps Deps, options Options) Analyzer {
	return &analyzer{options: options, deps: deps, now: time.Now}
}

// Analyze implements Analyzer.
func (a *analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	parsed, early, err := a.prepare(ctx, req.URL, req.Whitelist)
	if err != nil || early != nil {
		return early, err
	}
	ctx = logger.WithFields(ctx, zap.String("hostname", parsed.Hostname))

	opts, defaults := a.settings(req)
	if req.Page == nil && defaults {
		if cached, ok := a.deps.Cache.Get(parsed.Hostname); ok {
			logger.Debug(ctx, "serving cached result")

			return &Result{AggregatedResult: cached, Cached: true}, nil
		}
	}

	res := a.deps.Ensemble.Analyze(ctx, contextOf(req.URL, parsed, req.Page), opts)

	return a.finish(ctx, req.URL, res, defaults), nil
}

// AnalyzePage implements Analyzer.
func (a *analyzer) AnalyzePage(ctx context.Context,
	rawURL string,
	page *domain.PageContent,
	whitelist []string) (*Result, error) {
	parsed, early, err := a.prepare(ctx, rawURL, whitelist)
	if err != nil || early != nil {
		return early, err
	}
	ctx = logger.WithFields(ctx, zap.String("hostname", parsed.Hostname))

	var carry *domain.Finding
	if prev, ok := a.deps.Cache.Get(parsed.Hostname); ok {
		if f, found := prev.Finding(detector.KeyLLM); found && f.Evaluated() {
			carry = &f
		}
	}
	a.deps.Cache.Delete(parsed.Hostname)

	res := a.deps.Ensemble.Analyze(ctx, contextOf(rawURL, parsed, page), ensemble.Options{
		Enabled: a.enabled(nil),
		Carry:   carry,
	})

	return a.finish(ctx, rawURL, res, true), nil
}

// prepare parses rawURL and returns an early result for destinations that
// are skipped or whitelisted.
func (a *analyzer) prepare(ctx context.Context, rawURL string, extra []string) (normalizer.ParsedURL, *Result, error) {
	parsed := normalizer.Parse(rawURL)
	if parsed.Hostname == "" {
		return parsed, nil, serrors.With(serrors.ErrBadRequest, "invalid URL: %q has no hostname", rawURL)
	}

	var reason string
	switch {
	case parsed.IsLocalhost:
		reason = SkipLocalhost
	case parsed.IsIPLiteral:
		reason = SkipIPLiteral
	case !parsed.IsWeb():
		reason = SkipUnsupportedProtocol
	}
	if reason != "" {
		logger.Debug(ctx, "destination skipped", zap.String("hostname", parsed.Hostname), zap.String("reason", reason))

		return parsed, &Result{AggregatedResult: a.empty(parsed.Hostname, func(r *domain.AggregatedResult) {
			r.Skipped = true
			r.SkipReason = reason
		})}, nil
	}

	if a.whitelisted(ctx, parsed, extra) {
		logger.Debug(ctx, "destination whitelisted", zap.String("hostname", parsed.Hostname))

		return parsed, &Result{AggregatedResult: a.empty(parsed.Hostname, func(r *domain.AggregatedResult) {
			r.Whitelisted = true
		})}, nil
	}

	return parsed, nil, nil
}

// finish persists a fresh result and caches it when cacheable is set.
func (a *analyzer) finish(ctx context.Context, rawURL string, res domain.AggregatedResult, cacheable bool) *Result {
	if cacheable {
		a.deps.Cache.Set(res.Hostname, res)
	}
	logger.Info(ctx, "analysis complete",
		zap.Int("totalRisk", res.TotalRisk),
		zap.String("riskLevel", string(res.RiskLevel)),
		zap.String("escalation", string(res.Escalation)),
	)

	out := &Result{AggregatedResult: res}
	if a.deps.Storage == nil {
		return out
	}

	canonical, err := normalizer.Canonical(rawURL)
	if err != nil {
		canonical = rawURL
	}
	stored, err := a.deps.Storage.StoreAnalysis(ctx, domain.Analysis{
		URL:       canonical,
		Hostname:  res.Hostname,
		Result:    res,
		CreatedAt: res.AnalyzedAt.UTC(),
	})
	if err != nil {
		logger.Error(ctx, "could not persist analysis", zap.Error(err))

		return out
	}
	out.ID = &stored.ID

	return out
}

func (a *analyzer) empty(hostname string, mutate func(*domain.AggregatedResult)) domain.AggregatedResult {
	r := domain.AggregatedResult{
		Hostname:   hostname,
		TotalRisk:  0,
		RiskLevel:  domain.RiskLevelSafe,
		Findings:   []domain.Finding{},
		AnalyzedAt: a.now(),
	}
	mutate(&r)

	return r
}

// settings resolves the switches of req. The flag reports whether they
// behave like the configured defaults; only such runs share the result cache.
func (a *analyzer) settings(req Request) (ensemble.Options, bool) {
	opts := ensemble.Options{
		Enabled:          a.enabled(req.Detectors),
		EnableEscalation: a.options.EnableLLM,
	}
	if req.EnableLLM != nil {
		opts.EnableEscalation = *req.EnableLLM
	}

	defaults := opts.EnableEscalation == a.options.EnableLLM
	for key := range req.Detectors {
		if detector.IsEnabled(opts.Enabled, key) != detector.IsEnabled(a.options.Detectors, key) {
			defaults = false
		}
	}

	return opts, defaults
}

// enabled overlays per-request switches on the configured map.
func (a *analyzer) enabled(overrides map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a.options.Detectors)+len(overrides))
	maps.Copy(out, a.options.Detectors)
	maps.Copy(out, overrides)

	return out
}

// Analysis implements Analyzer.
func (a *analyzer) Analysis(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	if a.deps.Storage == nil {
		return nil, serrors.With(serrors.ErrUnavailable, "analysis history is not stored")
	}

	res, err := a.deps.Storage.AnalysisByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get analysis: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "analysis not found")
	}

	return res, nil
}

// Analyses implements Analyzer. The cursor is an RFC3339 timestamp returned
// by a previous call.
func (a *analyzer) Analyses(ctx context.Context,
	hostname string,
	cursor string,
	limit uint) ([]domain.Analysis, string, error) {
	if a.deps.Storage == nil {
		return nil, "", serrors.With(serrors.ErrUnavailable, "analysis history is not stored")
	}

	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return nil, "", serrors.With(serrors.ErrBadRequest, "hostname is required")
	}

	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := a.deps.Storage.AnalysesByHostname(ctx, hostname, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get analyses: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.UTC().Format(time.RFC3339Nano)
	}

	return page.Analyses, next, nil
}

// InvalidateCache implements Analyzer.
func (a *analyzer) InvalidateCache(ctx context.Context) int {
	n := a.deps.Cache.Len()
	a.deps.Cache.Clear()
	logger.Info(ctx, "result cache cleared", zap.Int("entries", n))

	return n
}

// ReloadCorpus implements Analyzer. Cached results were computed against the
// previous corpus and are dropped.
func (a *analyzer) ReloadCorpus(ctx context.Context) (int, error) {
	snap, err := a.deps.Corpus.Reload(ctx)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrUnavailable, err, "could not reload corpus")
	}
	a.deps.Cache.Clear()

	return snap.Len(), nil
}

func contextOf(rawURL string, parsed normalizer.ParsedURL, page *domain.PageContent) detector.Context {
	return detector.Context{
		URL:      rawURL,
		Hostname: parsed.Hostname,
		Protocol: parsed.Protocol,
		Path:     parsed.Path,
		Page:     page,
	}
}
