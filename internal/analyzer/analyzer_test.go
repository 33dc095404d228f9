package analyzer_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"phishguard/internal/analyzer"
	"phishguard/internal/corpus"
	"phishguard/internal/detector"
	mockdetector "phishguard/internal/detector/mock"
	"phishguard/internal/ensemble"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
	"phishguard/pkg/storage"
	mockstorage "phishguard/pkg/storage/mock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

// counting is a detector returning a fixed finding and counting its calls.
type counting struct {
	key   string
	risk  int
	calls atomic.Int32
	pages atomic.Int32
}

func (c *counting) Key() string     { return c.key }
func (c *counting) Name() string    { return "Counting" }
func (c *counting) Weight() float64 { return 1 }

func (c *counting) Analyze(_ context.Context, dc detector.Context) (domain.Finding, error) {
	c.calls.Add(1)
	if dc.Page != nil {
		c.pages.Add(1)
	}

	return domain.Finding{Risk: c.risk, Confidence: 1, Reason: "fixed"}, nil
}

type fixture struct {
	base     *counting
	store    *mockstorage.MockAllStorage
	analyzer analyzer.Analyzer
	cache    *analyzer.ResultCache
}

func newFixture(t *testing.T, risk int, options analyzer.Options, escalation detector.Detector, withStorage bool) *fixture {
	t.Helper()

	base := &counting{key: "base", risk: risk}
	registry, err := detector.NewRegistry(base)
	require.NoError(t, err)

	var opts []ensemble.Option
	if escalation != nil {
		opts = append(opts, ensemble.WithEscalation(escalation))
	}

	f := &fixture{
		base:  base,
		cache: analyzer.NewResultCache(time.Hour, 10),
	}
	deps := analyzer.Deps{
		Ensemble: ensemble.New(registry, opts...),
		Corpus: corpus.NewStore(corpus.StaticProvider{
			{DisplayName: "Naver", PrimaryDomain: "naver.com", Aliases: []string{"naver.me"}, Category: "portal"},
		}),
		Cache: f.cache,
	}
	if withStorage {
		f.store = mockstorage.NewMockAllStorage(gomock.NewController(t))
		deps.Storage = f.store
	}
	f.analyzer = analyzer.New(deps, options)

	return f
}

func TestAnalyzer_Analyze_InvalidURL(t *testing.T) {
	f := newFixture(t, 10, analyzer.Options{}, nil, false)

	for _, in := range []string{"", "   ", "javascript:alert(1)"} {
		_, err := f.analyzer.Analyze(context.Background(), analyzer.Request{URL: in})
		require.ErrorIs(t, err, serrors.ErrBadRequest, in)
	}
	require.Zero(t, f.base.calls.Load())
}

func TestAnalyzer_Analyze_Skipped(t *testing.T) {
	tests := []struct {
		url    string
		reason string
	}{
		{url: "http://localhost:3000/admin", reason: analyzer.SkipLocalhost},
		{url: "http://127.0.0.1/", reason: analyzer.SkipLocalhost},
		{url: "https://192.168.0.10/login", reason: analyzer.SkipIPLiteral},
		{url: "ftp://files.example.com/", reason: analyzer.SkipUnsupportedProtocol},
	}

	// storage has no expectations: skipped results are never persisted
	f := newFixture(t, 10, analyzer.Options{}, nil, true)
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			res, err := f.analyzer.Analyze(context.Background(), analyzer.Request{URL: tt.url})
			require.NoError(t, err)
			require.True(t, res.Skipped)
			require.Equal(t, tt.reason, res.SkipReason)
			require.Equal(t, 0, res.TotalRisk)
			require.Equal(t, domain.RiskLevelSafe, res.RiskLevel)
			require.Nil(t, res.ID)
		})
	}
	require.Zero(t, f.base.calls.Load())
	require.Zero(t, f.cache.Len())
}

func TestAnalyzer_Analyze_Whitelisted(t *testing.T) {
	f := newFixture(t, 90, analyzer.Options{Whitelist: []string{"Intranet.Example.org"}}, nil, true)

	tests := []struct {
		name      string
		url       string
		whitelist []string
	}{
		{name: "corpus primary", url: "https://naver.com"},
		{name: "corpus subdomain", url: "https://mail.naver.com/inbox"},
		{name: "corpus alias", url: "https://naver.me/abc"},
		{name: "configured", url: "https://intranet.example.org/"},
		{name: "configured subdomain", url: "http://wiki.intranet.example.org/"},
		{name: "request", url: "https://portal.corp.test/", whitelist: []string{"corp.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.analyzer.Analyze(context.Background(), analyzer.Request{URL: tt.url, Whitelist: tt.whitelist})
			require.NoError(t, err)
			require.True(t, res.Whitelisted)
			require.Equal(t, 0, res.TotalRisk)
			require.Empty(t, res.Findings)
		})
	}
	require.Zero(t, f.base.calls.Load())
}

func TestAnalyzer_Analyze_CachesAndPersists(t *testing.T) {
	f := newFixture(t, 55, analyzer.Options{}, nil, true)
	id := domain.AnalysisID(uuid.New())

	var stored domain.Analysis
	f.store.EXPECT().StoreAnalysis(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a domain.Analysis) (*domain.Analysis, error) {
			stored = a
			a.ID = id
			return &a, nil
		})

	ctx := context.Background()
	res, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "HTTPS://Login-Naver.example.com/a/"})
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, &id, res.ID)
	require.Equal(t, 55, res.TotalRisk)
	require.Equal(t, domain.RiskLevelWarning, res.RiskLevel)
	require.Equal(t, "https://login-naver.example.com/a", stored.URL)
	require.Equal(t, "login-naver.example.com", stored.Hostname)
	require.Equal(t, 55, stored.Result.TotalRisk)

	again, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://login-naver.example.com/other"})
	require.NoError(t, err)
	require.True(t, again.Cached)
	require.Nil(t, again.ID)
	require.Equal(t, res.AggregatedResult, again.AggregatedResult)
	require.Equal(t, int32(1), f.base.calls.Load())
}

func TestAnalyzer_Analyze_PageBypassesCache(t *testing.T) {
	f := newFixture(t, 30, analyzer.Options{}, nil, false)
	ctx := context.Background()

	_, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://example.com"})
	require.NoError(t, err)
	res, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://example.com", Page: &domain.PageContent{Title: "Login"}})
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, int32(2), f.base.calls.Load())
	require.Equal(t, int32(1), f.base.pages.Load())
}

func TestAnalyzer_Analyze_DetectorOverrides(t *testing.T) {
	f := newFixture(t, 30, analyzer.Options{Detectors: map[string]bool{"base": false}}, nil, false)

	res, err := f.analyzer.Analyze(context.Background(), analyzer.Request{URL: "https://a.example.com"})
	require.NoError(t, err)
	require.Empty(t, res.Findings)

	res, err = f.analyzer.Analyze(context.Background(), analyzer.Request{
		URL:       "https://b.example.com",
		Detectors: map[string]bool{"base": true},
	})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
}

func TestAnalyzer_Analyze_OverridesDoNotShareCache(t *testing.T) {
	f := newFixture(t, 30, analyzer.Options{}, nil, false)
	ctx := context.Background()

	off, err := f.analyzer.Analyze(ctx, analyzer.Request{
		URL:       "https://x.example.com",
		Detectors: map[string]bool{"base": false},
	})
	require.NoError(t, err)
	require.Empty(t, off.Findings)
	require.Zero(t, f.cache.Len())

	def, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://x.example.com"})
	require.NoError(t, err)
	require.False(t, def.Cached)
	require.Len(t, def.Findings, 1)
	require.Equal(t, int32(1), f.base.calls.Load())

	// a cached default result is not served to, nor replaced by, an override
	off, err = f.analyzer.Analyze(ctx, analyzer.Request{
		URL:       "https://x.example.com",
		Detectors: map[string]bool{"base": false},
	})
	require.NoError(t, err)
	require.False(t, off.Cached)
	require.Empty(t, off.Findings)

	again, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://x.example.com"})
	require.NoError(t, err)
	require.True(t, again.Cached)
	require.Equal(t, def.AggregatedResult, again.AggregatedResult)

	// switches equal to the defaults still share the cache
	same, err := f.analyzer.Analyze(ctx, analyzer.Request{
		URL:       "https://x.example.com",
		Detectors: map[string]bool{"base": true},
	})
	require.NoError(t, err)
	require.True(t, same.Cached)
	require.Equal(t, int32(1), f.base.calls.Load())
}

func TestAnalyzer_Analyze_EnableLLMOverrideDoesNotShareCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, 50, analyzer.Options{EnableLLM: false}, escalationMock(ctrl, 1), false)
	ctx := context.Background()

	def, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://x.example.com"})
	require.NoError(t, err)
	require.Equal(t, domain.EscalationDisabled, def.Escalation)

	enable := true
	res, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://x.example.com", EnableLLM: &enable})
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, domain.EscalationInvoked, res.Escalation)

	again, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://x.example.com"})
	require.NoError(t, err)
	require.True(t, again.Cached)
	require.Equal(t, domain.EscalationDisabled, again.Escalation)
}

func TestAnalyzer_AnalyzePage_Whitelist(t *testing.T) {
	f := newFixture(t, 90, analyzer.Options{}, nil, false)

	res, err := f.analyzer.AnalyzePage(context.Background(), "https://portal.corp.test/login",
		&domain.PageContent{Title: "Sign in"}, []string{"corp.test"})
	require.NoError(t, err)
	require.True(t, res.Whitelisted)
	require.Empty(t, res.Findings)
	require.Zero(t, f.base.calls.Load())
	require.Zero(t, f.cache.Len())
}

func TestAnalyzer_Analyze_StorageFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, 30, analyzer.Options{}, nil, true)
	f.store.EXPECT().StoreAnalysis(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	res, err := f.analyzer.Analyze(context.Background(), analyzer.Request{URL: "https://example.com"})
	require.NoError(t, err)
	require.Nil(t, res.ID)
	require.Equal(t, 30, res.TotalRisk)
}

func escalationMock(ctrl *gomock.Controller, times int) *mockdetector.MockDetector {
	m := mockdetector.NewMockDetector(ctrl)
	m.EXPECT().Key().Return(detector.KeyLLM).AnyTimes()
	m.EXPECT().Name().Return("LLMAnalyzer").AnyTimes()
	m.EXPECT().Weight().Return(0.3).AnyTimes()
	m.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		Return(domain.Finding{Risk: 80, Confidence: 0.9, Reason: "looks like a login clone"}, nil).
		Times(times)

	return m
}

func TestAnalyzer_Analyze_EnableLLMOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, 50, analyzer.Options{EnableLLM: false}, escalationMock(ctrl, 1), false)

	enable := true
	res, err := f.analyzer.Analyze(context.Background(), analyzer.Request{URL: "https://a.example.com", EnableLLM: &enable})
	require.NoError(t, err)
	require.Equal(t, domain.EscalationInvoked, res.Escalation)

	res, err = f.analyzer.Analyze(context.Background(), analyzer.Request{URL: "https://b.example.com"})
	require.NoError(t, err)
	require.Equal(t, domain.EscalationDisabled, res.Escalation)
}

func TestAnalyzer_AnalyzePage_CarriesEscalation(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, 50, analyzer.Options{EnableLLM: true}, escalationMock(ctrl, 1), false)
	ctx := context.Background()

	first, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://suspicious.example.com"})
	require.NoError(t, err)
	require.Equal(t, domain.EscalationInvoked, first.Escalation)

	page := &domain.PageContent{Title: "Sign in"}
	res, err := f.analyzer.AnalyzePage(ctx, "https://suspicious.example.com/login", page, nil)
	require.NoError(t, err)
	require.Equal(t, domain.EscalationCarried, res.Escalation)
	llm, ok := res.Finding(detector.KeyLLM)
	require.True(t, ok)
	require.Equal(t, 80, llm.Risk)
	require.Equal(t, first.TotalRisk, res.TotalRisk)
	require.Equal(t, int32(1), f.base.pages.Load())

	cached, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://suspicious.example.com"})
	require.NoError(t, err)
	require.True(t, cached.Cached)
	require.Equal(t, domain.EscalationCarried, cached.Escalation)
}

func TestAnalyzer_AnalyzePage_WithoutEarlierResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, 50, analyzer.Options{EnableLLM: true}, escalationMock(ctrl, 0), false)

	res, err := f.analyzer.AnalyzePage(context.Background(), "https://fresh.example.com", &domain.PageContent{Title: "x"}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.EscalationDisabled, res.Escalation)
	require.Len(t, res.Findings, 1)
}

func TestAnalyzer_Analysis(t *testing.T) {
	f := newFixture(t, 0, analyzer.Options{}, nil, true)
	id := domain.AnalysisID(uuid.New())
	missing := domain.AnalysisID(uuid.New())

	f.store.EXPECT().AnalysisByID(gomock.Any(), id).Return(&domain.Analysis{ID: id, Hostname: "example.com"}, nil)
	f.store.EXPECT().AnalysisByID(gomock.Any(), missing).Return(nil, nil)

	got, err := f.analyzer.Analysis(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "example.com", got.Hostname)

	_, err = f.analyzer.Analysis(context.Background(), missing)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	noStorage := newFixture(t, 0, analyzer.Options{}, nil, false)
	_, err = noStorage.analyzer.Analysis(context.Background(), id)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestAnalyzer_Analyses(t *testing.T) {
	f := newFixture(t, 0, analyzer.Options{}, nil, true)
	cursor := time.Date(2025, 3, 4, 5, 6, 7, 891000000, time.UTC)
	next := cursor.Add(-time.Hour)

	f.store.EXPECT().AnalysesByHostname(gomock.Any(), "example.com", time.Time{}, uint(2)).
		Return(storage.Analyses{Analyses: []domain.Analysis{{Hostname: "example.com"}}, NextCursor: &next}, nil)
	f.store.EXPECT().AnalysesByHostname(gomock.Any(), "example.com", cursor, uint(0)).
		Return(storage.Analyses{}, nil)

	list, nextCursor, err := f.analyzer.Analyses(context.Background(), " Example.COM ", "", 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "2025-03-04T04:06:07.891Z", nextCursor)

	list, nextCursor, err = f.analyzer.Analyses(context.Background(), "example.com", "2025-03-04T05:06:07.891Z", 0)
	require.NoError(t, err)
	require.Empty(t, list)
	require.Empty(t, nextCursor)

	_, _, err = f.analyzer.Analyses(context.Background(), "example.com", "yesterday", 0)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, _, err = f.analyzer.Analyses(context.Background(), "", "", 0)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestAnalyzer_InvalidateCache(t *testing.T) {
	f := newFixture(t, 10, analyzer.Options{}, nil, false)
	ctx := context.Background()

	for _, u := range []string{"https://a.example.com", "https://b.example.com"} {
		_, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: u})
		require.NoError(t, err)
	}
	require.Equal(t, 2, f.analyzer.InvalidateCache(ctx))
	require.Equal(t, 0, f.analyzer.InvalidateCache(ctx))

	res, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://a.example.com"})
	require.NoError(t, err)
	require.False(t, res.Cached)
}

func TestAnalyzer_ReloadCorpus(t *testing.T) {
	f := newFixture(t, 10, analyzer.Options{}, nil, false)
	ctx := context.Background()

	_, err := f.analyzer.Analyze(ctx, analyzer.Request{URL: "https://a.example.com"})
	require.NoError(t, err)

	n, err := f.analyzer.ReloadCorpus(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Zero(t, f.cache.Len())
}

func TestTrusted(t *testing.T) {
	require.True(t, analyzer.Trusted("a.b.example.com", "example.com", []string{"EXAMPLE.com"}))
	require.True(t, analyzer.Trusted("shop.example.co.kr", "example.co.kr", []string{"example.co.kr"}))
	require.False(t, analyzer.Trusted("notexample.com", "notexample.com", []string{"example.com"}))
	require.False(t, analyzer.Trusted("example.com", "example.com", []string{"", "  "}))
}
