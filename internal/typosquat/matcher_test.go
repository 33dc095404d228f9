package typosquat_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/internal/corpus"
	"phishguard/internal/detector"
	"phishguard/internal/similarity"
	"phishguard/internal/typosquat"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

func bundled(t *testing.T) []domain.KnownDomain {
	t.Helper()

	entries, err := corpus.NewFileProvider("").Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	return entries
}

func TestMatcher_Analyze_CorpusDomainsAreExact(t *testing.T) {
	entries := bundled(t)
	m := typosquat.NewMatcher()

	for _, e := range entries {
		for _, d := range e.Domains() {
			f := m.Analyze(d, entries)
			require.Equal(t, 0, f.Risk, d)
			require.InDelta(t, 1.0, f.Confidence, 1e-9, d)
			require.Equal(t, typosquat.MatchTypeExact, f.Details["matchType"], d)
			require.Equal(t, e.PrimaryDomain, f.Details["matchedDomain"], d)
		}
	}
}

func TestMatcher_Analyze(t *testing.T) {
	entries := bundled(t)
	m := typosquat.NewMatcher()

	tests := []struct {
		name       string
		hostname   string
		risk       int
		confidence float64
		matched    string
		technique  similarity.Technique
	}{
		{
			name:       "official subdomain",
			hostname:   "m.naver.com",
			risk:       0,
			confidence: 1,
			matched:    "naver.com",
		},
		{
			name:       "alias",
			hostname:   "mail.gmail.com",
			risk:       0,
			confidence: 1,
			matched:    "google.com",
		},
		{
			name:       "known domain in front of another domain",
			hostname:   "naver.com.evil.com",
			risk:       95,
			confidence: 0.95,
			matched:    "naver.com",
			technique:  similarity.TechniqueSubdomainImpersonation,
		},
		{
			name:       "brand as first label",
			hostname:   "naver.evil-domain.com",
			risk:       90,
			confidence: 0.9,
			matched:    "naver.com",
			technique:  similarity.TechniqueSubdomainImpersonation,
		},
		{
			name:       "repeated character",
			hostname:   "naverr.com",
			risk:       93,
			confidence: 0.9133,
			matched:    "naver.com",
			technique:  similarity.TechniqueCharacterRepetition,
		},
		{
			name:       "repeated leading character",
			hostname:   "kkakao.com",
			risk:       89,
			confidence: 0.8673,
			matched:    "kakao.com",
			technique:  similarity.TechniqueCharacterRepetition,
		},
		{
			name:       "swapped characters",
			hostname:   "samsumg.com",
			risk:       94,
			confidence: 0.9086,
			matched:    "samsung.com",
			technique:  similarity.TechniqueCharacterSubstitution,
		},
		{
			name:       "digit look-alikes",
			hostname:   "g00gle.com",
			risk:       95,
			confidence: 0.95,
			matched:    "google.com",
			technique:  similarity.TechniqueHomoglyph,
		},
		{
			name:       "digit one for letter l",
			hostname:   "paypa1.com",
			risk:       95,
			confidence: 0.95,
			matched:    "paypal.com",
			technique:  similarity.TechniqueHomoglyph,
		},
		{
			name:       "cyrillic look-alike",
			hostname:   "n\u0430ver.com",
			risk:       95,
			confidence: 0.95,
			matched:    "naver.com",
			technique:  similarity.TechniqueHomoglyph,
		},
		{
			name:       "different tld",
			hostname:   "naver.net",
			risk:       100,
			confidence: 0.95,
			matched:    "naver.com",
			technique:  similarity.TechniqueTLDChange,
		},
		{
			name:       "hyphen inside brand",
			hostname:   "n-aver.com",
			risk:       92,
			confidence: 0.9033,
			matched:    "naver.com",
			technique:  similarity.TechniqueHyphenInsertion,
		},
		{
			name:       "brand with hyphenated suffix",
			hostname:   "naver-login.com",
			risk:       85,
			confidence: 0.85,
			matched:    "naver.com",
			technique:  similarity.TechniqueHyphenInsertion,
		},
		{
			name:       "unrelated domain",
			hostname:   "wikipedia.org",
			risk:       0,
			confidence: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := m.Analyze(tt.hostname, entries)
			require.Equal(t, tt.risk, f.Risk)
			require.InDelta(t, tt.confidence, f.Confidence, 1e-3)
			if tt.matched != "" {
				require.Equal(t, tt.matched, f.Details["matchedDomain"])
			}
			if tt.technique != "" {
				require.Equal(t, tt.technique, f.Details["technique"])
			}
		})
	}
}

func TestMatcher_Analyze_NoMatchReportsBestCandidate(t *testing.T) {
	f := typosquat.NewMatcher().Analyze("example.com", bundled(t))
	require.Equal(t, 0, f.Risk)
	require.InDelta(t, 0.8, f.Confidence, 1e-9)

	best, ok := f.Details["bestMatch"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "apple.com", best["domain"])
	require.InDelta(t, 0.7, best["similarity"], 1e-9)
}

func TestMatcher_Analyze_HomoglyphDetails(t *testing.T) {
	f := typosquat.NewMatcher().Analyze("g00gle.com", bundled(t))
	require.Equal(t, "g00gle.com", f.Details["originalDomain"])
	require.Equal(t, "google.com", f.Details["normalizedDomain"])
}

func TestMatcher_Analyze_EmptyCorpus(t *testing.T) {
	f := typosquat.NewMatcher().Analyze("naverr.com", nil)
	require.Equal(t, 0, f.Risk)
	require.InDelta(t, 0.8, f.Confidence, 1e-9)
	require.Nil(t, f.Details["bestMatch"])
}

type failingProvider struct{}

func (failingProvider) Load(context.Context) ([]domain.KnownDomain, error) {
	return nil, errors.New("corpus file missing")
}

func TestDetector_Analyze(t *testing.T) {
	d := typosquat.NewDetector(corpus.NewStore(corpus.NewFileProvider("")), typosquat.NewMatcher())
	require.Equal(t, detector.KeyTyposquat, d.Key())
	require.InDelta(t, 0.4, d.Weight(), 1e-9)

	f := detector.Safe(context.Background(), d, detector.Context{Hostname: "naverr.com"})
	require.Equal(t, detector.KeyTyposquat, f.Detector)
	require.GreaterOrEqual(t, f.Risk, 85)
	require.Equal(t, "naver.com", f.Details["matchedDomain"])
}

func TestDetector_Analyze_CorpusUnavailable(t *testing.T) {
	d := typosquat.NewDetector(corpus.NewStore(failingProvider{}), typosquat.NewMatcher())

	f := detector.Safe(context.Background(), d, detector.Context{Hostname: "naverr.com"})
	require.Equal(t, 0, f.Risk)
	require.InDelta(t, 0.8, f.Confidence, 1e-9)
}
