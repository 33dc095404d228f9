package domainage_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"phishguard/internal/detector"
	"phishguard/internal/detector/domainage"
	"phishguard/pkg/logger"
	"phishguard/pkg/registrar"
	mockregistrar "phishguard/pkg/registrar/mock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		source     string
		risk       int
		confidence float64
	}{
		{name: "days old", age: 3 * 24 * time.Hour, source: registrar.SourceWhois, risk: 70, confidence: 0.8},
		{name: "weeks old", age: 45 * 24 * time.Hour, source: registrar.SourceWhois, risk: 50, confidence: 0.8},
		{name: "months old", age: 200 * 24 * time.Hour, source: registrar.SourceRDAP, risk: 30, confidence: 0.6},
		{name: "years old", age: 10 * 365 * 24 * time.Hour, source: registrar.SourceRDAP, risk: 5, confidence: 0.6},
		{name: "boundary 30 days", age: 30 * 24 * time.Hour, source: registrar.SourceWhois, risk: 50, confidence: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domainage.Score("www.example.com", registrar.Record{CreatedAt: now.Add(-tt.age), Source: tt.source}, now)
			require.Equal(t, tt.risk, f.Risk)
			require.InDelta(t, tt.confidence, f.Confidence, 1e-9)
			require.Equal(t, "unknown", f.Details["registrar"])
		})
	}
}

func TestDetector_Analyze_CachesByRegistrableDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mockregistrar.NewMockLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "example.co.kr").Return(registrar.Record{
		Domain:    "example.co.kr",
		CreatedAt: now.Add(-10 * 24 * time.Hour),
		Registrar: "Gabia",
		Source:    registrar.SourceWhois,
	}, nil).Times(1)

	d := domainage.New(lookup, domainage.WithClock(func() time.Time { return now }))

	for _, host := range []string{"www.example.co.kr", "shop.example.co.kr"} {
		f := detector.Safe(context.Background(), d, detector.Context{Hostname: host})
		require.Equal(t, 70, f.Risk)
		require.Equal(t, 10, f.Details["ageDays"])
		require.Equal(t, "Gabia", f.Details["registrar"])
	}
}

func TestDetector_Analyze_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mockregistrar.NewMockLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "example.com").Return(registrar.Record{}, errors.New("timeout")).Times(2)

	d := domainage.New(lookup)

	for range 2 {
		f := detector.Safe(context.Background(), d, detector.Context{Hostname: "example.com"})
		require.Zero(t, f.Confidence)
		require.Zero(t, f.Risk)
		require.Equal(t, detector.KeyDomainAge, f.Detector)
		require.Contains(t, f.Reason, "timeout")
		require.Equal(t, domainage.LookupFailed, f.Details["error"])
		require.Equal(t, "example.com", f.Details["hostname"])
	}
}
