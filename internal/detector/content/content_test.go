package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/internal/detector"
	"phishguard/internal/detector/content"
	"phishguard/pkg/domain"
)

func TestDetector_Analyze(t *testing.T) {
	loginForm := domain.Form{Inputs: []domain.FormInput{
		{Type: "text", Name: "username"},
		{Type: "password", Name: "password"},
	}}

	tests := []struct {
		name       string
		hostname   string
		page       *domain.PageContent
		risk       int
		confidence float64
		signals    []string
	}{
		{
			name:     "no page",
			hostname: "evil.com",
		},
		{
			name:     "empty page",
			hostname: "evil.com",
			page:     &domain.PageContent{},
		},
		{
			name:       "clean page",
			hostname:   "example.com",
			page:       &domain.PageContent{Title: "Example Domain", TextContent: "This domain is for use in examples."},
			risk:       0,
			confidence: 0.8,
		},
		{
			name:       "urgency phrases",
			hostname:   "evil.com",
			page:       &domain.PageContent{TextContent: "Your account suspended. Verify immediately!"},
			risk:       80,
			confidence: 0.6,
			signals:    []string{content.SignalUrgency},
		},
		{
			name:       "korean reward phrases",
			hostname:   "evil.com",
			page:       &domain.PageContent{TextContent: "축하합니다! 경품 당첨"},
			risk:       70,
			confidence: 0.6,
			signals:    []string{content.SignalReward},
		},
		{
			name:       "brand in title on foreign domain",
			hostname:   "evil.com",
			page:       &domain.PageContent{Title: "NAVER Login"},
			risk:       36,
			confidence: 0.6,
			signals:    []string{content.SignalBrandImpersonation},
		},
		{
			name:       "password form and brand title",
			hostname:   "evil.com",
			page:       &domain.PageContent{Title: "Naver", Forms: []domain.Form{loginForm}},
			risk:       60,
			confidence: 0.7,
			signals:    []string{content.SignalSuspiciousForm, content.SignalBrandImpersonation},
		},
		{
			name:       "brand login on its own domain",
			hostname:   "nid.naver.com",
			page:       &domain.PageContent{Title: "Naver", Forms: []domain.Form{loginForm}},
			risk:       0,
			confidence: 0.8,
		},
		{
			name:     "borrowed logos are capped",
			hostname: "evil.com",
			page: &domain.PageContent{ExternalResources: []string{
				"https://cdn.example.net/paypal_logo.png",
				"https://cdn.example.net/google-icon.svg",
			}},
			risk:       50,
			confidence: 0.6,
			signals:    []string{content.SignalExternalResource},
		},
	}

	d := content.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := d.Analyze(context.Background(), detector.Context{Hostname: tt.hostname, Page: tt.page})
			require.NoError(t, err)
			require.Equal(t, tt.risk, f.Risk)
			require.InDelta(t, tt.confidence, f.Confidence, 1e-9)

			if len(tt.signals) == 0 {
				return
			}
			signals, ok := f.Details["findings"].([]content.Signal)
			require.True(t, ok)
			var types []string
			for _, s := range signals {
				types = append(types, s.Type)
			}
			require.Equal(t, tt.signals, types)
		})
	}
}

func TestDetector_Analyze_ExcessivePersonalInformation(t *testing.T) {
	page := &domain.PageContent{Forms: []domain.Form{{Inputs: []domain.FormInput{
		{Name: "name"},
		{Name: "birth"},
		{Name: "phone"},
		{Placeholder: "주민등록번호"},
	}}}}

	f, err := content.New().Analyze(context.Background(), detector.Context{Hostname: "evil.com", Page: page})
	require.NoError(t, err)
	// resident number 0.4 + personal info 0.4, scaled by 0.8
	require.Equal(t, 64, f.Risk)
}
