package protocol_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/internal/detector"
	"phishguard/internal/detector/protocol"
	"phishguard/pkg/domain"
)

func TestDetector_Analyze(t *testing.T) {
	loginPage := &domain.PageContent{Forms: []domain.Form{{Inputs: []domain.FormInput{
		{Type: "text", Name: "id"},
		{Type: "password", Name: "pw"},
		{Type: "text", Name: "card_no"},
		{Type: "password", Name: "pw2"},
	}}}}

	tests := []struct {
		name       string
		protocol   string
		page       *domain.PageContent
		risk       int
		confidence float64
		issue      string
	}{
		{name: "https", protocol: "https:", risk: 0, confidence: 1, issue: "none"},
		{
			name:       "https with mixed content",
			protocol:   "https:",
			page:       &domain.PageContent{ExternalResources: []string{"https://cdn.example.com/a.js", "http://cdn.example.com/b.js"}},
			risk:       30,
			confidence: 0.7,
			issue:      "mixed_content",
		},
		{name: "http", protocol: "http:", risk: 40, confidence: 0.8, issue: "no_encryption"},
		{name: "http with login form", protocol: "http:", page: loginPage, risk: 80, confidence: 0.9, issue: "sensitive_form_on_http"},
		{name: "upper case scheme", protocol: "HTTPS:", risk: 0, confidence: 1, issue: "none"},
		{name: "ftp", protocol: "ftp:", risk: 20, confidence: 0.5, issue: "unusual_protocol"},
	}

	d := protocol.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := d.Analyze(context.Background(), detector.Context{Protocol: tt.protocol, Page: tt.page})
			require.NoError(t, err)
			require.Equal(t, tt.risk, f.Risk)
			require.InDelta(t, tt.confidence, f.Confidence, 1e-9)
			require.Equal(t, tt.issue, f.Details["issue"])
		})
	}
}

func TestDetector_Analyze_SensitiveFieldsAreDistinct(t *testing.T) {
	page := &domain.PageContent{Forms: []domain.Form{
		{Inputs: []domain.FormInput{{Type: "password"}, {Name: "account_no"}}},
		{Inputs: []domain.FormInput{{Type: "password"}, {Placeholder: "주민등록번호"}}},
	}}

	f, err := protocol.New().Analyze(context.Background(), detector.Context{Protocol: "http:", Page: page})
	require.NoError(t, err)
	require.Equal(t,
		[]string{protocol.FieldPassword, protocol.FieldBankAccount, protocol.FieldSSN},
		f.Details["formTypes"])
}

func TestDetector_Analyze_MixedContentIsBounded(t *testing.T) {
	page := &domain.PageContent{}
	for i := range 25 {
		page.ExternalResources = append(page.ExternalResources, fmt.Sprintf("http://cdn.example.com/%d.png", i))
	}

	f, err := protocol.New().Analyze(context.Background(), detector.Context{Protocol: "https:", Page: page})
	require.NoError(t, err)
	require.Len(t, f.Details["mixedResources"], 10)
}
