// Package protocol rates the transport security of a destination.
package protocol

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"phishguard/internal/detector"
	"phishguard/pkg/domain"
)

// Weight is the aggregation weight of the protocol detector.
const Weight = 0.15

// maxMixedResources bounds the number of insecure resources listed in details.
const maxMixedResources = 10

// Sensitive input categories reported for plain-HTTP forms.
const (
	FieldPassword    = "password"
	FieldCreditCard  = "credit_card"
	FieldSSN         = "ssn"
	FieldBankAccount = "bank_account"
)

// Detector flags plain HTTP, sensitive forms served over HTTP and mixed content.
type Detector struct{}

// New creates a protocol detector.
func New() *Detector {
	return &Detector{}
}

func (d *Detector) Key() string     { return detector.KeyProtocol }
func (d *Detector) Name() string    { return "ProtocolDetector" }
func (d *Detector) Weight() float64 { return Weight }

func (d *Detector) Analyze(_ context.Context, dc detector.Context) (domain.Finding, error) {
	switch strings.ToLower(dc.Protocol) {
	case "https:":
		if mixed := mixedContent(dc.Page); len(mixed) > 0 {
			return domain.Finding{
				Risk:       30,
				Confidence: 0.7,
				Reason:     "the HTTPS page loads resources over plain HTTP (mixed content)",
				Details: domain.Details{
					"protocol":       "https",
					"issue":          "mixed_content",
					"mixedResources": mixed,
				},
			}, nil
		}

		return domain.Finding{
			Risk:       0,
			Confidence: 1,
			Reason:     "the site uses a secure HTTPS connection",
			Details:    domain.Details{"protocol": "https", "issue": "none"},
		}, nil
	case "http:":
		if fields := sensitiveFields(dc.Page); len(fields) > 0 {
			return domain.Finding{
				Risk:       80,
				Confidence: 0.9,
				Reason:     "the site is served over unencrypted HTTP and asks for sensitive input",
				Details: domain.Details{
					"protocol":  "http",
					"issue":     "sensitive_form_on_http",
					"formTypes": fields,
				},
			}, nil
		}

		return domain.Finding{
			Risk:       40,
			Confidence: 0.8,
			Reason:     "the site is served over unencrypted HTTP",
			Details:    domain.Details{"protocol": "http", "issue": "no_encryption"},
		}, nil
	default:
		return domain.Finding{
			Risk:       20,
			Confidence: 0.5,
			Reason:     fmt.Sprintf("the site uses the unusual protocol %q", dc.Protocol),
			Details:    domain.Details{"protocol": dc.Protocol, "issue": "unusual_protocol"},
		}, nil
	}
}

// sensitiveFields lists the distinct sensitive input categories found in
// the forms of page, in order of first appearance.
func sensitiveFields(page *domain.PageContent) []string {
	if page == nil {
		return nil
	}

	var out []string
	add := func(field string) {
		if !slices.Contains(out, field) {
			out = append(out, field)
		}
	}

	for _, form := range page.Forms {
		for _, in := range form.Inputs {
			typ := strings.ToLower(in.Type)
			name := strings.ToLower(in.Name)
			placeholder := strings.ToLower(in.Placeholder)

			if typ == "password" {
				add(FieldPassword)
			}
			if containsAny(name, "card", "카드") || containsAny(placeholder, "card", "카드") {
				add(FieldCreditCard)
			}
			if containsAny(name, "ssn", "jumin", "주민") || strings.Contains(placeholder, "주민등록") {
				add(FieldSSN)
			}
			if containsAny(name, "account", "계좌") || strings.Contains(placeholder, "계좌") {
				add(FieldBankAccount)
			}
		}
	}

	return out
}

func mixedContent(page *domain.PageContent) []string {
	if page == nil {
		return nil
	}

	var out []string
	for _, res := range page.ExternalResources {
		if strings.HasPrefix(res, "http://") {
			out = append(out, res)
			if len(out) == maxMixedResources {
				break
			}
		}
	}

	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
