// Package content scores the text, forms and resources of a page for
// phishing lures.
package content

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"phishguard/internal/detector"
	"phishguard/pkg/domain"
)

// Weight is the aggregation weight of the content detector.
const Weight = 0.2

// Signal types reported in the finding details.
const (
	SignalUrgency            = "urgency"
	SignalReward             = "reward"
	SignalSuspiciousForm     = "suspicious_form"
	SignalBrandImpersonation = "brand_impersonation"
	SignalExternalResource   = "external_resource"
)

// Signal is one group of suspicious elements found on a page.
type Signal struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Matches     []string `json:"matches"`
	Weight      float64  `json:"weight"`
}

// Detector applies keyword and form heuristics to page content.
type Detector struct{}

// New creates a content detector.
func New() *Detector {
	return &Detector{}
}

func (d *Detector) Key() string     { return detector.KeyContent }
func (d *Detector) Name() string    { return "ContentAnalyzer" }
func (d *Detector) Weight() float64 { return Weight }

// Analyze scores dc.Page. Without page content the finding has zero confidence.
func (d *Detector) Analyze(_ context.Context, dc detector.Context) (domain.Finding, error) {
	page := dc.Page
	if page.Empty() {
		return detector.Skipped("no page content to analyze", domain.Details{"error": "no_content"}), nil
	}

	hostname := strings.ToLower(dc.Hostname)
	signals := slices.DeleteFunc([]Signal{
		phrases(SignalUrgency, "urgency or fear phrases", page.TextContent, urgencyPatterns, 0.8),
		phrases(SignalReward, "reward or prize phrases", page.TextContent, rewardPatterns, 0.7),
		suspiciousForms(page, hostname),
		brandImpersonation(page, hostname),
		externalResources(page, hostname),
	}, func(s Signal) bool { return len(s.Matches) == 0 })

	if len(signals) == 0 {
		return domain.Finding{
			Risk:       0,
			Confidence: 0.8,
			Reason:     "no suspicious patterns in the page content",
			Details:    domain.Details{"findings": []Signal{}},
		}, nil
	}

	var total float64
	descriptions := make([]string, 0, len(signals))
	for _, s := range signals {
		total += s.Weight
		descriptions = append(descriptions, s.Description)
	}

	return domain.Finding{
		Risk:       min(100, int(math.Round(total*100))),
		Confidence: min(0.95, 0.5+float64(len(signals))*0.1),
		Reason:     "suspicious page elements: " + strings.Join(descriptions, ", "),
		Details:    domain.Details{"findings": signals, "totalPatterns": len(signals)},
	}, nil
}

// phrases sums the weights of the matching patterns, caps the sum at 1 and
// scales it by factor.
func phrases(typ, description, text string, patterns []pattern, factor float64) Signal {
	s := Signal{Type: typ, Description: description}
	if text == "" {
		return s
	}

	var weight float64
	for _, pt := range patterns {
		if m := pt.re.FindString(text); m != "" {
			if !slices.Contains(s.Matches, m) {
				s.Matches = append(s.Matches, m)
			}
			weight += pt.weight
		}
	}
	s.Weight = min(weight, 1) * factor

	return s
}

func suspiciousForms(page *domain.PageContent, hostname string) Signal {
	s := Signal{Type: SignalSuspiciousForm, Description: "suspicious input forms"}

	var weight float64
	for _, form := range page.Forms {
		var (
			hasPassword bool
			texts       []string
		)
		for _, in := range form.Inputs {
			if strings.EqualFold(in.Type, "password") {
				hasPassword = true
			}
			texts = append(texts, strings.ToLower(in.Name), strings.ToLower(in.Placeholder))
		}
		all := strings.Join(texts, " ")

		if hasPassword && !mentionsBrand(hostname) {
			s.Matches = append(s.Matches, "password requested by an unknown site")
			weight += 0.3
		}
		if containsAny(all, "주민", "ssn", "resident") {
			s.Matches = append(s.Matches, "resident registration number requested")
			weight += 0.4
		}
		if containsAny(all, "카드", "card number", "cvv", "cvc") {
			s.Matches = append(s.Matches, "card number requested")
			weight += 0.3
		}

		personal := 0
		for _, group := range [][]string{
			{"이름", "name"},
			{"생년월일", "birth"},
			{"전화", "phone"},
			{"주소", "address"},
		} {
			if containsAny(all, group...) {
				personal++
			}
		}
		if personal >= 3 {
			s.Matches = append(s.Matches, "excessive personal information requested")
			weight += 0.4
		}
	}
	s.Weight = min(weight, 1) * 0.8

	return s
}

func brandImpersonation(page *domain.PageContent, hostname string) Signal {
	s := Signal{Type: SignalBrandImpersonation, Description: "brand impersonation"}
	text := strings.ToLower(page.Title + " " + page.MetaDescription)

	var weight float64
	for _, brand := range KnownBrands {
		if strings.Contains(text, brand) && !strings.Contains(hostname, brand) {
			s.Matches = append(s.Matches, fmt.Sprintf("title mentions %q but the domain %s does not", brand, hostname))
			weight += 0.4

			break
		}
	}

	if page.Favicon != "" {
		for _, brand := range KnownBrands {
			if strings.Contains(page.Favicon, brand) && !strings.Contains(hostname, brand) {
				s.Matches = append(s.Matches, fmt.Sprintf("favicon of %s served for another domain", brand))
				weight += 0.3

				break
			}
		}
	}
	s.Weight = min(weight, 1) * 0.9

	return s
}

func externalResources(page *domain.PageContent, hostname string) Signal {
	s := Signal{Type: SignalExternalResource, Description: "suspicious external resources"}

	var weight float64
	for _, res := range page.ExternalResources {
		for _, brand := range KnownBrands {
			if !strings.Contains(res, brand) || strings.Contains(hostname, brand) {
				continue
			}
			if imageExt.MatchString(res) && logoKeyword.MatchString(res) {
				s.Matches = append(s.Matches, fmt.Sprintf("loads a %s logo from elsewhere", brand))
				weight += 0.3
			}
		}
	}
	s.Weight = min(weight, 0.5)

	return s
}

func mentionsBrand(hostname string) bool {
	return slices.ContainsFunc(KnownBrands, func(brand string) bool {
		return strings.Contains(hostname, brand)
	})
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
