package typosquat

import (
	"fmt"
	"math"
	"strings"

	"phishguard/internal/normalizer"
	"phishguard/internal/similarity"
	"phishguard/pkg/domain"
)

const (
	// DefaultThreshold is the minimum similarity for a look-alike match.
	DefaultThreshold = 0.85
	// DefaultHyphenThreshold is the minimum similarity for a hyphen-insertion match.
	DefaultHyphenThreshold = 0.7

	// MatchTypeExact marks a finding for a corpus domain or one of its subdomains.
	MatchTypeExact = "exact"
)

// genericSubdomains are first labels that never count as brand impersonation
// on their own.
var genericSubdomains = map[string]struct{}{ //nolint: gochecknoglobals
	"www": {}, "m": {}, "mail": {}, "blog": {}, "shop": {}, "store": {}, "pay": {}, "login": {},
	"auth": {}, "api": {}, "app": {}, "web": {}, "map": {}, "maps": {}, "news": {}, "search": {},
	"tv": {}, "music": {}, "open": {}, "dev": {}, "story": {}, "cafe": {}, "card": {}, "order": {},
	"my": {}, "id": {}, "help": {}, "support": {}, "about": {}, "admin": {}, "portal": {},
	"cloud": {}, "drive": {}, "docs": {}, "meet": {}, "teams": {}, "chat": {},
}

// techniqueBonus is added to the similarity-derived risk of a look-alike.
var techniqueBonus = map[similarity.Technique]int{ //nolint: gochecknoglobals
	similarity.TechniqueHomoglyph:              5,
	similarity.TechniqueSubdomainImpersonation: 5,
	similarity.TechniqueCharacterSubstitution:  3,
	similarity.TechniqueCharacterRepetition:    2,
	similarity.TechniqueCharacterInsertion:     2,
	similarity.TechniqueCharacterDeletion:      3,
	similarity.TechniqueTLDChange:              4,
	similarity.TechniqueHyphenInsertion:        2,
}

// Matcher classifies hostnames against a corpus of known domains.
type Matcher struct {
	// Threshold is the minimum similarity for the homoglyph and general
	// look-alike checks.
	Threshold float64
	// HyphenThreshold is the minimum similarity for the hyphen-insertion check.
	HyphenThreshold float64
}

// NewMatcher returns a Matcher using the default thresholds.
func NewMatcher() Matcher {
	return Matcher{Threshold: DefaultThreshold, HyphenThreshold: DefaultHyphenThreshold}
}

// match is the best-scoring corpus entry for a base name.
type match struct {
	entry      domain.KnownDomain
	base       string
	similarity float64
}

// Analyze classifies hostname against entries. The checks run in a fixed
// order and the first one that applies decides the finding: exact match,
// subdomain impersonation, homoglyph, general similarity, hyphen insertion.
// An empty corpus always yields a no-match finding.
func (m Matcher) Analyze(hostname string, entries []domain.KnownDomain) domain.Finding {
	hostname = strings.ToLower(normalizer.DecodeInternationalized(strings.TrimSuffix(hostname, ".")))

	for _, e := range entries {
		if e.Owns(hostname) {
			return domain.Finding{
				Risk:       0,
				Confidence: 1,
				Reason:     fmt.Sprintf("%s is an official domain of %s (%s)", hostname, e.DisplayName, e.PrimaryDomain),
				Details: domain.Details{
					"matchedDomain": e.PrimaryDomain,
					"matchType":     MatchTypeExact,
					"domainName":    e.DisplayName,
				},
			}
		}
	}

	if f, ok := subdomainImpersonation(hostname, entries); ok {
		return f
	}

	current := normalizer.RegistrableDomain(hostname)

	if normalized := similarity.NormalizeHomoglyphs(current); normalized != current {
		if best, ok := bestMatch(normalized, entries); ok && best.similarity >= m.Threshold {
			return domain.Finding{
				Risk:       95,
				Confidence: 0.95,
				Reason: fmt.Sprintf("%s uses characters that look like %s",
					current, best.entry.PrimaryDomain),
				Details: domain.Details{
					"matchedDomain":    best.entry.PrimaryDomain,
					"similarity":       round2(best.similarity),
					"technique":        similarity.TechniqueHomoglyph,
					"originalDomain":   current,
					"normalizedDomain": normalized,
					"domainName":       best.entry.DisplayName,
				},
			}
		}
	}

	best, found := bestMatch(current, entries)
	if found && best.similarity >= m.Threshold {
		technique := similarity.ClassifyTechnique(best.base, firstLabel(current))
		if tldChanged(current, best.entry.PrimaryDomain) {
			technique = similarity.TechniqueTLDChange
		}

		return domain.Finding{
			Risk:       min(100, int(math.Round(best.similarity*100))+techniqueBonus[technique]),
			Confidence: min(0.95, best.similarity),
			Reason: fmt.Sprintf("%s closely resembles %s",
				current, best.entry.PrimaryDomain),
			Details: domain.Details{
				"matchedDomain": best.entry.PrimaryDomain,
				"similarity":    round2(best.similarity),
				"technique":     technique,
				"domainName":    best.entry.DisplayName,
			},
		}
	}

	if f, ok := m.hyphenInsertion(current, entries); ok {
		return f
	}

	details := domain.Details{"bestMatch": nil}
	if found {
		details["bestMatch"] = map[string]any{
			"domain":     best.entry.PrimaryDomain,
			"similarity": round2(best.similarity),
		}
	}

	return domain.Finding{
		Risk:       0,
		Confidence: 0.8,
		Reason:     "no resemblance to a known domain",
		Details:    details,
	}
}

// subdomainImpersonation detects hostnames that carry a known domain, or a
// brand name as their first label, in front of an unrelated domain, e.g.
// naver.com.evil.com or naver.evil-domain.com.
func subdomainImpersonation(hostname string, entries []domain.KnownDomain) (domain.Finding, bool) {
	labels := strings.Split(hostname, ".")

	for _, e := range entries {
		primary := e.PrimaryDomain
		if primary == "" {
			continue
		}

		if strings.Contains(hostname, primary) && !strings.HasSuffix(hostname, primary) {
			return impersonation(e, 95, 0.95,
				fmt.Sprintf("%s embeds %s in front of another domain", hostname, primary)), true
		}

		brand := firstLabel(primary)
		if _, generic := genericSubdomains[brand]; generic {
			continue
		}
		if len(labels) > 2 && labels[0] == brand && !strings.HasSuffix(hostname, primary) {
			return impersonation(e, 90, 0.9,
				fmt.Sprintf("%s uses the brand name %q as a subdomain to imitate %s", hostname, brand, e.DisplayName)), true
		}
	}

	return domain.Finding{}, false
}

func impersonation(e domain.KnownDomain, risk int, confidence float64, reason string) domain.Finding {
	return domain.Finding{
		Risk:       risk,
		Confidence: confidence,
		Reason:     reason,
		Details: domain.Details{
			"matchedDomain": e.PrimaryDomain,
			"similarity":    confidence,
			"technique":     similarity.TechniqueSubdomainImpersonation,
			"domainName":    e.DisplayName,
		},
	}
}

// hyphenInsertion detects brand names split or padded with hyphens, e.g.
// naver-login.com.
func (m Matcher) hyphenInsertion(current string, entries []domain.KnownDomain) (domain.Finding, bool) {
	if !strings.Contains(current, "-") {
		return domain.Finding{}, false
	}

	joined := strings.ReplaceAll(firstLabel(current), "-", "")
	for _, e := range entries {
		brand := firstLabel(e.PrimaryDomain)
		if brand == "" || !(strings.Contains(joined, brand) || strings.Contains(brand, joined)) {
			continue
		}

		score := similarity.Similarity(joined, brand)
		if score < m.HyphenThreshold {
			continue
		}

		return domain.Finding{
			Risk:       85,
			Confidence: 0.85,
			Reason:     fmt.Sprintf("%s inserts hyphens into %s", current, e.PrimaryDomain),
			Details: domain.Details{
				"matchedDomain": e.PrimaryDomain,
				"similarity":    round2(score),
				"technique":     similarity.TechniqueHyphenInsertion,
				"domainName":    e.DisplayName,
			},
		}, true
	}

	return domain.Finding{}, false
}

// bestMatch returns the entry whose primary base name scores highest against
// the base name of registrable. Ties keep the earliest entry.
func bestMatch(registrable string, entries []domain.KnownDomain) (match, bool) {
	base := firstLabel(registrable)

	var (
		best  match
		found bool
	)
	for _, e := range entries {
		primaryBase := firstLabel(e.PrimaryDomain)
		score := similarity.Similarity(base, primaryBase)
		if !found || score > best.similarity {
			best = match{entry: e, base: primaryBase, similarity: score}
			found = true
		}
	}

	return best, found
}

// tldChanged reports whether current and known share a base name but differ
// in everything after it.
func tldChanged(current, known string) bool {
	currentBase, currentTLD, _ := strings.Cut(current, ".")
	knownBase, knownTLD, _ := strings.Cut(known, ".")

	return currentBase == knownBase && currentTLD != knownTLD
}

func firstLabel(host string) string {
	label, _, _ := strings.Cut(host, ".")

	return label
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
