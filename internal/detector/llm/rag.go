package llm

import (
	"fmt"
	"slices"
	"strings"

	"phishguard/internal/corpus"
)

const (
	// SimilarityFloor is the minimum score of a corpus domain listed in the context.
	SimilarityFloor = 0.6
	// MaxSimilarDomains caps the corpus domains listed in the context.
	MaxSimilarDomains = 5
)

// KeywordCategory groups phishing vocabulary searched in URLs and page text.
type KeywordCategory struct {
	Name     string
	Label    string
	Keywords []string
}

// KeywordCategories lists the vocabulary searched by BuildContext.
var KeywordCategories = []KeywordCategory{
	{
		Name:     "login",
		Label:    "credential prompt",
		Keywords: []string{"login", "signin", "sign in", "verify", "password", "로그인", "비밀번호", "본인인증"},
	},
	{
		Name:     "account",
		Label:    "account threat",
		Keywords: []string{"account", "suspended", "locked", "unusual activity", "계정", "정지", "잠금", "해외 로그인"},
	},
	{
		Name:     "payment",
		Label:    "payment request",
		Keywords: []string{"payment", "billing", "card", "refund", "invoice", "결제", "카드", "환불", "납부"},
	},
	{
		Name:     "prize",
		Label:    "reward lure",
		Keywords: []string{"prize", "winner", "gift", "free", "reward", "당첨", "경품", "무료", "쿠폰", "지원금"},
	},
	{
		Name:     "delivery",
		Label:    "delivery notice",
		Keywords: []string{"delivery", "parcel", "shipment", "tracking", "택배", "배송", "주소 확인", "운송장"},
	},
}

// MatchKeywords returns, per category name, the keywords found in text.
func MatchKeywords(text string) map[string][]string {
	lower := strings.ToLower(text)
	out := map[string][]string{}
	for _, c := range KeywordCategories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				out[c.Name] = append(out[c.Name], kw)
			}
		}
	}

	return out
}

// BuildContext describes the corpus domains that resemble hostname and the
// phishing vocabulary found in the URL and page text. snap may be nil.
func BuildContext(snap *corpus.Snapshot, hostname, rawURL, text string) string {
	var b strings.Builder

	if snap != nil {
		similar := snap.SimilarDomains(hostname, SimilarityFloor, MaxSimilarDomains)
		if len(similar) > 0 {
			b.WriteString("#### Similar legitimate domains\n")
			for _, d := range similar {
				status := fmt.Sprintf("similarity %.2f", d.Similarity)
				if d.IsExactMatch {
					status = "exact match"
				}
				fmt.Fprintf(&b, "- %s (%s) [%s] - %s\n", d.Name, d.Domain, d.Category, status)
			}
			b.WriteString("\n")
		}
	}

	matches := MatchKeywords(rawURL + "\n" + text)
	if len(matches) > 0 {
		b.WriteString("#### Phishing keywords found\n")
		for _, c := range KeywordCategories {
			if found, ok := matches[c.Name]; ok {
				fmt.Fprintf(&b, "- %s: %s\n", c.Label, strings.Join(slices.Compact(found), ", "))
			}
		}
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return "No related phishing patterns were found.\n"
	}

	return b.String()
}
