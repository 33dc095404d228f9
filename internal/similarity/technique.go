package similarity

import "strings"

// Technique labels the transformation that turns a legitimate domain into a look-alike.
type Technique string

const (
	TechniqueNone                   Technique = "none"
	TechniqueCharacterRepetition    Technique = "character_repetition"
	TechniqueCharacterSubstitution  Technique = "character_substitution"
	TechniqueCharacterInsertion     Technique = "character_insertion"
	TechniqueCharacterDeletion      Technique = "character_deletion"
	TechniqueHomoglyph              Technique = "homoglyph"
	TechniqueTLDChange              Technique = "tld_change"
	TechniqueHyphenInsertion        Technique = "hyphen_insertion"
	TechniqueSubdomainImpersonation Technique = "subdomain_impersonation"
)

// Result pairs a similarity score with the detected technique.
type Result struct {
	Score     float64   `json:"score"`
	Technique Technique `json:"technique"`
}

// Compare scores suspect against original and classifies the technique.
// Identical inputs yield TechniqueNone.
func Compare(original, suspect string) Result {
	if original == suspect {
		return Result{Score: 1, Technique: TechniqueNone}
	}

	return Result{
		Score:     Similarity(original, suspect),
		Technique: ClassifyTechnique(original, suspect),
	}
}

// ClassifyTechnique names the impersonation technique used to derive suspect
// from original. Rules are tried in a fixed order and the first match wins:
// subdomain impersonation, TLD change, homoglyph, hyphen insertion, character
// repetition, then insertion/deletion/substitution by length.
func ClassifyTechnique(original, suspect string) Technique {
	origLabels := strings.Split(original, ".")
	suspLabels := strings.Split(suspect, ".")
	origName, origTLD := splitDomain(origLabels)
	suspName, suspTLD := splitDomain(suspLabels)

	if len(suspLabels) > len(origLabels) && len(suspLabels) >= 3 {
		bare := strings.ReplaceAll(origName, ".", "")
		for _, label := range suspLabels[:len(suspLabels)-1] {
			if label == "" || bare == "" {
				continue
			}
			if strings.Contains(label, bare) || strings.Contains(bare, label) {
				return TechniqueSubdomainImpersonation
			}
		}
	}

	if origName == suspName && origTLD != "" && suspTLD != "" && origTLD != suspTLD {
		return TechniqueTLDChange
	}

	if origName != suspName &&
		strings.ToLower(NormalizeHomoglyphs(origName)) == strings.ToLower(NormalizeHomoglyphs(suspName)) {
		return TechniqueHomoglyph
	}

	if strings.Count(suspName, "-") > strings.Count(origName, "-") &&
		strings.ReplaceAll(origName, "-", "") == strings.ReplaceAll(suspName, "-", "") {
		return TechniqueHyphenInsertion
	}

	origLen, suspLen := len([]rune(origName)), len([]rune(suspName))
	if origName != suspName && collapseRepeats(origName) == collapseRepeats(suspName) && suspLen > origLen {
		return TechniqueCharacterRepetition
	}

	switch {
	case suspLen > origLen:
		return TechniqueCharacterInsertion
	case suspLen < origLen:
		return TechniqueCharacterDeletion
	default:
		return TechniqueCharacterSubstitution
	}
}

// splitDomain returns everything before the last label and the last label.
// A single label is returned as the name with an empty TLD.
func splitDomain(labels []string) (string, string) {
	if len(labels) < 2 {
		return strings.Join(labels, "."), ""
	}

	return strings.Join(labels[:len(labels)-1], "."), labels[len(labels)-1]
}

// collapseRepeats squeezes runs of the same rune into one rune.
func collapseRepeats(s string) string {
	var b strings.Builder
	var last rune = -1
	for _, r := range s {
		if r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}

	return b.String()
}
