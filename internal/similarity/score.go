package similarity

const (
	// DefaultPrefixScale is the Winkler prefix bonus applied per matching leading rune.
	DefaultPrefixScale = 0.1
	// MaxPrefixScale bounds the prefix bonus so scores stay within [0,1].
	MaxPrefixScale = 0.25
	// DefaultPrefixWeight is the share of PrefixSimilarity in CombinedSimilarity.
	DefaultPrefixWeight = 0.6

	maxPrefixLength = 4
)

// PrefixSimilarity returns the Jaro-Winkler similarity of a and b in [0,1].
// Common leading runes, up to four, raise the Jaro score by prefixScale each,
// with prefixScale capped at MaxPrefixScale.
func PrefixSimilarity(a, b string, prefixScale float64) float64 {
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	window := max(len(ra), len(rb))/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, len(ra))
	matchedB := make([]bool, len(rb))
	matches := 0
	for i := range ra {
		lo := max(0, i-window)
		hi := min(i+window+1, len(rb))
		for j := lo; j < hi; j++ {
			if matchedB[j] || ra[i] != rb[j] {
				continue
			}
			matchedA[i], matchedB[j] = true, true
			matches++

			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := range ra {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if ra[i] != rb[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	jaro := (m/float64(len(ra)) + m/float64(len(rb)) + (m-float64(transpositions)/2)/m) / 3

	prefix := 0
	for i := 0; i < min(maxPrefixLength, len(ra), len(rb)); i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	scale := min(prefixScale, MaxPrefixScale)

	return jaro + float64(prefix)*scale*(1-jaro)
}

// CombinedSimilarity blends the normalized edit distance with PrefixSimilarity:
//
//	(1-w)·(1 - EditDistance/maxLen) + w·PrefixSimilarity
//
// where w is prefixWeight. Identical inputs score 1; a single empty input scores 0.
func CombinedSimilarity(a, b string, prefixWeight float64) float64 {
	if a == b {
		return 1
	}

	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}

	editScore := 1 - float64(EditDistance(a, b))/float64(max(la, lb))

	return (1-prefixWeight)*editScore + prefixWeight*PrefixSimilarity(a, b, DefaultPrefixScale)
}

// Similarity is CombinedSimilarity with the default prefix weight.
func Similarity(a, b string) float64 {
	return CombinedSimilarity(a, b, DefaultPrefixWeight)
}
