package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/internal/similarity"
)

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{a: "naver", b: "naverr", want: 1},
		{a: "kitten", b: "sitting", want: 3},
		{a: "", b: "google", want: 6},
		{a: "google", b: "", want: 6},
		{a: "kakao", b: "kakao", want: 0},
		{a: "gogle", b: "google", want: 1},
		{a: "n\u0430ver", b: "naver", want: 1}, // cyrillic a
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, similarity.EditDistance(tc.a, tc.b), "%s/%s", tc.a, tc.b)
		require.Equal(t, tc.want, similarity.EditDistance(tc.b, tc.a), "%s/%s", tc.b, tc.a)
	}
}

func TestEditDistance_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "naver.com", "\uc0bc\uc131", "g00gle"} {
		require.Zero(t, similarity.EditDistance(s, s))
		require.Equal(t, len([]rune(s)), similarity.EditDistance("", s))
	}
}

func TestPrefixSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, similarity.PrefixSimilarity("naver", "naver", 0.1), 1e-9)
	require.InDelta(t, 1.0, similarity.PrefixSimilarity("", "", 0.1), 1e-9)
	require.Zero(t, similarity.PrefixSimilarity("", "naver", 0.1))
	require.Zero(t, similarity.PrefixSimilarity("abc", "xyz", 0.1))

	got := similarity.PrefixSimilarity("naver", "naverr", 0.1)
	require.Greater(t, got, 0.9)
	require.InDelta(t, 0.9667, got, 1e-3)

	// classic reference pair
	require.InDelta(t, 0.9611, similarity.PrefixSimilarity("martha", "marhta", 0.1), 1e-3)

	// the prefix scale is capped so the score never exceeds 1
	require.LessOrEqual(t, similarity.PrefixSimilarity("abcdx", "abcdy", 5), 1.0+1e-9)
}

func TestCombinedSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, similarity.Similarity("google", "google"), 1e-9)
	require.Zero(t, similarity.Similarity("google", ""))
	require.InDelta(t, 1.0, similarity.Similarity("", ""), 1e-9)

	got := similarity.Similarity("naver", "naverr")
	require.Greater(t, got, 0.85)
	require.InDelta(t, 0.9133, got, 1e-3)

	require.Less(t, similarity.Similarity("naver", "kakao"), 0.85)
}

func TestCombinedSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"naver", "naverr"},
		{"google", "g00gle"},
		{"kakao", "kkakao"},
		{"paypal", "paypa1"},
		{"samsung", "samsumg"},
	}
	for _, p := range pairs {
		require.InDelta(t,
			similarity.Similarity(p[0], p[1]),
			similarity.Similarity(p[1], p[0]),
			1e-9, "%v", p)
	}
}

func TestNormalizeHomoglyphs(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{in: "n\u0430v\u0435r", want: "naver"},              // cyrillic a and e
		{in: "g00gle", want: "google"},                       // digits
		{in: "paypa1", want: "paypal"},                       // digit one
		{in: "\uff47\uff4f\uff4f\uff47\uff4c\uff45", want: "google"}, // fullwidth
		{in: "\u03b1pple", want: "apple"},                    // greek alpha
		{in: "k\u0430k\u0430\u043e.com", want: "kakao.com"},
		{in: "\u0412\u0410\u041d\u041a", want: "BAHK"}, // cyrillic upper case
		{in: "caf\u00e9", want: "cafe"},
		{in: "naver.com", want: "naver.com"},
		{in: "\uc0bc\uc131", want: "\uc0bc\uc131"}, // hangul is kept
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, similarity.NormalizeHomoglyphs(tc.in), tc.in)
	}
}

func TestNormalizeHomoglyphs_Idempotent(t *testing.T) {
	for _, s := range []string{"n\u0430v\u0435r", "g00gle", "\uff47\uff4f\uff4f", "\u0391\u0392\u0395|!1", "plain", "\u00e9\u00e8"} {
		once := similarity.NormalizeHomoglyphs(s)
		require.Equal(t, once, similarity.NormalizeHomoglyphs(once), s)
	}
}

func TestHasHomoglyphs(t *testing.T) {
	require.True(t, similarity.HasHomoglyphs("g00gle"))
	require.False(t, similarity.HasHomoglyphs("google"))
}

func TestClassifyTechnique(t *testing.T) {
	cases := []struct {
		original, suspect string
		want              similarity.Technique
	}{
		{original: "naver", suspect: "naverr", want: similarity.TechniqueCharacterRepetition},
		{original: "google", suspect: "g00gle", want: similarity.TechniqueHomoglyph},
		{original: "naver.com", suspect: "naver.net", want: similarity.TechniqueTLDChange},
		{original: "google.com", suspect: "goo-gle.com", want: similarity.TechniqueHyphenInsertion},
		{original: "naver", suspect: "navre", want: similarity.TechniqueCharacterSubstitution},
		{original: "google", suspect: "gogle", want: similarity.TechniqueCharacterDeletion},
		{original: "kakao", suspect: "kakaoo1", want: similarity.TechniqueCharacterInsertion},
		{original: "naver.com", suspect: "naver.com.evil.com", want: similarity.TechniqueSubdomainImpersonation},
		{original: "naver.com", suspect: "login-naver.secure.com", want: similarity.TechniqueSubdomainImpersonation},
	}
	for _, tc := range cases {
		t.Run(tc.original+"->"+tc.suspect, func(t *testing.T) {
			require.Equal(t, tc.want, similarity.ClassifyTechnique(tc.original, tc.suspect))
		})
	}
}

func TestCompare(t *testing.T) {
	res := similarity.Compare("naver.com", "naver.com")
	require.Equal(t, similarity.TechniqueNone, res.Technique)
	require.InDelta(t, 1.0, res.Score, 1e-9)

	res = similarity.Compare("naver", "naverr")
	require.Equal(t, similarity.TechniqueCharacterRepetition, res.Technique)
	require.Greater(t, res.Score, 0.85)
}
