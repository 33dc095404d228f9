package similarity

import "strings"

// homoglyphs maps visually confusable code points to the ASCII letter they
// imitate. No value is itself a key, which keeps NormalizeHomoglyphs idempotent.
var homoglyphs = map[rune]rune{ //nolint: gochecknoglobals
	// cyrillic lower case
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'у': 'y', 'х': 'x', 'і': 'i', 'ј': 'j',
	'һ': 'h', 'ѕ': 's', 'є': 'e', 'ї': 'i', 'ґ': 'g', 'ь': 'b', 'к': 'k', 'м': 'm', 'т': 't', 'н': 'h',
	// cyrillic upper case
	'В': 'B', 'Н': 'H', 'А': 'A', 'Е': 'E', 'О': 'O', 'Р': 'P', 'С': 'C', 'Т': 'T', 'Х': 'X', 'М': 'M', 'К': 'K',
	// greek lower case
	'ο': 'o', 'α': 'a', 'ε': 'e', 'ι': 'i', 'κ': 'k', 'ν': 'v', 'ρ': 'p', 'τ': 't', 'υ': 'u', 'ω': 'w',
	// greek upper case
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H', 'Ι': 'I', 'Κ': 'K', 'Μ': 'M', 'Ν': 'N',
	'Ο': 'O', 'Ρ': 'P', 'Τ': 'T', 'Υ': 'Y', 'Χ': 'X',
	// digits and symbols
	'0': 'o', '1': 'l', '!': 'l', '|': 'l',
	// latin extended
	'ı': 'i', 'ẚ': 'a',
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
}

// fullwidth lower-case Latin letters occupy U+FF41..U+FF5A.
const (
	fullwidthA = 'ａ'
	fullwidthZ = 'ｚ'
)

// NormalizeHomoglyphs replaces every known look-alike rune in s with its ASCII
// counterpart. Unknown runes are kept.
func NormalizeHomoglyphs(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= fullwidthA && r <= fullwidthZ {
			return 'a' + (r - fullwidthA)
		}
		if repl, ok := homoglyphs[r]; ok {
			return repl
		}

		return r
	}, s)
}

// HasHomoglyphs reports whether s contains at least one mapped rune.
func HasHomoglyphs(s string) bool {
	return NormalizeHomoglyphs(s) != s
}
