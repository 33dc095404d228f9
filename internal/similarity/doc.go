// Package similarity implements the string measures used to spot look-alike
// domains: edit distance, a Jaro-Winkler style prefix similarity, a blended
// score of both, Unicode homoglyph folding and classification of the
// impersonation technique that turns one domain into another.
package similarity
