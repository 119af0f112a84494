package diff

import "strings"

// Similarity computes the Jaccard index of the word-token sets of a and b:
// both strings are lowercased and split on whitespace, duplicate words within
// one chunk collapse, and the result is |A ∩ B| / |A ∪ B| in [0,1].
//
// The metric is symmetric. When both token sets are empty (punctuation-only
// input) the result is 0 rather than a division by zero.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for word := range setA {
		if setB[word] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// tokenSet lowercases s and collects its whitespace-separated words.
func tokenSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
