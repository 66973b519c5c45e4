package service

import "strings"

// duplicateThreshold is the word-overlap ratio above which two question
// texts are treated as duplicates.
const duplicateThreshold = 0.85

// wordSet tokenizes text into an unordered set of lowercase
// whitespace-delimited words.
func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// overlapRatio computes |intersection| / max(|a|, |b|) for the word sets
// of the two texts. Returns 0 when both are empty.
func overlapRatio(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	if larger == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(larger)
}

// IsDuplicate reports whether the candidate question text is a
// near-duplicate of any previously accepted text. This is a cheap lexical
// heuristic, not semantic equivalence: questions that mean the same thing
// with different wording will slip through.
func IsDuplicate(candidate string, accepted []string) bool {
	for _, existing := range accepted {
		if overlapRatio(candidate, existing) > duplicateThreshold {
			return true
		}
	}
	return false
}
