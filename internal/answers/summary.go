package answers

import (
	"fmt"
	"regexp"
)

// wordsPerAnswer caps how many significant words a single answer contributes.
const wordsPerAnswer = 3

var wordRE = regexp.MustCompile(`[a-z]+`)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {},
	"all": {}, "any": {}, "can": {}, "her": {}, "was": {}, "one": {}, "our": {},
	"out": {}, "has": {}, "him": {}, "his": {}, "how": {}, "its": {}, "who": {},
	"did": {}, "yes": {}, "get": {}, "too": {}, "use": {}, "she": {}, "they": {},
	"them": {}, "their": {}, "this": {}, "that": {}, "with": {}, "have": {},
	"from": {}, "your": {}, "what": {}, "when": {}, "were": {}, "will": {},
	"would": {}, "there": {}, "been": {}, "just": {}, "like": {}, "very": {},
	"really": {}, "some": {}, "into": {}, "more": {}, "about": {}, "because": {},
	"always": {}, "also": {},
}

// Summarize returns a one-line digest of a category's answers.
//
// Each answer contributes its first three significant words (lowercase
// alphabetic, longer than two letters, not a stop-word). If the most frequent
// word occurs more than once it is reported; otherwise the digest falls back
// to the number of contributors. Ties go to the word seen first, so the result
// is deterministic for a given answer order.
func Summarize(texts []string, contributors int) string {
	counts := make(map[string]int)
	var order []string
	for _, t := range texts {
		for _, w := range significantWords(t, wordsPerAnswer) {
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	best, bestN := "", 0
	for _, w := range order {
		if counts[w] > bestN {
			best, bestN = w, counts[w]
		}
	}
	if bestN > 1 {
		return fmt.Sprintf("%q was mentioned %d times", best, bestN)
	}
	if contributors == 1 {
		return "1 friend shared their thoughts"
	}
	return fmt.Sprintf("%d friends shared their thoughts", contributors)
}

func significantWords(s string, limit int) []string {
	out := make([]string, 0, limit)
	for _, w := range wordRE.FindAllString(Normalize(s), -1) {
		if len(w) <= 2 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		out = append(out, w)
		if len(out) == limit {
			break
		}
	}
	return out
}
