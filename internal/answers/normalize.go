// Package answers canonicalizes free-text answers so that equivalent
// submissions aggregate into one tally, and derives the short summary shown
// when a day is revealed.
//
// Everything here is pure and safe for concurrent use.
package answers

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxRunes is the default length cap applied to normalized answers.
const MaxRunes = 500

// Normalize lower-cases s, drops every rune outside [a-z] and whitespace,
// collapses whitespace runs to a single space and trims the ends.
// Empty or whitespace-only input yields "". Normalize is idempotent.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// Canonical normalizes s and caps it at max runes, trimming any space left
// dangling by the cut. A non-positive limit means MaxRunes.
func Canonical(s string, limit int) string {
	if limit <= 0 {
		limit = MaxRunes
	}
	n := Normalize(s)
	// Normalized text is ASCII, so bytes and runes coincide.
	if len(n) > limit {
		n = strings.TrimRight(n[:limit], " ")
	}
	return n
}

// Label title-cases a normalized answer for display, e.g.
// "golden retriever" -> "Golden Retriever".
func Label(s string) string {
	return cases.Title(language.English).String(s)
}
