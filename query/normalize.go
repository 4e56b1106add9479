package query

import (
	"strings"
	"unicode"
)

// Normalize lower-cases text, drops punctuation and symbol characters,
// collapses whitespace runs to a single space and trims the ends.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
