// Package assessment compares a reference sentence with a learner's spoken
// transcript at the word level.
package assessment

import "strings"

// punctuation lists the characters removed before comparison.
var punctuation = strings.NewReplacer(
	".", "",
	",", "",
	"!", "",
	"?", "",
	";", "",
	":", "",
	"'", "",
	"\"", "",
	"‘", "",
	"’", "",
	"“", "",
	"”", "",
)

// Normalize canonicalizes text for comparison: lower-case, punctuation
// stripped, whitespace runs collapsed to a single space and trimmed.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	stripped := punctuation.Replace(lowered)
	return strings.Join(strings.Fields(stripped), " ")
}

// Tokens returns the normalized words of text. Empty input yields no tokens.
func Tokens(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	words := strings.Split(normalized, " ")
	tokens := words[:0]
	for _, w := range words {
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
