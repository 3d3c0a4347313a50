// Package textscan implements the low-level text mechanics behind PHI
// detection: token windows for contextual disambiguation, literal and
// fuzzy span location, line accounting, and safe truncation.
package textscan

import (
	"strings"
	"unicode"
)

// HasContextWord reports whether any of the given lowercase words appears
// within `window` tokens before or after the span [start, end) of text.
// The span's own tokens are not consulted; only the surroundings
// corroborate a match.
func HasContextWord(text string, start, end int, words []string, window int) bool {
	if len(words) == 0 {
		return true
	}

	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	before := Tokenize(text[:start])
	if len(before) > window {
		before = before[len(before)-window:]
	}
	after := Tokenize(text[end:])
	if len(after) > window {
		after = after[:window]
	}

	for _, tok := range before {
		if wordSet[tok] {
			return true
		}
	}
	for _, tok := range after {
		if wordSet[tok] {
			return true
		}
	}
	return false
}

// Tokenize splits text into lowercase alphanumeric tokens.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
