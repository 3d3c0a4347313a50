package textscan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) in a scanned string.
type Span struct {
	Start int
	End   int
}

// ExactSpans returns the spans of every non-overlapping occurrence of a
// literal in text. Matching is case-sensitive; occurrences inside larger
// words are ignored so that a literal "Ann" does not fire on "Annex".
func ExactSpans(text, literal string) []Span {
	if literal == "" {
		return nil
	}
	var spans []Span
	offset := 0
	for {
		i := strings.Index(text[offset:], literal)
		if i < 0 {
			return spans
		}
		start := offset + i
		end := start + len(literal)
		if wordBounded(text, start, end) {
			spans = append(spans, Span{Start: start, End: end})
		}
		offset = end
	}
}

// FuzzySpans returns the spans of tokens within edit distance of the target
// word. The tolerance scales with target length: one edit per four
// characters, at least one. Comparison is case-insensitive. Exact-case
// occurrences are included too (distance zero).
func FuzzySpans(text, target string) []Span {
	if target == "" {
		return nil
	}
	lowerTarget := strings.ToLower(target)
	maxDist := len(lowerTarget) / 4
	if maxDist < 1 {
		maxDist = 1
	}

	var spans []Span
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if fuzzyEqual(strings.ToLower(text[start:i]), lowerTarget, maxDist) {
				spans = append(spans, Span{Start: start, End: i})
			}
			start = -1
		}
	}
	if start >= 0 {
		if fuzzyEqual(strings.ToLower(text[start:]), lowerTarget, maxDist) {
			spans = append(spans, Span{Start: start, End: len(text)})
		}
	}
	return spans
}

func fuzzyEqual(token, target string, maxDist int) bool {
	// cheap length pre-filter before the edit-distance computation
	if len(token) < len(target)-maxDist || len(token) > len(target)+maxDist {
		return false
	}
	return Levenshtein(token, target) <= maxDist
}

// wordBounded reports whether the span is not embedded in a larger
// alphanumeric run.
func wordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
