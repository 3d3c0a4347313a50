package textscan

import (
	"strings"
	"unicode/utf8"
)

// TruncateAtRune cuts s to at most max bytes without splitting a UTF-8
// sequence. Returns s unchanged when it already fits.
func TruncateAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// LineAt returns the 1-based line number containing the byte offset.
func LineAt(s string, offset int) int {
	if offset > len(s) {
		offset = len(s)
	}
	return 1 + strings.Count(s[:offset], "\n")
}
