package phiguard

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is an immutable detection rule. Patterns are created at startup
// (built-ins plus user registrations) and are read-only for the process
// lifetime, so a compiled Pattern is safe for concurrent use.
type Pattern struct {
	// Name labels the pattern in redaction markers and audit events,
	// e.g. "SSN", "EMAIL". Unique within a catalog.
	Name string

	// Expression is the rule body: regex source for KindRegex, a literal
	// string for KindExact, a target word for KindFuzzy.
	Expression string

	// Kind selects how Expression is interpreted.
	Kind PatternKind

	// Priority orders evaluation; higher-priority patterns win when spans
	// overlap. Ties are broken by catalog insertion order.
	Priority int

	// ContextWords, when non-empty and contextual detection is enabled,
	// requires one of these lowercase tokens within the context window of a
	// match for the match to count.
	ContextWords []string

	// HighConfidence marks strict identifier formats (dashed SSNs, emails,
	// credit cards) that apply unconditionally even in contextual mode.
	HighConfidence bool

	re  *regexp.Regexp
	seq int
}

// compile prepares the pattern for matching and validates its shape.
// Called once by Catalog.AddPattern.
func (p *Pattern) compile() error {
	if p.Name == "" {
		return fmt.Errorf("%w: pattern name must not be empty", ErrInvalidPattern)
	}
	if len(p.Name) > MaxPatternNameLength {
		return NewInvalidPatternError(p.Name,
			fmt.Errorf("name must be %d characters or less, got %d", MaxPatternNameLength, len(p.Name)))
	}
	if p.Expression == "" {
		return NewInvalidPatternError(p.Name, fmt.Errorf("expression must not be empty"))
	}

	switch p.Kind {
	case KindRegex:
		re, err := regexp.Compile(p.Expression)
		if err != nil {
			return NewInvalidPatternError(p.Name, err)
		}
		p.re = re
	case KindExact, KindFuzzy:
		// matched without a regex engine
	default:
		return NewInvalidPatternError(p.Name, fmt.Errorf("unknown pattern kind %d", p.Kind))
	}

	// normalized into a fresh slice; the caller's backing array stays intact
	if len(p.ContextWords) > 0 {
		words := make([]string, len(p.ContextWords))
		for i, w := range p.ContextWords {
			words[i] = strings.ToLower(w)
		}
		p.ContextWords = words
	}

	return nil
}

// Match is the ephemeral result of a detection scan. Matches returned from a
// single scan never overlap; overlap candidates lose to the higher-priority
// pattern.
type Match struct {
	// PatternName is the Name of the pattern that matched.
	PatternName string

	// Text is the matched input text.
	Text string

	// Start and End are byte offsets of the span in the scanned string.
	Start int
	End   int

	// Line is the 1-based line number the match starts on.
	Line int
}
