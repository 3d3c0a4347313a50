package phiguard

import (
	"sort"

	"github.com/mindwell-health/phiguard/internal/textscan"
)

// Detector scans strings against a pattern catalog and yields the ordered,
// non-overlapping set of matches.
//
// A Detector holds no per-call state; a single instance is safe for
// concurrent use from any number of goroutines.
type Detector struct {
	catalog    *Catalog
	contextual bool
	window     int
}

// NewDetector creates a detector over the given catalog. The config
// supplies the contextual-detection switch and token window.
func NewDetector(cfg Config, catalog *Catalog) *Detector {
	return &Detector{
		catalog:    catalog,
		contextual: cfg.ContextualDetection,
		window:     cfg.ContextWindow,
	}
}

// DetectPHI returns every accepted match in text, ascending by start
// offset. Candidates are considered in catalog order (priority descending,
// then insertion order) and accepted greedily: a candidate whose span
// intersects an already-accepted span is discarded, so the higher-priority
// pattern wins every overlap.
//
// An empty string yields no matches and never an error.
func (d *Detector) DetectPHI(text string) []Match {
	if text == "" {
		return nil
	}

	var accepted []Match
	for _, p := range d.catalog.Patterns() {
		for _, span := range d.spansFor(p, text) {
			if intersectsAny(accepted, span) {
				continue
			}
			if d.contextGated(p) &&
				!textscan.HasContextWord(text, span.Start, span.End, p.ContextWords, d.window) {
				continue
			}
			accepted = append(accepted, Match{
				PatternName: p.Name,
				Text:        text[span.Start:span.End],
				Start:       span.Start,
				End:         span.End,
			})
		}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	for i := range accepted {
		accepted[i].Line = textscan.LineAt(text, accepted[i].Start)
	}
	return accepted
}

// ContainsPHI reports whether DetectPHI would return any match for text.
func (d *Detector) ContainsPHI(text string) bool {
	if text == "" {
		return false
	}
	for _, p := range d.catalog.Patterns() {
		for _, span := range d.spansFor(p, text) {
			if d.contextGated(p) &&
				!textscan.HasContextWord(text, span.Start, span.End, p.ContextWords, d.window) {
				continue
			}
			return true
		}
	}
	return false
}

// contextGated reports whether a pattern's matches require a nearby context
// word. Patterns without context words, and patterns marked high
// confidence, apply unconditionally.
func (d *Detector) contextGated(p *Pattern) bool {
	return d.contextual && len(p.ContextWords) > 0 && !p.HighConfidence
}

func (d *Detector) spansFor(p *Pattern, text string) []textscan.Span {
	switch p.Kind {
	case KindExact:
		return textscan.ExactSpans(text, p.Expression)
	case KindFuzzy:
		return textscan.FuzzySpans(text, p.Expression)
	default:
		locs := p.re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			return nil
		}
		spans := make([]textscan.Span, len(locs))
		for i, loc := range locs {
			spans[i] = textscan.Span{Start: loc[0], End: loc[1]}
		}
		return spans
	}
}

func intersectsAny(accepted []Match, span textscan.Span) bool {
	for _, m := range accepted {
		if span.Start < m.End && m.Start < span.End {
			return true
		}
	}
	return false
}
