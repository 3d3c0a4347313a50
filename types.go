package phiguard

// RedactionMode selects the default RedactionStrategy used by a Sanitizer.
type RedactionMode int

const (
	// ModeFull replaces the whole matched span with the redaction marker.
	ModeFull RedactionMode = iota
	// ModePartial preserves leading/trailing characters and masks the middle.
	ModePartial
	// ModeHash replaces the value with a deterministic salted hash.
	ModeHash
)

// String returns the string representation of the redaction mode.
func (m RedactionMode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModePartial:
		return "partial"
	case ModeHash:
		return "hash"
	default:
		return "unknown"
	}
}

// ParseRedactionMode maps a configuration string to a RedactionMode.
// Unrecognized values map to ModeFull: this subsystem fails safe, and full
// redaction is the strictest behavior available.
func ParseRedactionMode(s string) RedactionMode {
	switch s {
	case "partial":
		return ModePartial
	case "hash":
		return ModeHash
	default:
		return ModeFull
	}
}

// PatternKind identifies how a Pattern's expression is interpreted.
type PatternKind int

const (
	// KindRegex treats the expression as a regular expression.
	KindRegex PatternKind = iota
	// KindExact treats the expression as a literal string.
	KindExact
	// KindFuzzy treats the expression as a target word matched within an
	// edit-distance tolerance.
	KindFuzzy
)

// String returns the string representation of the pattern kind.
func (k PatternKind) String() string {
	switch k {
	case KindRegex:
		return "regex"
	case KindExact:
		return "exact"
	case KindFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// ParsePatternKind maps a configuration string to a PatternKind.
// The second return value is false if the string names no known kind.
func ParsePatternKind(s string) (PatternKind, bool) {
	switch s {
	case "regex":
		return KindRegex, true
	case "exact":
		return KindExact, true
	case "fuzzy":
		return KindFuzzy, true
	default:
		return KindRegex, false
	}
}

// Posture selects which built-in patterns are active and how aggressively
// low-confidence patterns apply.
type Posture int

const (
	// PostureStandard gates low-confidence patterns (bare proper names,
	// unseparated SSNs) on nearby context words.
	PostureStandard Posture = iota
	// PostureStrict activates low-confidence patterns unconditionally,
	// widening recall at the cost of more false positives.
	PostureStrict
)

// String returns the string representation of the posture.
func (p Posture) String() string {
	switch p {
	case PostureStandard:
		return "standard"
	case PostureStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParsePosture maps a configuration string to a Posture. Unrecognized values
// map to PostureStandard.
func ParsePosture(s string) Posture {
	if s == "strict" {
		return PostureStrict
	}
	return PostureStandard
}

// shape is the closed set of input shapes the Sanitizer dispatches on.
// Determined once per value, one handler per variant.
type shape int

const (
	shapeText shape = iota
	shapeMapping
	shapeSequence
	shapeScalar
	shapeUnknown
)

// shapeOf classifies a value into the shape enum. Anything outside the
// closed set, structs and typed maps included, reports shapeUnknown so the
// sanitizer can refuse it rather than pass PHI fields through unscanned.
func shapeOf(v any) shape {
	switch v.(type) {
	case string:
		return shapeText
	case map[string]any:
		return shapeMapping
	case []any, []string:
		return shapeSequence
	case nil, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return shapeScalar
	default:
		return shapeUnknown
	}
}
