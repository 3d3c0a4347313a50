package phiguard

// Built-in pattern names. Exposed so callers can remove or override
// individual built-ins by name.
const (
	PatternSSN        = "SSN"
	PatternSSNDigits  = "SSN_DIGITS"
	PatternEmail      = "EMAIL"
	PatternPhone      = "PHONE"
	PatternName       = "NAME"
	PatternDOB        = "DOB"
	PatternMRN        = "MRN"
	PatternCreditCard = "CREDIT_CARD"
)

// builtinPatterns returns the default detection rules for a posture.
//
// Priorities put strict identifier formats above looser numeric formats so
// that a dashed SSN is never claimed by the credit-card or phone patterns.
// Low-confidence patterns (bare proper names, unseparated 9-digit runs) are
// context-gated in the standard posture and unconditional in the strict
// posture.
func builtinPatterns(posture Posture) []Pattern {
	strict := posture == PostureStrict

	nameContext := []string{"patient", "name", "mr", "mrs", "ms", "dr", "client"}
	ssnDigitsContext := []string{"ssn", "social", "security"}
	dobContext := []string{"dob", "birth", "born", "birthdate", "birthday"}
	if strict {
		nameContext = nil
		ssnDigitsContext = nil
		dobContext = nil
	}

	return []Pattern{
		{
			// the optional label prefix folds "SSN: 123-45-6789" into a
			// single span, so the label does not survive redaction either
			Name:           PatternSSN,
			Expression:     `\b(?:SSN[:#]?\s*)?\d{3}-\d{2}-\d{4}\b`,
			Kind:           KindRegex,
			Priority:       100,
			HighConfidence: true,
		},
		{
			Name:           PatternMRN,
			Expression:     `\b(?:MRN|PT)[-:#\s]\s*[A-Z0-9]{5,10}\b`,
			Kind:           KindRegex,
			Priority:       95,
			HighConfidence: true,
		},
		{
			Name:           PatternEmail,
			Expression:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			Kind:           KindRegex,
			Priority:       90,
			HighConfidence: true,
		},
		{
			Name:           PatternCreditCard,
			Expression:     `\b(?:\d[ -]?){13,16}\b`,
			Kind:           KindRegex,
			Priority:       85,
			HighConfidence: true,
		},
		{
			Name:       PatternPhone,
			Expression: `(?:\+?1[-.\s])?\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}\b`,
			Kind:       KindRegex,
			Priority:   80,
		},
		{
			Name:         PatternSSNDigits,
			Expression:   `\b\d{9}\b`,
			Kind:         KindRegex,
			Priority:     75,
			ContextWords: ssnDigitsContext,
		},
		{
			Name:         PatternDOB,
			Expression:   `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`,
			Kind:         KindRegex,
			Priority:     60,
			ContextWords: dobContext,
		},
		{
			// deliberately conservative: two capitalized tokens only, so
			// ordinary prose and ALL-CAPS acronyms stay untouched
			Name:         PatternName,
			Expression:   `\b[A-Z][a-z]+ [A-Z][a-z]+\b`,
			Kind:         KindRegex,
			Priority:     40,
			ContextWords: nameContext,
		},
	}
}

// DefaultCatalog returns a catalog populated with the built-in patterns for
// the given posture. The built-ins are known-good, so registration failures
// are programmer errors and panic, mirroring regexp.MustCompile.
func DefaultCatalog(posture Posture) *Catalog {
	c := NewCatalog()
	for _, p := range builtinPatterns(posture) {
		if err := c.AddPattern(p); err != nil {
			panic("phiguard: built-in pattern failed to register: " + err.Error())
		}
	}
	return c
}
