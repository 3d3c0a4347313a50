package phiguard

// Option customizes a Sanitizer at construction time.
type Option func(s *Sanitizer)

// WithAuditSink routes detection events to sink. The sink receives the
// category and location of each finding, never the matched value.
func WithAuditSink(sink AuditSink) Option {
	return func(s *Sanitizer) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithStrategy overrides the redaction strategy selected by the config's
// Mode. Useful for custom marker schemes and for test doubles.
func WithStrategy(strategy RedactionStrategy) Option {
	return func(s *Sanitizer) {
		if strategy != nil {
			s.strategy = strategy
		}
	}
}

// WithScanner replaces the pattern-based detector. Test doubles implement
// Scanner to pin detection results without a catalog.
func WithScanner(scanner Scanner) Option {
	return func(s *Sanitizer) {
		if scanner != nil {
			s.scanner = scanner
		}
	}
}
