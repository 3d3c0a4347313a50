// Package phiguard detects and redacts Protected Health Information (PHI)
// in text, structured data and log records before it is persisted,
// transmitted or displayed.
//
// The engine combines a prioritized pattern catalog, context-sensitive
// disambiguation, interchangeable redaction strategies and recursive
// structural traversal under one hard requirement: a missed identifier is a
// compliance violation, so every uncertain decision falls toward redacting.
//
// # Key Features
//
//   - Built-in patterns for SSNs, MRNs, emails, phone numbers, credit
//     cards, dates of birth and person names
//   - Regex, exact-string and fuzzy (edit-distance) pattern kinds, plus
//     YAML pattern files for site-specific rules
//   - Contextual gating: low-confidence patterns only fire near
//     corroborating tokens ("ssn", "patient", "dob"), keeping precision
//     high in the standard posture
//   - Full, partial and keyed-hash redaction strategies
//   - Shape-preserving traversal of strings, maps and slices, with
//     unconditional redaction of configured sensitive key names
//   - slog integration that sanitizes every record transparently
//   - Audit sinks that record what category was found and where, never the
//     value itself
//
// # Quick Start
//
//	catalog := phiguard.DefaultCatalog(phiguard.PostureStandard)
//	san, err := phiguard.New(phiguard.DefaultConfig(), catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	san.SanitizeText("Patient SSN: 123-45-6789")
//	// "Patient [REDACTED:SSN]"
//
//	san.SanitizeMap(map[string]any{
//	    "name": "John Smith",
//	    "note": "stable mood",
//	})
//	// map[name:[REDACTED:NAME] note:stable mood]  (with "name" configured sensitive)
//
// # Configuration
//
// Config is plain data, constructed once at startup and shared. Load it
// from the environment for 12-factor deployments:
//
//	cfg, err := phiguard.LoadConfigFromEnvironment()
//
// or build it in code and adjust:
//
//	cfg := phiguard.DefaultConfig()
//	cfg.Mode = phiguard.ModeHash
//	cfg.SensitiveFields = []string{"ssn", "dob", "mrn"}
//
// Hash mode needs a salt shared across instances for stable pseudonyms; see
// providers/secrets for Vault and AWS Secrets Manager storage.
//
// # Logging
//
// Wrap any slog handler so nothing unsanitized reaches the log stream:
//
//	logger := phiguard.NewLogger(os.Stderr, san)
//	logger.Info("admitting patient", "contact", "jane@example.org")
//	// contact is logged as [REDACTED:EMAIL]
//
// # Concurrency
//
// Catalogs and configs are read-only after construction. Sanitizers and
// Detectors hold no per-call state. Everything here is safe for concurrent
// use without locking, and no operation performs I/O on the hot path.
package phiguard
