package phiguard

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/hengadev/errsx"
)

// Config holds the configuration for creating a Sanitizer instance.
//
// This struct contains only data, no behavior beyond validation.
// Configuration can be loaded from any source (environment variables, files,
// code) and passed explicitly to New. It is constructed once at startup,
// validated, and shared by reference; nothing mutates it afterwards, so a
// single Config is safe for concurrent use by any number of Sanitizers.
//
// Example usage:
//
//	cfg := phiguard.DefaultConfig()
//	cfg.Mode = phiguard.ModeHash
//	cfg.SensitiveFields = []string{"ssn", "dob", "diagnosis"}
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := phiguard.New(cfg, phiguard.DefaultCatalog(phiguard.PostureStandard))
type Config struct {
	// Enabled is the global kill switch. When false, every sanitize
	// operation is the identity function.
	Enabled bool

	// Mode selects the default redaction strategy: full, partial or hash.
	Mode RedactionMode

	// Marker is the replacement template inserted in place of detected PHI.
	// A {LABEL} placeholder is substituted with the uppercased pattern name
	// or sensitive field name. Downstream compliance tooling greps for this
	// exact format.
	//
	// Optional field. Default: [REDACTED:{LABEL}]
	Marker string

	// PartialLength is the number of leading and trailing characters
	// preserved by partial redaction. Values no longer than twice this
	// length are returned unmodified rather than over-masked.
	//
	// Optional field. Default: 2
	PartialLength int

	// HashSalt keys the deterministic hash used by ModeHash. Must be
	// exactly SaltLength bytes when set. If empty, Validate generates a
	// random process-local salt; hashes then correlate within the process
	// but not across restarts. Production deployments should load a
	// persistent salt from a secret store (see providers/secrets).
	HashSalt []byte

	// SensitiveFields lists mapping keys whose values are always redacted,
	// independent of pattern matching.
	SensitiveFields []string

	// SensitiveFieldsCaseSensitive controls how mapping keys are compared
	// against SensitiveFields. Default false: "SSN", "ssn" and "Ssn" all
	// match a configured "ssn".
	SensitiveFieldsCaseSensitive bool

	// ContextualDetection gates context-worded patterns on nearby
	// corroborating tokens, trading recall for precision on low-confidence
	// patterns. High-confidence patterns are unaffected.
	ContextualDetection bool

	// ContextWindow is the token window, on each side of a match, searched
	// for context words.
	//
	// Optional field. Default: 6
	ContextWindow int

	// ScanNested controls whether nested mappings and sequences inside a
	// mapping are recursed into.
	ScanNested bool

	// MaxInputSize bounds the number of bytes scanned per string. Longer
	// inputs are truncated with a [Truncated] marker before scanning.
	//
	// Optional field. Default: 64 KiB
	MaxInputSize int

	// MaxDepth bounds structural traversal depth. Nesting beyond the bound
	// is replaced by the [Truncated] marker rather than recursed into.
	//
	// Optional field. Default: 64
	MaxDepth int

	// ExceptionsAllowed controls the failure policy of the sanitize entry
	// points. When true, internal errors propagate to the caller (useful in
	// tests and development). When false, errors are swallowed and the
	// failing value is replaced fail-closed by [Sanitization Error].
	ExceptionsAllowed bool

	// FailOpen opts into returning the original, unsanitized value when
	// sanitization fails and ExceptionsAllowed is false. Only acceptable
	// where the call site has separately guaranteed that raw PHI never
	// reaches an untrusted sink. The default is fail-closed.
	FailOpen bool

	// AuditHashContext adds a truncated SHA-256 hash of the matched text to
	// audit events, allowing correlation without revealing the value.
	AuditHashContext bool
}

// DefaultConfig returns a Config with the engine enabled, full redaction,
// contextual detection on, nested scanning on, and the documented defaults
// applied. Callers still run Validate after any adjustments.
func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		Mode:                ModeFull,
		Marker:              DefaultRedactionMarker,
		PartialLength:       DefaultPartialLength,
		ContextualDetection: true,
		ContextWindow:       DefaultContextWindow,
		ScanNested:          true,
		MaxInputSize:        DefaultMaxInputSize,
		MaxDepth:            DefaultMaxDepth,
	}
}

// Validate checks that the configuration is structurally valid and applies
// defaults to optional fields.
//
// This method:
//   - applies defaults to Marker, PartialLength, ContextWindow,
//     MaxInputSize and MaxDepth when unset
//   - lower-cases SensitiveFields unless case-sensitive matching is on
//   - rejects a HashSalt of the wrong length or an all-zero HashSalt
//   - generates a random process-local salt when ModeHash is selected and
//     no salt was provided
//
// Validation failures indicate setup-time configuration problems; they are
// never raised during per-request sanitization.
func (c *Config) Validate() error {
	var errs errsx.Map

	if c.Marker == "" {
		c.Marker = DefaultRedactionMarker
	}
	if c.PartialLength <= 0 {
		c.PartialLength = DefaultPartialLength
	}
	if c.ContextWindow <= 0 {
		c.ContextWindow = DefaultContextWindow
	}
	if c.MaxInputSize <= 0 {
		c.MaxInputSize = DefaultMaxInputSize
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	if !c.SensitiveFieldsCaseSensitive {
		lowered := make([]string, len(c.SensitiveFields))
		for i, name := range c.SensitiveFields {
			lowered[i] = strings.ToLower(name)
		}
		c.SensitiveFields = lowered
	}

	if len(c.HashSalt) > 0 {
		if len(c.HashSalt) != SaltLength {
			errs.Set("hash salt", fmt.Errorf("%w: HashSalt must be exactly %d bytes, got %d",
				ErrInvalidConfiguration, SaltLength, len(c.HashSalt)))
		} else if allZero(c.HashSalt) {
			errs.Set("hash salt", ErrUninitializedSalt)
		}
	} else if c.Mode == ModeHash {
		salt := make([]byte, SaltLength)
		if _, err := rand.Read(salt); err != nil {
			errs.Set("hash salt", fmt.Errorf("%w: failed to generate process salt: %w",
				ErrInvalidConfiguration, err))
		}
		c.HashSalt = salt
	}

	if !strings.Contains(c.Marker, MarkerLabelPlaceholder) && strings.Contains(c.Marker, "{") {
		errs.Set("marker", fmt.Errorf("%w: marker template %q contains an unrecognized placeholder",
			ErrInvalidConfiguration, c.Marker))
	}

	return errs.AsError()
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
