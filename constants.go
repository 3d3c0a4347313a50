package phiguard

// Salt constants
const (
	// SaltLength defines the required length for hash salts in bytes.
	// Salts must be exactly 32 bytes for keyed hashing.
	SaltLength = 32
)

// Environment variable names
const (
	// EnvEnabled toggles the global kill switch. Values "false", "0" and
	// "off" disable sanitization entirely.
	EnvEnabled = "PHIGUARD_ENABLED"

	// EnvRedactionMode selects the default redaction strategy.
	// One of: full, partial, hash. Default: full.
	EnvRedactionMode = "PHIGUARD_REDACTION_MODE"

	// EnvRedactionMarker overrides the redaction marker template.
	// The {LABEL} placeholder, when present, is replaced with the uppercased
	// pattern or field name. Default: [REDACTED:{LABEL}]
	EnvRedactionMarker = "PHIGUARD_REDACTION_MARKER"

	// EnvSensitiveFields is a comma-separated list of mapping keys whose
	// values are always redacted regardless of pattern matching.
	EnvSensitiveFields = "PHIGUARD_SENSITIVE_FIELDS"

	// EnvPosture selects the privacy posture: standard or strict.
	EnvPosture = "PHIGUARD_POSTURE"

	// EnvPatternsFile is the path to a YAML file of additional detection
	// patterns registered on top of the built-ins.
	EnvPatternsFile = "PHIGUARD_PATTERNS_FILE"

	// EnvSaltAlias is the service identifier used to locate the hash salt
	// in the configured secret store.
	// Example: "twin-api" or "notes-service"
	EnvSaltAlias = "PHIGUARD_SALT_ALIAS"

	// EnvMaxInputSize overrides the maximum scanned input size in bytes.
	EnvMaxInputSize = "PHIGUARD_MAX_INPUT_SIZE"
)

// Default values
const (
	// DefaultRedactionMarker is the marker template inserted in place of
	// detected PHI. Downstream compliance tooling greps logs for this exact
	// format; changing it is a breaking change for that tooling.
	DefaultRedactionMarker = "[REDACTED:{LABEL}]"

	// MarkerLabelPlaceholder is the substring of a marker template replaced
	// with the uppercased pattern label.
	MarkerLabelPlaceholder = "{LABEL}"

	// TruncationMarker is appended when an input exceeds MaxInputSize and is
	// scanned only up to the cap.
	TruncationMarker = "[Truncated]"

	// SanitizationErrorMarker replaces a value whose sanitization failed
	// internally when exceptions are not allowed to propagate. Fail-closed:
	// the original value is never returned on error unless FailOpen is set.
	SanitizationErrorMarker = "[Sanitization Error]"

	// DefaultMaxInputSize bounds the worst-case scanning cost on
	// pathological inputs.
	DefaultMaxInputSize = 64 * 1024

	// DefaultPartialLength is the number of leading and trailing characters
	// preserved by partial redaction.
	DefaultPartialLength = 2

	// DefaultContextWindow is the token window, on each side of a match,
	// searched for a pattern's context words.
	DefaultContextWindow = 6

	// DefaultMaxDepth bounds structural traversal on deeply nested or
	// self-referential inputs.
	DefaultMaxDepth = 64
)

// Storage path templates for the secret-management providers that hold the
// hash salt.
const (
	// AWSSaltPathTemplate is the path template for storing salts in AWS
	// Secrets Manager. The %s placeholder is the salt alias.
	// Example: "phiguard/twin-api/salt"
	AWSSaltPathTemplate = "phiguard/%s/salt"

	// VaultSaltPathTemplate is the path template for storing salts in
	// HashiCorp Vault KV v2. The %s placeholder is the salt alias.
	// Note: the "/data/" segment is the KV v2 API convention.
	// Example: "secret/data/phiguard/twin-api/salt"
	VaultSaltPathTemplate = "secret/data/phiguard/%s/salt"
)

// Pattern constraints
const (
	// MaxPatternNameLength is the maximum allowed length for a pattern name.
	// Names are interpolated into redaction markers, so excessively long
	// names would bloat sanitized output.
	MaxPatternNameLength = 64
)
