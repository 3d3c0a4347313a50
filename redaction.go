package phiguard

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// RedactionStrategy turns a matched (or key-forced) value into its redacted
// replacement. Implementations are stateless value types, safe for
// concurrent use. The label is the pattern name or sensitive field name
// responsible for the redaction.
type RedactionStrategy interface {
	Redact(value, label string) string
}

// NewStrategy returns the strategy selected by the config's redaction mode.
// An unrecognized mode falls back to full redaction rather than refusing to
// operate: this is a fail-safe subsystem, and full is the strictest default.
func NewStrategy(cfg Config) RedactionStrategy {
	switch cfg.Mode {
	case ModePartial:
		return PartialRedaction{Keep: cfg.PartialLength}
	case ModeHash:
		return HashRedaction{Salt: cfg.HashSalt}
	default:
		return FullRedaction{Marker: cfg.Marker}
	}
}

// FullRedaction replaces the entire value with the marker template,
// interpolating the uppercased label when the template carries a {LABEL}
// placeholder.
//
// An empty value still yields the marker: a log scraper must not be able to
// distinguish "no data" from "redacted data".
type FullRedaction struct {
	Marker string
}

func (f FullRedaction) Redact(_ string, label string) string {
	return renderMarker(f.Marker, label)
}

// PartialRedaction preserves Keep leading and trailing characters and masks
// the middle. A value no longer than twice Keep is returned unmodified:
// too short to partially redact safely, and no mangling beats
// over-aggressive masking there. Empty input passes through unchanged,
// unlike full redaction.
type PartialRedaction struct {
	Keep int
}

const partialMask = "***"

func (p PartialRedaction) Redact(value, _ string) string {
	runes := []rune(value)
	if len(runes) <= 2*p.Keep {
		return value
	}
	return string(runes[:p.Keep]) + partialMask + string(runes[len(runes)-p.Keep:])
}

// HashRedaction replaces the value with a keyed BLAKE2b-256 digest,
// hex-encoded. The same input always yields the same output within a salt's
// lifetime, so repeated identifiers correlate across records without being
// revealed. Empty input passes through unchanged.
type HashRedaction struct {
	Salt []byte
}

func (h HashRedaction) Redact(value, _ string) string {
	if value == "" {
		return value
	}
	digest, err := blake2b.New256(h.Salt)
	if err != nil {
		// only reachable with a salt longer than 64 bytes, which config
		// validation rejects; degrade to unkeyed hashing rather than leak
		digest, _ = blake2b.New256(nil)
	}
	digest.Write([]byte(value))
	return hex.EncodeToString(digest.Sum(nil))
}

// renderMarker substitutes the uppercased label into a marker template.
// Templates without a placeholder are returned as-is.
func renderMarker(marker, label string) string {
	if marker == "" {
		marker = DefaultRedactionMarker
	}
	if !strings.Contains(marker, MarkerLabelPlaceholder) {
		return marker
	}
	if label == "" {
		label = "PHI"
	}
	return strings.ReplaceAll(marker, MarkerLabelPlaceholder, strings.ToUpper(label))
}
