package phiguard

import (
	"fmt"
	"strings"

	"github.com/mindwell-health/phiguard/internal/monitoring"
	"github.com/mindwell-health/phiguard/internal/textscan"
)

// Scanner finds PHI spans in text. *Detector is the standard implementation;
// tests may substitute their own via WithScanner.
type Scanner interface {
	DetectPHI(text string) []Match
}

// Sanitizer walks arbitrary input and replaces detected PHI with redaction
// markers, preserving the input's shape: strings stay strings, mappings keep
// their key sets, sequences keep their length and order.
//
// A Sanitizer holds no per-call state and is safe for concurrent use. Build
// one at startup and share it:
//
//	catalog := phiguard.DefaultCatalog(phiguard.PostureStandard)
//	san, err := phiguard.New(phiguard.DefaultConfig(), catalog)
//	if err != nil {
//		log.Fatal(err)
//	}
//	clean := san.SanitizeText("Patient SSN: 123-45-6789")
type Sanitizer struct {
	cfg      Config
	scanner  Scanner
	strategy RedactionStrategy
	sink     AuditSink
	stats    *monitoring.ScanStats

	sensitive map[string]struct{}

	// marker shape for recognizing already-redacted values
	markerExact  string
	markerPrefix string
	markerSuffix string
}

// New builds a Sanitizer from cfg and catalog. The config is validated
// (defaults applied) before use; a nil catalog gets the standard built-ins.
func New(cfg Config, catalog *Catalog, opts ...Option) (*Sanitizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = DefaultCatalog(PostureStandard)
	}

	s := &Sanitizer{
		cfg:     cfg,
		scanner: NewDetector(cfg, catalog),
		sink:    NopSink{},
		stats:   &monitoring.ScanStats{},
	}

	s.sensitive = make(map[string]struct{}, len(cfg.SensitiveFields))
	for _, name := range cfg.SensitiveFields {
		s.sensitive[s.normalizeKey(name)] = struct{}{}
	}

	if i := strings.Index(cfg.Marker, MarkerLabelPlaceholder); i >= 0 {
		s.markerPrefix = cfg.Marker[:i]
		s.markerSuffix = cfg.Marker[i+len(MarkerLabelPlaceholder):]
	} else {
		s.markerExact = cfg.Marker
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.strategy == nil {
		s.strategy = NewStrategy(cfg)
	}
	return s, nil
}

// Config returns a copy of the validated configuration in effect.
func (s *Sanitizer) Config() Config { return s.cfg }

// Stats returns a snapshot of the sanitizer's activity counters.
func (s *Sanitizer) Stats() monitoring.Snapshot { return s.stats.Snapshot() }

// Sanitize redacts PHI from value, dispatching on its shape. Strings are
// scanned as text, map[string]any and []any/[]string recurse per element,
// and scalars pass through unchanged. Shapes outside that set (structs,
// typed maps) cannot be traversed: with ExceptionsAllowed the call panics
// with an unsupported-shape error, otherwise the value passes through.
//
// Internal failures never propagate unless ExceptionsAllowed is set: the
// call returns "[Sanitization Error]" instead (or the original value when
// FailOpen explicitly accepts that risk).
func (s *Sanitizer) Sanitize(value any) (out any) {
	if !s.cfg.Enabled {
		return value
	}
	defer func() {
		if r := recover(); r != nil {
			out = s.failed(r, value)
		}
	}()
	return s.sanitizeValue(value, "", 0)
}

// SanitizeText redacts PHI from a single string. Empty input is returned
// unchanged. Oversized input is truncated to MaxInputSize before scanning
// and the result carries a "[Truncated]" suffix.
func (s *Sanitizer) SanitizeText(text string) (out string) {
	if !s.cfg.Enabled || text == "" {
		return text
	}
	defer func() {
		if r := recover(); r != nil {
			if v, ok := s.failed(r, text).(string); ok {
				out = v
			} else {
				out = SanitizationErrorMarker
			}
		}
	}()
	s.stats.AddInput()
	return s.sanitizeText(text, "")
}

// SanitizeMap redacts PHI from a mapping, preserving its key set. Values
// under sensitive key names are redacted unconditionally. On internal
// failure the fail-closed fallback is nil (nothing leaks); FailOpen returns
// the original mapping.
func (s *Sanitizer) SanitizeMap(data map[string]any) (out map[string]any) {
	if !s.cfg.Enabled || data == nil {
		return data
	}
	defer func() {
		if r := recover(); r != nil {
			if v, ok := s.failed(r, data).(map[string]any); ok {
				out = v
			} else {
				out = nil
			}
		}
	}()
	return s.sanitizeMap(data, "", 0)
}

// SanitizeSlice redacts PHI element-wise, preserving order and length. On
// internal failure the fail-closed fallback is nil; FailOpen returns the
// original slice.
func (s *Sanitizer) SanitizeSlice(data []any) (out []any) {
	if !s.cfg.Enabled || data == nil {
		return data
	}
	defer func() {
		if r := recover(); r != nil {
			if v, ok := s.failed(r, data).([]any); ok {
				out = v
			} else {
				out = nil
			}
		}
	}()
	return s.sanitizeSlice(data, "", 0)
}

// failed implements the failure policy shared by the public entry points.
func (s *Sanitizer) failed(r any, original any) any {
	s.stats.AddFailure()
	if s.cfg.ExceptionsAllowed {
		if err, ok := r.(error); ok && IsValidationError(err) {
			panic(err)
		}
		panic(NewSanitizationFailedError("sanitize", r))
	}
	if s.cfg.FailOpen {
		return original
	}
	return SanitizationErrorMarker
}

func (s *Sanitizer) sanitizeValue(v any, location string, depth int) any {
	if depth > s.cfg.MaxDepth {
		return TruncationMarker
	}
	switch shapeOf(v) {
	case shapeText:
		s.stats.AddInput()
		return s.sanitizeText(v.(string), location)
	case shapeMapping:
		return s.sanitizeMap(v.(map[string]any), location, depth)
	case shapeSequence:
		if els, ok := v.([]string); ok {
			out := make([]string, len(els))
			for i, el := range els {
				s.stats.AddInput()
				out[i] = s.sanitizeText(el, elementPath(location, i))
			}
			return out
		}
		return s.sanitizeSlice(v.([]any), location, depth)
	case shapeScalar:
		return v
	}
	// a shape the sanitizer cannot traverse may carry PHI in fields it
	// never sees
	if s.cfg.ExceptionsAllowed {
		panic(NewUnsupportedShapeError(fmt.Sprintf("%T", v)))
	}
	return v
}

func (s *Sanitizer) sanitizeText(text, location string) string {
	if text == "" {
		return text
	}

	// input already carrying the truncation suffix was capped on a previous
	// pass; re-truncating would split the suffix and grow a second one
	truncated := false
	if s.cfg.MaxInputSize > 0 && len(text) > s.cfg.MaxInputSize &&
		!strings.HasSuffix(text, TruncationMarker) {
		text = textscan.TruncateAtRune(text, s.cfg.MaxInputSize)
		truncated = true
		s.stats.AddTruncation()
	}

	matches := s.scanner.DetectPHI(text)
	if len(matches) == 0 {
		if truncated {
			return text + TruncationMarker
		}
		return text
	}
	s.stats.AddMatches(len(matches))

	// matches are ordered and non-overlapping, so the output can be
	// reassembled in a single forward pass over the gaps
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(s.strategy.Redact(m.Text, m.PatternName))
		last = m.End
		s.audit(m.PatternName, location, m.Start, m.Line, m.Text)
	}
	b.WriteString(text[last:])
	if truncated {
		b.WriteString(TruncationMarker)
	}
	return b.String()
}

func (s *Sanitizer) sanitizeMap(data map[string]any, location string, depth int) map[string]any {
	if depth > s.cfg.MaxDepth {
		return map[string]any{}
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		path := joinPath(location, k)
		if _, forced := s.sensitive[s.normalizeKey(k)]; forced {
			out[k] = s.forceRedact(k, v, path)
			continue
		}
		switch vv := v.(type) {
		case string:
			s.stats.AddInput()
			out[k] = s.sanitizeText(vv, path)
		case map[string]any, []any, []string:
			if s.cfg.ScanNested {
				out[k] = s.sanitizeValue(vv, path, depth+1)
			} else {
				out[k] = v
			}
		default:
			out[k] = v
		}
	}
	return out
}

func (s *Sanitizer) sanitizeSlice(data []any, location string, depth int) []any {
	if depth > s.cfg.MaxDepth {
		return []any{}
	}
	out := make([]any, len(data))
	for i, v := range data {
		out[i] = s.sanitizeValue(v, elementPath(location, i), depth+1)
	}
	return out
}

// forceRedact handles a value under a sensitive key name: the strategy is
// applied directly, bypassing pattern detection. The label is the key name
// lower-cased. Values that already carry a redaction marker are left alone
// so repeated sanitization stays a no-op. Empty values are NOT exempt: under
// full redaction an empty sensitive field still renders the marker, so the
// output never reveals whether the field held data.
func (s *Sanitizer) forceRedact(key string, v any, location string) any {
	label := strings.ToLower(key)
	str, isString := v.(string)
	if !isString {
		str = fmt.Sprint(v)
	}
	if s.looksRedacted(str) {
		return v
	}
	s.stats.AddKeyForced()
	s.audit(label, location, 0, 0, str)
	return s.strategy.Redact(str, label)
}

func (s *Sanitizer) audit(category, location string, offset, line int, matched string) {
	var ctx string
	if s.cfg.AuditHashContext {
		ctx = hashContext(matched)
	}
	// sink errors carry no PHI and must not fail the caller
	_ = s.sink.Record(newAuditEvent(category, location, offset, line, ctx))
}

func (s *Sanitizer) normalizeKey(key string) string {
	if s.cfg.SensitiveFieldsCaseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// looksRedacted reports whether v is already an output of the configured
// strategy: a rendered marker, or a hash digest in hash mode.
func (s *Sanitizer) looksRedacted(v string) bool {
	if s.markerExact != "" && v == s.markerExact {
		return true
	}
	if s.markerPrefix != "" || s.markerSuffix != "" {
		if len(v) >= len(s.markerPrefix)+len(s.markerSuffix) &&
			strings.HasPrefix(v, s.markerPrefix) &&
			strings.HasSuffix(v, s.markerSuffix) {
			return true
		}
	}
	if s.cfg.Mode == ModeHash && isHexDigest(v) {
		return true
	}
	return false
}

// isHexDigest reports whether v is a 256-bit lowercase hex digest.
func isHexDigest(v string) bool {
	if len(v) != 64 {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func elementPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
