package phiguard

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditEvent records that PHI was found: the category and where, never the
// value itself. Compliance reporting reviews these events as a second line
// of defense behind the redaction itself.
type AuditEvent struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// Category is the pattern name or sensitive field name that fired.
	Category string `json:"category"`

	// Location is the structural path of the redacted value, e.g.
	// "patient.contact.email" for mappings, or empty for bare text.
	Location string `json:"location,omitempty"`

	// Offset and Line position the match within the scanned string.
	Offset int `json:"offset"`
	Line   int `json:"line,omitempty"`

	// ContextHash is an optional truncated SHA-256 of the matched text,
	// letting repeated identifiers correlate without being revealed.
	ContextHash string `json:"context_hash,omitempty"`

	// Timestamp is when the detection occurred.
	Timestamp time.Time `json:"timestamp"`
}

// AuditSink receives audit events from a Sanitizer. Implementations must
// tolerate concurrent calls. Sink errors are deliberately ignored by the
// sanitizer: auditing must never fail a request, and the event carries no
// PHI to lose.
type AuditSink interface {
	Record(event AuditEvent) error
}

// NopSink discards every event. The default when no sink is configured.
type NopSink struct{}

func (NopSink) Record(AuditEvent) error { return nil }

// memoryCapacity bounds the in-memory audit ring.
const memoryCapacity = 10000

// MemorySink retains the most recent events in memory. Useful for tests,
// the CLI's summary report, and as a staging buffer before export.
type MemorySink struct {
	mu     sync.Mutex
	events []AuditEvent
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record appends an event, evicting the oldest once the ring is full.
func (m *MemorySink) Record(event AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) >= memoryCapacity {
		m.events = m.events[1:]
	}
	m.events = append(m.events, event)
	return nil
}

// Events returns up to limit of the most recent events, oldest first.
// A non-positive limit returns everything retained.
func (m *MemorySink) Events(limit int) []AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.events) {
		limit = len(m.events)
	}
	out := make([]AuditEvent, limit)
	copy(out, m.events[len(m.events)-limit:])
	return out
}

// CountByCategory tallies retained events per category.
func (m *MemorySink) CountByCategory() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range m.events {
		counts[e.Category]++
	}
	return counts
}

// newAuditEvent assembles an event for a detection. hashContext is empty
// unless the config opted into context hashing.
func newAuditEvent(category, location string, offset, line int, contextHash string) AuditEvent {
	return AuditEvent{
		ID:          uuid.New().String(),
		Category:    category,
		Location:    location,
		Offset:      offset,
		Line:        line,
		ContextHash: contextHash,
		Timestamp:   time.Now().UTC(),
	}
}

// hashContext returns a short non-reversible fingerprint of matched text.
// Only the first 8 bytes of the digest are kept; enough to correlate,
// useless to reconstruct.
func hashContext(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}
