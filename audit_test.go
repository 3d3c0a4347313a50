package phiguard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink(t *testing.T) {
	t.Run("retains events in order", func(t *testing.T) {
		m := NewMemorySink()
		for i := 0; i < 3; i++ {
			require.NoError(t, m.Record(newAuditEvent(fmt.Sprintf("CAT%d", i), "", 0, 0, "")))
		}

		events := m.Events(0)
		require.Len(t, events, 3)
		assert.Equal(t, "CAT0", events[0].Category)
		assert.Equal(t, "CAT2", events[2].Category)
	})

	t.Run("limit returns the most recent events", func(t *testing.T) {
		m := NewMemorySink()
		for i := 0; i < 5; i++ {
			require.NoError(t, m.Record(newAuditEvent(fmt.Sprintf("CAT%d", i), "", 0, 0, "")))
		}

		events := m.Events(2)
		require.Len(t, events, 2)
		assert.Equal(t, "CAT3", events[0].Category)
		assert.Equal(t, "CAT4", events[1].Category)
	})

	t.Run("evicts oldest beyond capacity", func(t *testing.T) {
		m := NewMemorySink()
		for i := 0; i < memoryCapacity+10; i++ {
			require.NoError(t, m.Record(AuditEvent{ID: fmt.Sprint(i), Category: "SSN"}))
		}

		events := m.Events(0)
		require.Len(t, events, memoryCapacity)
		assert.Equal(t, "10", events[0].ID)
	})

	t.Run("counts by category", func(t *testing.T) {
		m := NewMemorySink()
		for i := 0; i < 3; i++ {
			require.NoError(t, m.Record(AuditEvent{Category: "SSN"}))
		}
		require.NoError(t, m.Record(AuditEvent{Category: "EMAIL"}))

		counts := m.CountByCategory()
		assert.Equal(t, 3, counts["SSN"])
		assert.Equal(t, 1, counts["EMAIL"])
	})
}

func TestNopSink(t *testing.T) {
	assert.NoError(t, NopSink{}.Record(AuditEvent{Category: "SSN"}))
}

func TestNewAuditEvent(t *testing.T) {
	e := newAuditEvent("SSN", "patient.ssn", 12, 3, "abcd1234")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "SSN", e.Category)
	assert.Equal(t, "patient.ssn", e.Location)
	assert.Equal(t, 12, e.Offset)
	assert.Equal(t, 3, e.Line)
	assert.Equal(t, "abcd1234", e.ContextHash)
	assert.False(t, e.Timestamp.IsZero())

	// IDs are unique per event
	assert.NotEqual(t, e.ID, newAuditEvent("SSN", "", 0, 0, "").ID)
}

func TestHashContext(t *testing.T) {
	a := hashContext("123-45-6789")
	b := hashContext("123-45-6789")
	c := hashContext("987-65-4321")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}
