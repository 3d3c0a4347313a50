package phiguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAddPattern(t *testing.T) {
	t.Run("registers a valid pattern", func(t *testing.T) {
		c := NewCatalog()
		err := c.AddPattern(Pattern{Name: "INSURANCE_ID", Expression: `\bINS-\d{8}\b`, Priority: 70})
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
		assert.NotNil(t, c.PatternByName("INSURANCE_ID"))
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		c := NewCatalog()
		require.NoError(t, c.AddPattern(Pattern{Name: "X", Expression: `\d+`}))

		err := c.AddPattern(Pattern{Name: "X", Expression: `\w+`})
		assert.ErrorIs(t, err, ErrDuplicatePattern)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		c := NewCatalog()
		err := c.AddPattern(Pattern{Expression: `\d+`})
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("rejects an empty expression", func(t *testing.T) {
		c := NewCatalog()
		err := c.AddPattern(Pattern{Name: "EMPTY"})
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("rejects a malformed regex", func(t *testing.T) {
		c := NewCatalog()
		err := c.AddPattern(Pattern{Name: "BROKEN", Expression: `([unclosed`})
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("rejects an overlong name", func(t *testing.T) {
		c := NewCatalog()
		name := make([]byte, MaxPatternNameLength+1)
		for i := range name {
			name[i] = 'A'
		}
		err := c.AddPattern(Pattern{Name: string(name), Expression: `\d+`})
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("exact and fuzzy kinds need no regex compilation", func(t *testing.T) {
		c := NewCatalog()
		require.NoError(t, c.AddPattern(Pattern{Name: "LIT", Kind: KindExact, Expression: "(not a regex"}))
		require.NoError(t, c.AddPattern(Pattern{Name: "FUZ", Kind: KindFuzzy, Expression: "sertraline"}))
	})
}

func TestCatalogRemovePattern(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.AddPattern(Pattern{Name: "A", Expression: `\d+`}))

	assert.True(t, c.RemovePattern("A"))
	assert.Nil(t, c.PatternByName("A"))
	assert.Equal(t, 0, c.Len())

	assert.False(t, c.RemovePattern("A"))
	assert.False(t, c.RemovePattern("never-registered"))
}

func TestCatalogOrdering(t *testing.T) {
	t.Run("orders by descending priority", func(t *testing.T) {
		c := NewCatalog()
		require.NoError(t, c.AddPattern(Pattern{Name: "LOW", Expression: `a`, Priority: 10}))
		require.NoError(t, c.AddPattern(Pattern{Name: "HIGH", Expression: `b`, Priority: 90}))
		require.NoError(t, c.AddPattern(Pattern{Name: "MID", Expression: `c`, Priority: 50}))

		got := c.Patterns()
		require.Len(t, got, 3)
		assert.Equal(t, "HIGH", got[0].Name)
		assert.Equal(t, "MID", got[1].Name)
		assert.Equal(t, "LOW", got[2].Name)
	})

	t.Run("breaks priority ties by insertion order", func(t *testing.T) {
		c := NewCatalog()
		require.NoError(t, c.AddPattern(Pattern{Name: "FIRST", Expression: `a`, Priority: 50}))
		require.NoError(t, c.AddPattern(Pattern{Name: "SECOND", Expression: `b`, Priority: 50}))

		got := c.Patterns()
		require.Len(t, got, 2)
		assert.Equal(t, "FIRST", got[0].Name)
		assert.Equal(t, "SECOND", got[1].Name)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		c := NewCatalog()
		require.NoError(t, c.AddPattern(Pattern{Name: "A", Expression: `a`}))

		got := c.Patterns()
		got[0] = nil
		assert.NotNil(t, c.Patterns()[0])
	})
}

func TestPatternContextWordsLowered(t *testing.T) {
	c := NewCatalog()
	words := []string{"SSN", "Patient"}
	require.NoError(t, c.AddPattern(Pattern{
		Name:         "W",
		Expression:   `\d+`,
		ContextWords: words,
	}))

	p := c.PatternByName("W")
	assert.Equal(t, []string{"ssn", "patient"}, p.ContextWords)

	// normalization must not write through to the caller's slice
	assert.Equal(t, []string{"SSN", "Patient"}, words)
}
