package phiguard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePatternsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPatternsFile(t *testing.T) {
	t.Run("registers every entry", func(t *testing.T) {
		path := writePatternsFile(t, `
version: "1"
patterns:
  - name: INSURANCE_ID
    kind: regex
    expression: '\bINS-\d{8}\b'
    priority: 70
    high_confidence: true
  - name: FACILITY
    kind: exact
    expression: "Lakeside Clinic"
    priority: 50
  - name: DRUG
    kind: fuzzy
    expression: sertraline
    priority: 45
    context_words: [prescribed, dose]
`)
		c := NewCatalog()
		require.NoError(t, LoadPatternsFile(c, path))
		assert.Equal(t, 3, c.Len())

		ins := c.PatternByName("INSURANCE_ID")
		require.NotNil(t, ins)
		assert.Equal(t, KindRegex, ins.Kind)
		assert.True(t, ins.HighConfidence)

		drug := c.PatternByName("DRUG")
		require.NotNil(t, drug)
		assert.Equal(t, KindFuzzy, drug.Kind)
		assert.Equal(t, []string{"prescribed", "dose"}, drug.ContextWords)
	})

	t.Run("loaded patterns are detectable", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - name: INSURANCE_ID
    kind: regex
    expression: '\bINS-\d{8}\b'
    priority: 70
    high_confidence: true
`)
		c := DefaultCatalog(PostureStandard)
		require.NoError(t, LoadPatternsFile(c, path))

		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		matches := NewDetector(cfg, c).DetectPHI("claim INS-12345678 approved")
		require.Len(t, matches, 1)
		assert.Equal(t, "INSURANCE_ID", matches[0].PatternName)
	})

	t.Run("missing file errors", func(t *testing.T) {
		err := LoadPatternsFile(NewCatalog(), "/nonexistent/patterns.yaml")
		assert.ErrorIs(t, err, ErrPatternsFileInvalid)
	})

	t.Run("unparsable yaml errors", func(t *testing.T) {
		path := writePatternsFile(t, "patterns: [unclosed")
		err := LoadPatternsFile(NewCatalog(), path)
		assert.ErrorIs(t, err, ErrPatternsFileInvalid)
	})

	t.Run("unknown kind errors", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - name: BAD
    kind: phonetic
    expression: whatever
`)
		err := LoadPatternsFile(NewCatalog(), path)
		require.ErrorIs(t, err, ErrPatternsFileInvalid)
		assert.Contains(t, err.Error(), "phonetic")
	})

	t.Run("a bad entry leaves the catalog untouched", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - name: GOOD
    kind: regex
    expression: '\d+'
  - name: BROKEN
    kind: regex
    expression: '([unclosed'
`)
		c := NewCatalog()
		err := LoadPatternsFile(c, path)
		require.ErrorIs(t, err, ErrPatternsFileInvalid)
		// whole-file validation: not even the good entry lands
		assert.Equal(t, 0, c.Len())
	})

	t.Run("reports every broken entry at once", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - name: BROKEN_ONE
    kind: regex
    expression: '([a'
  - name: BROKEN_TWO
    kind: phonetic
    expression: x
`)
		err := LoadPatternsFile(NewCatalog(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BROKEN_ONE")
		assert.Contains(t, err.Error(), "BROKEN_TWO")
	})

	t.Run("rejects duplicates within the file", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - name: DUP
    kind: regex
    expression: '\d+'
  - name: DUP
    kind: regex
    expression: '\w+'
`)
		err := LoadPatternsFile(NewCatalog(), path)
		assert.ErrorIs(t, err, ErrPatternsFileInvalid)
	})

	t.Run("rejects collisions with already-registered patterns", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - name: SSN
    kind: regex
    expression: '\d+'
`)
		err := LoadPatternsFile(DefaultCatalog(PostureStandard), path)
		assert.ErrorIs(t, err, ErrPatternsFileInvalid)
	})

	t.Run("nameless entries error", func(t *testing.T) {
		path := writePatternsFile(t, `
patterns:
  - kind: regex
    expression: '\d+'
`)
		err := LoadPatternsFile(NewCatalog(), path)
		assert.ErrorIs(t, err, ErrPatternsFileInvalid)
	})
}
