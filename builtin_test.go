package phiguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Run("registers every built-in", func(t *testing.T) {
		c := DefaultCatalog(PostureStandard)
		for _, name := range []string{
			PatternSSN, PatternSSNDigits, PatternEmail, PatternPhone,
			PatternName, PatternDOB, PatternMRN, PatternCreditCard,
		} {
			assert.NotNil(t, c.PatternByName(name), "missing built-in %s", name)
		}
	})

	t.Run("standard posture gates low-confidence patterns on context", func(t *testing.T) {
		c := DefaultCatalog(PostureStandard)
		assert.NotEmpty(t, c.PatternByName(PatternName).ContextWords)
		assert.NotEmpty(t, c.PatternByName(PatternSSNDigits).ContextWords)
		assert.NotEmpty(t, c.PatternByName(PatternDOB).ContextWords)
	})

	t.Run("strict posture drops the context requirements", func(t *testing.T) {
		c := DefaultCatalog(PostureStrict)
		assert.Empty(t, c.PatternByName(PatternName).ContextWords)
		assert.Empty(t, c.PatternByName(PatternSSNDigits).ContextWords)
		assert.Empty(t, c.PatternByName(PatternDOB).ContextWords)
	})

	t.Run("dashed SSN outranks looser numeric patterns", func(t *testing.T) {
		c := DefaultCatalog(PostureStandard)
		ssn := c.PatternByName(PatternSSN)
		assert.Greater(t, ssn.Priority, c.PatternByName(PatternCreditCard).Priority)
		assert.Greater(t, ssn.Priority, c.PatternByName(PatternPhone).Priority)
		assert.Greater(t, ssn.Priority, c.PatternByName(PatternSSNDigits).Priority)
	})
}

func TestBuiltinExpressions(t *testing.T) {
	c := DefaultCatalog(PostureStrict) // no context gating, pure expression checks
	cfg := DefaultConfig()
	cfg.ContextualDetection = false
	d := NewDetector(cfg, c)

	cases := []struct {
		name    string
		text    string
		pattern string
	}{
		{"dashed ssn", "123-45-6789", PatternSSN},
		{"labeled ssn absorbs the label", "SSN: 123-45-6789", PatternSSN},
		{"email", "jane.doe+phi@example.org", PatternEmail},
		{"phone with area code", "(555) 123-4567", PatternPhone},
		{"phone dashed", "555-123-4567", PatternPhone},
		{"mrn", "MRN: A1B2C3D4", PatternMRN},
		{"credit card", "4111 1111 1111 1111", PatternCreditCard},
		{"dob slashes", "01/02/1990", PatternDOB},
		{"proper name", "John Smith", PatternName},
		{"bare nine digits", "123456789", PatternSSNDigits},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := d.DetectPHI(tc.text)
			require.NotEmpty(t, matches, "expected a match in %q", tc.text)
			assert.Equal(t, tc.pattern, matches[0].PatternName)
		})
	}

	t.Run("ordinary prose stays clean", func(t *testing.T) {
		clean := []string{
			"",
			"the appointment went well",
			"temperature was 98 degrees",
			"ALL CAPS HEADING",
		}
		for _, text := range clean {
			assert.Empty(t, d.DetectPHI(text), "unexpected match in %q", text)
		}
	})
}

func TestDefaultCatalogIndependentInstances(t *testing.T) {
	// each call builds fresh patterns; mutating one catalog must not leak
	a := DefaultCatalog(PostureStandard)
	b := DefaultCatalog(PostureStandard)

	require.True(t, a.RemovePattern(PatternName))
	assert.Nil(t, a.PatternByName(PatternName))
	assert.NotNil(t, b.PatternByName(PatternName))
}
