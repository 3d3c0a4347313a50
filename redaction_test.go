package phiguard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullRedaction(t *testing.T) {
	strategy := FullRedaction{Marker: DefaultRedactionMarker}

	t.Run("replaces the value with a labeled marker", func(t *testing.T) {
		assert.Equal(t, "[REDACTED:SSN]", strategy.Redact("123-45-6789", "SSN"))
	})

	t.Run("uppercases the label", func(t *testing.T) {
		assert.Equal(t, "[REDACTED:SSN]", strategy.Redact("x", "ssn"))
	})

	t.Run("empty value still yields the marker", func(t *testing.T) {
		// a scraper must not distinguish "no data" from "redacted data"
		assert.Equal(t, "[REDACTED:SSN]", strategy.Redact("", "SSN"))
	})

	t.Run("empty label falls back to PHI", func(t *testing.T) {
		assert.Equal(t, "[REDACTED:PHI]", strategy.Redact("x", ""))
	})

	t.Run("template without placeholder is used verbatim", func(t *testing.T) {
		s := FullRedaction{Marker: "[REDACTED]"}
		assert.Equal(t, "[REDACTED]", s.Redact("x", "SSN"))
	})
}

func TestPartialRedaction(t *testing.T) {
	strategy := PartialRedaction{Keep: 2}

	t.Run("preserves edges and masks the middle", func(t *testing.T) {
		got := strategy.Redact("123-45-6789", "SSN")
		assert.Equal(t, "12***89", got)
		assert.True(t, strings.HasPrefix(got, "12"))
		assert.True(t, strings.HasSuffix(got, "89"))
		assert.NotContains(t, got, "3-45-67")
	})

	t.Run("short values pass through unmodified", func(t *testing.T) {
		for _, v := range []string{"", "a", "ab", "abc", "abcd"} {
			assert.Equal(t, v, strategy.Redact(v, "X"), "value %q", v)
		}
	})

	t.Run("boundary length is exclusive", func(t *testing.T) {
		// 2*Keep characters pass through; one more gets masked
		assert.Equal(t, "abcd", strategy.Redact("abcd", "X"))
		assert.Equal(t, "ab***de", strategy.Redact("abcde", "X"))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		got := strategy.Redact("åéîøü-value", "X")
		assert.True(t, strings.HasPrefix(got, "åé"))
		assert.True(t, strings.HasSuffix(got, "ue"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := strategy.Redact("123-45-6789", "SSN")
		assert.Equal(t, once, strategy.Redact(once, "SSN"))
	})
}

func TestHashRedaction(t *testing.T) {
	salt := make([]byte, SaltLength)
	copy(salt, "0123456789abcdef0123456789abcdef")
	strategy := HashRedaction{Salt: salt}

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, strategy.Redact("123-45-6789", "SSN"), strategy.Redact("123-45-6789", "SSN"))
	})

	t.Run("distinct inputs yield distinct outputs", func(t *testing.T) {
		assert.NotEqual(t, strategy.Redact("123-45-6789", "SSN"), strategy.Redact("987-65-4321", "SSN"))
	})

	t.Run("output is a 64-char hex digest without the input", func(t *testing.T) {
		got := strategy.Redact("123-45-6789", "SSN")
		require.Len(t, got, 64)
		assert.NotContains(t, got, "123-45-6789")
		assert.True(t, isHexDigest(got))
	})

	t.Run("different salts decorrelate", func(t *testing.T) {
		other := make([]byte, SaltLength)
		copy(other, "ffffffffffffffffffffffffffffffff")
		assert.NotEqual(t,
			strategy.Redact("123-45-6789", "SSN"),
			HashRedaction{Salt: other}.Redact("123-45-6789", "SSN"))
	})

	t.Run("empty value passes through", func(t *testing.T) {
		assert.Equal(t, "", strategy.Redact("", "SSN"))
	})
}

func TestNewStrategy(t *testing.T) {
	t.Run("selects by mode", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		assert.IsType(t, FullRedaction{}, NewStrategy(cfg))

		cfg.Mode = ModePartial
		assert.IsType(t, PartialRedaction{}, NewStrategy(cfg))

		cfg.Mode = ModeHash
		require.NoError(t, cfg.Validate())
		assert.IsType(t, HashRedaction{}, NewStrategy(cfg))
	})

	t.Run("unknown mode falls back to full", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Mode = RedactionMode(99)
		assert.IsType(t, FullRedaction{}, NewStrategy(cfg))
	})
}
