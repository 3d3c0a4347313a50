package phiguard

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// SanitizingHandler is a slog.Handler that redacts PHI from every record
// before delegating to an inner handler. The message, all string attribute
// values, and attributes whose keys match the configured sensitive field
// names are sanitized; group attributes are walked recursively. The incoming
// record is never mutated.
type SanitizingHandler struct {
	inner slog.Handler
	san   *Sanitizer
}

// NewSanitizingHandler wraps inner so that everything it receives has
// already passed through san.
func NewSanitizingHandler(inner slog.Handler, san *Sanitizer) *SanitizingHandler {
	return &SanitizingHandler{inner: inner, san: san}
}

// NewLogger returns a JSON slog.Logger writing to w (os.Stderr when nil)
// with PHI sanitization applied to every record.
func NewLogger(w io.Writer, san *Sanitizer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(NewSanitizingHandler(slog.NewJSONHandler(w, nil), san))
}

func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *SanitizingHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, h.san.SanitizeText(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = h.sanitizeAttr(a)
	}
	return &SanitizingHandler{inner: h.inner.WithAttrs(cleaned), san: h.san}
}

func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{inner: h.inner.WithGroup(name), san: h.san}
}

func (h *SanitizingHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	val := a.Value.Resolve()

	if _, forced := h.san.sensitive[h.san.normalizeKey(a.Key)]; forced {
		return slog.Attr{Key: a.Key, Value: slog.AnyValue(h.san.forceRedact(a.Key, val.Any(), a.Key))}
	}

	switch val.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.san.SanitizeText(val.String()))
	case slog.KindGroup:
		members := val.Group()
		cleaned := make([]slog.Attr, len(members))
		for i, m := range members {
			cleaned[i] = h.sanitizeAttr(m)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleaned...)}
	default:
		return slog.Attr{Key: a.Key, Value: val}
	}
}
