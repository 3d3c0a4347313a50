package phiguard

import (
	"context"
	"fmt"
	"time"

	"github.com/mindwell-health/phiguard/internal/auditstore"
)

// SQLiteSink persists audit events to a local SQLite database so findings
// survive process restarts and can feed compliance reports.
type SQLiteSink struct {
	store *auditstore.Store
}

// NewSQLiteSink opens (creating if needed) an audit database at path.
// Use ":memory:" for an ephemeral database.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	store, err := auditstore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuditStoreUnavailable, err)
	}
	return &SQLiteSink{store: store}, nil
}

// Record persists one event.
func (s *SQLiteSink) Record(event AuditEvent) error {
	return s.store.Insert(context.Background(), auditstore.Event{
		ID:          event.ID,
		Category:    event.Category,
		Location:    event.Location,
		Offset:      event.Offset,
		Line:        event.Line,
		ContextHash: event.ContextHash,
		CreatedAt:   event.Timestamp,
	})
}

// Events returns up to limit persisted events, newest first.
func (s *SQLiteSink) Events(ctx context.Context, limit int) ([]AuditEvent, error) {
	stored, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	events := make([]AuditEvent, len(stored))
	for i, e := range stored {
		events[i] = AuditEvent{
			ID:          e.ID,
			Category:    e.Category,
			Location:    e.Location,
			Offset:      e.Offset,
			Line:        e.Line,
			ContextHash: e.ContextHash,
			Timestamp:   e.CreatedAt,
		}
	}
	return events, nil
}

// CountByCategory tallies persisted events per category.
func (s *SQLiteSink) CountByCategory(ctx context.Context) (map[string]int, error) {
	return s.store.CountByCategory(ctx)
}

// Purge removes events older than the retention window and returns how many
// were deleted.
func (s *SQLiteSink) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	return s.store.PurgeOlderThan(ctx, time.Now().Add(-retention))
}

// Close releases the underlying database.
func (s *SQLiteSink) Close() error {
	return s.store.Close()
}
