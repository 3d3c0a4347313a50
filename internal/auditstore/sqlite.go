// Package auditstore persists audit events in SQLite for compliance
// reporting and retention enforcement. Events carry the category and
// location of a finding, never the matched value.
package auditstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id           TEXT PRIMARY KEY,
	category     TEXT NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	offset       INTEGER NOT NULL DEFAULT 0,
	line         INTEGER NOT NULL DEFAULT 0,
	context_hash TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_events_created_at ON audit_events(created_at);
CREATE INDEX IF NOT EXISTS idx_audit_events_category ON audit_events(category);
`

// Event is the persisted form of a detection record.
type Event struct {
	ID          string
	Category    string
	Location    string
	Offset      int
	Line        int
	ContextHash string
	CreatedAt   time.Time
}

// Store writes audit events to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. Use ":memory:" for an
// ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database at '%s': %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert persists one event.
func (s *Store) Insert(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, category, location, offset, line, context_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Category, e.Location, e.Offset, e.Line, e.ContextHash, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert audit event '%s': %w", e.ID, err)
	}
	return nil
}

// List returns up to limit events, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, category, location, offset, line, context_hash, created_at
		FROM audit_events ORDER BY created_at DESC, id`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Category, &e.Location, &e.Offset, &e.Line, &e.ContextHash, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByCategory tallies stored events per category.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM audit_events GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan audit count: %w", err)
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// PurgeOlderThan deletes events created before cutoff and returns how many
// were removed. Retention policy enforcement runs this periodically.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM audit_events WHERE created_at < ?
	`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit events: %w", err)
	}
	return res.RowsAffected()
}
