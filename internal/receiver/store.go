package receiver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/misterclayt0n/warrior/internal/models"
	"github.com/misterclayt0n/warrior/internal/storage"
)

// EventStore keeps received events keyed by event id, so replayed batches
// are absorbed.
type EventStore struct {
	db *sql.DB
}

func OpenEventStore(conn string) (*EventStore, error) {
	driver := storage.DriverFor(conn)
	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", conn, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS received_events (
            id TEXT PRIMARY KEY,
            type TEXT NOT NULL,
            payload TEXT NOT NULL,
            queued_at TEXT NOT NULL,
            received_at TEXT NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_received_queued ON received_events(queued_at);
    `)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}
	return &EventStore{db: db}, nil
}

func (s *EventStore) Close() error {
	return s.db.Close()
}

// Append stores a batch in one transaction and returns how many events were
// new. Events already stored are ignored.
func (s *EventStore) Append(ctx context.Context, batch []models.SyncEvent, at time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accepted := 0
	for _, ev := range batch {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			return 0, fmt.Errorf("encoding payload of %s: %w", ev.ID, err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO received_events (id, type, payload, queued_at, received_at)
             VALUES (?, ?, ?, ?, ?)`,
			ev.ID, ev.Type, string(payload),
			ev.QueuedAt.UTC().Format(time.RFC3339Nano),
			at.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, fmt.Errorf("storing event %s: %w", ev.ID, err)
		}
		n, _ := res.RowsAffected()
		accepted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Committing transaction: %w", err)
	}
	return accepted, nil
}

// List returns stored events in queue order, optionally of one type.
func (s *EventStore) List(ctx context.Context, typ string) ([]models.SyncEvent, error) {
	query := `SELECT id, type, payload, queued_at FROM received_events`
	var args []any
	if typ != "" {
		query += ` WHERE type = ?`
		args = append(args, typ)
	}
	query += ` ORDER BY queued_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.SyncEvent{}
	for rows.Next() {
		var ev models.SyncEvent
		var payload, queuedAt string
		if err := rows.Scan(&ev.ID, &ev.Type, &payload, &queuedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &ev.Payload); err != nil {
			return nil, fmt.Errorf("decoding payload of %s: %w", ev.ID, err)
		}
		ev.QueuedAt, _ = time.Parse(time.RFC3339Nano, queuedAt)
		events = append(events, ev)
	}
	return events, rows.Err()
}
