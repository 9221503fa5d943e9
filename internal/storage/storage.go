package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/misterclayt0n/warrior/internal/models"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// StateKey is the kv row holding the serialized state.
const StateKey = "warriorProgression"

// Store keeps the state as one JSON blob in a key-value table. Remote
// databases (Turso) go through libsql; local files and :memory: go through
// the pure-Go sqlite driver.
type Store struct {
	db     *sql.DB
	driver string
}

// DriverFor picks the database/sql driver for a connection string.
func DriverFor(conn string) string {
	for _, scheme := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(conn, scheme) {
			return "libsql"
		}
	}
	return "sqlite"
}

// Open connects to the database behind conn and creates the schema.
func Open(conn string) (*Store, error) {
	if conn == "" {
		return nil, fmt.Errorf("empty database connection string")
	}
	driver := DriverFor(conn)

	if driver == "sqlite" && conn != ":memory:" && !strings.HasPrefix(conn, "file:") {
		if err := os.MkdirAll(filepath.Dir(conn), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", conn, err)
	}

	if driver == "sqlite" {
		// One connection keeps :memory: databases alive and serializes writers.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma: %w", err)
		}
	}

	if err := initializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return Open(":memory:")
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS kv (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	return err
}

func (s *Store) Driver() string { return s.driver }

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads and decodes the persisted state. found is false on a fresh
// database. A blob that fails to decode is reported, not replaced.
func (s *Store) Load(ctx context.Context) (*models.State, bool, error) {
	raw, err := s.get(ctx, StateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", StateKey, err)
	}

	st, err := Decode([]byte(raw), FormatJSON)
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

func (s *Store) Save(ctx context.Context, st *models.State) error {
	data, err := Marshal(st, FormatJSON)
	if err != nil {
		return err
	}
	return s.put(ctx, StateKey, string(data))
}

// Backup stores a snapshot of st next to the live state and returns its key.
func (s *Store) Backup(ctx context.Context, st *models.State, at time.Time) (string, error) {
	data, err := Marshal(st, FormatJSON)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("backup-%d", at.UnixMilli())
	if err := s.put(ctx, key, string(data)); err != nil {
		return "", err
	}
	return key, nil
}

// Backups lists snapshot keys, oldest first.
func (s *Store) Backups(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv WHERE key LIKE 'backup-%' ORDER BY updated_at ASC, key ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// LoadBackup decodes a snapshot previously written by Backup.
func (s *Store) LoadBackup(ctx context.Context, key string) (*models.State, error) {
	raw, err := s.get(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("backup %s not found", key)
	}
	if err != nil {
		return nil, err
	}
	return Decode([]byte(raw), FormatJSON)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
