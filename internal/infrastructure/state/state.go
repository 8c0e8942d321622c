// Package state persists per-install data in a local SQLite database.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const userIDKey = "user_id"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS read_items (
	content_id TEXT PRIMARY KEY,
	read_at    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS impressions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	content_id TEXT NOT NULL,
	dwell_ms   INTEGER NOT NULL,
	seen_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS impressions_content_id ON impressions(content_id);
`

// Store is the local state database.
type Store struct {
	db *sql.DB

	idOnce sync.Once
	id     string
	idErr  error

	newID func() string
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return new(Store{db: db, newID: uuid.NewString}), nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UserID returns the per-install user id, generating and persisting it on
// first use. The result is cached for the lifetime of the store.
func (s *Store) UserID() (string, error) {
	s.idOnce.Do(func() {
		s.id, s.idErr = s.loadOrCreateUserID()
	})
	return s.id, s.idErr
}

func (s *Store) loadOrCreateUserID() (string, error) {
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO kv (key, value) VALUES (?, ?)`,
		userIDKey, s.newID(),
	); err != nil {
		return "", fmt.Errorf("store user id: %w", err)
	}
	var id string
	if err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, userIDKey).Scan(&id); err != nil {
		return "", fmt.Errorf("load user id: %w", err)
	}
	return id, nil
}

// MarkRead records that contentID was opened in the reader.
func (s *Store) MarkRead(contentID string, at time.Time) error {
	if contentID == "" {
		return errors.New("content id is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO read_items (content_id, read_at) VALUES (?, ?)
		 ON CONFLICT(content_id) DO UPDATE SET read_at = excluded.read_at`,
		contentID, at.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// RecordImpression appends one qualifying dwell for contentID.
func (s *Store) RecordImpression(contentID string, dwell time.Duration, at time.Time) error {
	if contentID == "" {
		return errors.New("content id is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO impressions (content_id, dwell_ms, seen_at) VALUES (?, ?, ?)`,
		contentID, dwell.Milliseconds(), at.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record impression: %w", err)
	}
	return nil
}

// ReadItems returns the set of content ids opened so far.
func (s *Store) ReadItems() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT content_id FROM read_items`)
	if err != nil {
		return nil, fmt.Errorf("query read items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	read := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan read item: %w", err)
		}
		read[id] = true
	}
	return read, rows.Err()
}

// ImpressionTotal returns how many dwells and how much total dwell time were
// recorded for contentID.
func (s *Store) ImpressionTotal(contentID string) (int, time.Duration, error) {
	var count int
	var totalMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(dwell_ms), 0) FROM impressions WHERE content_id = ?`,
		contentID,
	).Scan(&count, &totalMS)
	if err != nil {
		return 0, 0, fmt.Errorf("query impressions: %w", err)
	}
	return count, time.Duration(totalMS) * time.Millisecond, nil
}
