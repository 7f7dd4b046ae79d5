package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore tracks exported posting links in a SQLite database so repeat
// scans can report only postings never surfaced before.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the seen_links table exists. Parent directories are created as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_links (
		link       TEXT PRIMARY KEY,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_links table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// HasSeen returns true if the given link has already been recorded.
func (s *SQLiteStore) HasSeen(link string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM seen_links WHERE link = ?", link).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", link, err)
	}
	return true, nil
}

// MarkSeen records a link as seen. If it already exists the call is a no-op.
func (s *SQLiteStore) MarkSeen(link string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO seen_links (link) VALUES (?)", link)
	if err != nil {
		return fmt.Errorf("marking link %s as seen: %w", link, err)
	}
	return nil
}

// Cleanup deletes seen-link entries older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM seen_links WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up seen links older than %v: %w", olderThan, err)
	}
	return nil
}

// IsEmpty returns true if the seen_links table has no entries.
func (s *SQLiteStore) IsEmpty() (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM seen_links").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking if store is empty: %w", err)
	}
	return count == 0, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
