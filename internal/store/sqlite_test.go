package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "seen.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkSeenAndHasSeen(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.HasSeen("https://x/1")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if seen {
		t.Error("expected link to be unseen initially")
	}

	if err := s.MarkSeen("https://x/1"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	// Marking twice is a no-op.
	if err := s.MarkSeen("https://x/1"); err != nil {
		t.Fatalf("MarkSeen again: %v", err)
	}

	seen, err = s.HasSeen("https://x/1")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if !seen {
		t.Error("expected link to be seen after MarkSeen")
	}
}

func TestIsEmptyAndCleanup(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if !empty {
		t.Error("expected a fresh store to be empty")
	}

	if err := s.MarkSeen("https://x/1"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	empty, err = s.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if empty {
		t.Error("expected store to be non-empty")
	}

	// A negative cutoff places the threshold in the future, removing
	// everything regardless of clock zone differences with the database.
	if err := s.Cleanup(-48 * time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	empty, err = s.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty after Cleanup: %v", err)
	}
	if !empty {
		t.Error("expected store to be empty after cleanup")
	}
}
