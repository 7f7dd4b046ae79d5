package cache

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

func testCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	return New(t.TempDir(), ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := testCache(t, 15*time.Minute)
	postings := []model.Posting{
		{Description: "Go Developer", Link: "https://x/1", Location: "Berlin", PublishedAt: "2024-01-01T00:00:00Z"},
		{Description: "SRE", Link: "https://x/2", FullDescription: "long text"},
	}

	c.Save("abc123", postings)

	got, ok := c.Load("abc123")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("got %d postings, want 2", len(got))
	}
	if got[0] != postings[0] || got[1] != postings[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoad_EmptyEntryIsAbsent(t *testing.T) {
	c := testCache(t, 15*time.Minute)
	c.Save("empty", nil)

	if _, ok := c.Load("empty"); ok {
		t.Error("expected a miss for a cached empty pool")
	}
}

func TestLoad_TTLBoundary(t *testing.T) {
	c := testCache(t, 15*time.Minute)
	c.Save("key", []model.Posting{{Description: "x", Link: "https://x/1"}})

	writtenAt := time.Now().UTC()

	// 14 minutes after the write: still fresh.
	c.now = func() time.Time { return writtenAt.Add(14 * time.Minute) }
	if _, ok := c.Load("key"); !ok {
		t.Error("expected a hit 14 minutes after write")
	}

	// 16 minutes after the write: expired, treated as absent.
	c.now = func() time.Time { return writtenAt.Add(16 * time.Minute) }
	if _, ok := c.Load("key"); ok {
		t.Error("expected a miss 16 minutes after write")
	}
}

func TestLoad_MissingAndCorruptEntriesAreAbsent(t *testing.T) {
	c := testCache(t, 15*time.Minute)

	if _, ok := c.Load("never-written"); ok {
		t.Error("expected miss for a missing entry")
	}

	if err := os.WriteFile(filepath.Join(c.dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Load("bad"); ok {
		t.Error("expected miss for a corrupt entry")
	}

	if err := os.WriteFile(filepath.Join(c.dir, "badts.json"), []byte(`{"timestamp": "whenever", "data": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Load("badts"); ok {
		t.Error("expected miss for an unparsable timestamp")
	}
}

func TestSave_WriteFailureIsSwallowed(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "file-not-dir"), 15*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	// Make the configured dir path unusable by creating a file there.
	if err := os.WriteFile(c.dir, []byte("occupied"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Must not panic or return an error surface; Save is best-effort.
	c.Save("key", []model.Posting{{Link: "https://x/1"}})

	if _, ok := c.Load("key"); ok {
		t.Error("expected miss after failed save")
	}
}

func TestClearAndStats(t *testing.T) {
	c := testCache(t, 15*time.Minute)
	c.Save("one", []model.Posting{{Link: "https://x/1"}})
	c.Save("two", []model.Posting{{Link: "https://x/2"}})

	count, size, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 2 || size == 0 {
		t.Errorf("Stats = (%d, %d), want 2 entries with nonzero size", count, size)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, _, err = c.Stats()
	if err != nil {
		t.Fatalf("Stats after Clear: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 entries after Clear, got %d", count)
	}
}
