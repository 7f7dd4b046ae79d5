// Package cache persists aggregated posting pools keyed by query
// fingerprint, with a short TTL to avoid redundant fetching.
package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

// Timestamps are written as UTC ISO-8601 without an offset marker.
const timestampLayout = "2006-01-02T15:04:05.999999"

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// entry is the on-disk cache file format.
type entry struct {
	Timestamp string          `json:"timestamp"`
	Data      []model.Posting `json:"data"`
}

// Cache is a content-addressed TTL cache: one JSON file per query
// fingerprint. Missing, stale or corrupt entries all read as absent; write
// failures are logged and swallowed. Nothing here is ever a caller error.
type Cache struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New creates a cache rooted at dir with the given TTL.
func New(dir string, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		dir:    dir,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns the cached pool for key if a fresh entry exists.
func (c *Cache) Load(key string) ([]model.Posting, bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Debug("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}

	ts, err := parseTimestamp(e.Timestamp)
	if err != nil {
		c.logger.Debug("discarding cache entry with bad timestamp", "key", key, "timestamp", e.Timestamp)
		return nil, false
	}
	if c.now().UTC().Sub(ts) > c.ttl {
		return nil, false
	}
	// An empty pool is not worth serving for the whole TTL window; treat
	// it as a miss so the next scan asks the sources again.
	if len(e.Data) == 0 {
		c.logger.Debug("ignoring empty cache entry", "key", key)
		return nil, false
	}

	return e.Data, true
}

// Save writes the pool under key. Failures are best-effort: the computed
// results still go back to the caller even when persisting them fails.
func (c *Cache) Save(key string, postings []model.Posting) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		c.logger.Warn("failed to create cache dir", "dir", c.dir, "error", err)
		return
	}

	raw, err := json.Marshal(entry{
		Timestamp: c.now().UTC().Format(timestampLayout),
		Data:      postings,
	})
	if err != nil {
		c.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}

	// Write through a temp file so an overlapping reader never observes a
	// half-written entry.
	tmp, err := os.CreateTemp(c.dir, key+".tmp*")
	if err != nil {
		c.logger.Warn("failed to write cache entry", "key", key, "error", err)
		return
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		c.logger.Warn("failed to write cache entry", "key", key, "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		c.logger.Warn("failed to write cache entry", "key", key, "error", err)
		return
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())
		c.logger.Warn("failed to write cache entry", "key", key, "error", err)
	}
}

// Clear removes every cache entry.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports the number of entries and their total size in bytes.
func (c *Cache) Stats() (count int, size int64, err error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		size += info.Size()
	}
	return count, size, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
