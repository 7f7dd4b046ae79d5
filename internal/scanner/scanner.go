// Package scanner orchestrates a full scan: normalize the query, check
// the cache, fan out to the sources on a miss, then filter and rank the
// merged pool.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobscout/jobscout/internal/cache"
	"github.com/jobscout/jobscout/internal/filter"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/query"
	"github.com/jobscout/jobscout/internal/rank"
	"github.com/jobscout/jobscout/internal/store"
)

// Aggregator fans a query out to the configured sources and returns the
// merged posting pool alongside per-source diagnostics.
type Aggregator interface {
	Run(ctx context.Context, q model.Query) ([]model.Posting, []error)
}

// Options tune a single scan.
type Options struct {
	SortBy  string
	NewOnly bool
}

// Result carries the ranked postings along with scan metadata.
type Result struct {
	Postings    []model.MatchedPosting
	CacheHit    bool
	Diagnostics []error
}

type Scanner struct {
	aggregator Aggregator
	cache      *cache.Cache
	countries  map[string]string
	store      model.PostingStore
	logger     *slog.Logger
}

// New creates a scanner. seen may be nil when first-seen tracking is not
// wanted; a no-op store is substituted so the pipeline never branches on it.
func New(aggregator Aggregator, c *cache.Cache, countries map[string]string, seen model.PostingStore, logger *slog.Logger) *Scanner {
	if seen == nil {
		seen = store.NewNopStore()
	}
	return &Scanner{
		aggregator: aggregator,
		cache:      c,
		countries:  countries,
		store:      seen,
		logger:     logger,
	}
}

// Scan runs the pipeline end to end. Source failures are returned as
// diagnostics rather than an error so partial result sets still reach
// the caller.
func (s *Scanner) Scan(ctx context.Context, q model.Query, opts Options) (Result, error) {
	q = query.Normalize(q, s.countries)
	key := query.Fingerprint(q)

	var result Result
	pool, hit := s.cache.Load(key)
	if hit {
		result.CacheHit = true
	} else {
		var diags []error
		pool, diags = s.aggregator.Run(ctx, q)
		result.Diagnostics = diags
		s.cache.Save(key, pool)
	}

	engine := filter.NewEngine(q.Keywords, q.SecondaryKeywords, q.Locations)
	matched := engine.Apply(pool)

	sortBy := strings.ToLower(strings.TrimSpace(opts.SortBy))
	preferences := q.Keywords
	if sortBy == "location" {
		preferences = q.Locations
	}
	matched = rank.SortByPreference(matched, sortBy, preferences)

	if opts.NewOnly {
		matched = s.onlyNew(matched)
	}

	s.logger.Info("scan complete",
		"pool", len(pool),
		"matched", len(matched),
		"cache_hit", result.CacheHit,
		"source_errors", len(result.Diagnostics))

	result.Postings = matched
	return result, nil
}

// onlyNew drops postings whose links were seen on a previous scan and
// marks the survivors as seen. Store errors are logged and the posting
// kept, so a broken store never hides results.
func (s *Scanner) onlyNew(matched []model.MatchedPosting) []model.MatchedPosting {
	kept := make([]model.MatchedPosting, 0, len(matched))
	for _, p := range matched {
		seen, err := s.store.HasSeen(p.Link)
		if err != nil {
			s.logger.Warn("seen-store lookup failed, keeping posting", "link", p.Link, "error", err)
			kept = append(kept, p)
			continue
		}
		if seen {
			continue
		}
		if err := s.store.MarkSeen(p.Link); err != nil {
			s.logger.Warn("seen-store write failed", "link", p.Link, "error", err)
		}
		kept = append(kept, p)
	}
	return kept
}

// Validate rejects queries the pipeline cannot act on.
func Validate(q model.Query) error {
	if len(q.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	if len(q.Locations) == 0 {
		return fmt.Errorf("at least one location is required")
	}
	if q.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", q.Limit)
	}
	return nil
}
