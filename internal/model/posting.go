package model

import (
	"context"
	"time"
)

// Posting is the unified representation of a job listing from any source.
// The JSON field names double as the cache file format and the CSV header
// set, so they stay in display form.
type Posting struct {
	Description     string `json:"Description"`
	Link            string `json:"Link"` // uniqueness key; postings without one are dropped at filter time
	Location        string `json:"Location"`
	PublishedAt     string `json:"Published At"` // source-native date string, may be empty
	FullDescription string `json:"Full Description,omitempty"`
}

// MatchedPosting is a Posting that passed filtering, annotated with the
// keywords that matched its description (joined for display).
type MatchedPosting struct {
	Posting
	Keyword          string
	SecondaryKeyword string
}

// Query describes one search: what to look for and where.
// It is immutable after normalization.
type Query struct {
	Keywords          []string
	SecondaryKeywords []string
	Locations         []string
	Limit             int
}

// SourceFetcher fetches postings from a single external source.
// Implementations return whatever they collected before a failure alongside
// the error, so partial results survive a mid-run fault.
type SourceFetcher interface {
	Fetch(ctx context.Context, q Query) ([]Posting, error)
}

// PostingStore tracks which posting links have been seen across runs.
type PostingStore interface {
	HasSeen(link string) (bool, error)
	MarkSeen(link string) error
	Cleanup(olderThan time.Duration) error
	IsEmpty() (bool, error)
}
