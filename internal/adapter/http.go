// Package adapter contains one fetcher per external job source. Each
// adapter normalizes its source's payload into the common Posting schema
// and degrades per-record problems to skips rather than failing the source.
package adapter

import (
	"strconv"
	"time"
)

// Maximum page number requested by the paginated sources; crawling stops at
// this bound or at the first empty page, whichever comes first.
const maxPages = 9

// Fixed page size requested from paginated sources that honor one.
const pageSize = 50

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
