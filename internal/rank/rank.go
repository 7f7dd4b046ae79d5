// Package rank orders filtered postings by recency or by a caller-supplied
// preference list.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

// SortBy value selecting date ordering instead of preference ordering.
const byPublishedAt = "published at"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SortByPreference returns a sorted copy of postings. With sortBy
// "published at" it orders by parsed publish date, most recent first;
// unparsable or missing dates sort last. Any other sortBy selects the field
// to rank by preference index: the position of the first preference string
// contained in the field (case-insensitive), postings matching no preference
// last. Both orders are stable.
func SortByPreference(postings []model.MatchedPosting, sortBy string, preferences []string) []model.MatchedPosting {
	if strings.ToLower(strings.TrimSpace(sortBy)) == byPublishedAt {
		return sortByDate(postings)
	}
	return sortByIndex(postings, sortBy, preferences)
}

func sortByDate(postings []model.MatchedPosting) []model.MatchedPosting {
	type dated struct {
		posting model.MatchedPosting
		at      time.Time
	}
	keyed := make([]dated, len(postings))
	for i, p := range postings {
		keyed[i] = dated{posting: p, at: parseDate(p.PublishedAt)}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[j].at.Before(keyed[i].at)
	})

	out := make([]model.MatchedPosting, len(keyed))
	for i, k := range keyed {
		out[i] = k.posting
	}
	return out
}

func sortByIndex(postings []model.MatchedPosting, sortBy string, preferences []string) []model.MatchedPosting {
	type indexed struct {
		posting model.MatchedPosting
		index   int
	}
	keyed := make([]indexed, len(postings))
	for i, p := range postings {
		keyed[i] = indexed{posting: p, index: preferenceIndex(fieldFor(p, sortBy), preferences)}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].index < keyed[j].index
	})

	out := make([]model.MatchedPosting, len(keyed))
	for i, k := range keyed {
		out[i] = k.posting
	}
	return out
}

// parseDate parses a posting date, accepting a trailing Z as the UTC offset.
// Unparsable dates yield the zero time, which sorts after every real date.
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func fieldFor(p model.MatchedPosting, sortBy string) string {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "location":
		return p.Location
	case "keyword":
		return p.Keyword
	case "secondary keyword":
		return p.SecondaryKeyword
	default:
		return ""
	}
}

func preferenceIndex(field string, preferences []string) int {
	field = strings.ToLower(field)
	for i, pref := range preferences {
		if strings.Contains(field, strings.ToLower(pref)) {
			return i
		}
	}
	return len(preferences)
}
