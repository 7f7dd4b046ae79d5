// Package query normalizes search input and derives the stable cache
// fingerprint for a normalized query.
package query

import (
	"strings"

	"github.com/jobscout/jobscout/internal/model"
)

// Normalize lowercases and trims every keyword, secondary keyword and
// location, then expands recognized location names into ISO country codes
// using the alias table. Expanded codes are appended after the original
// normalized locations; a code already present (as a location or as an
// earlier expansion) is not added twice. Unknown locations pass through
// unchanged and are later used as opaque substrings.
func Normalize(q model.Query, countries map[string]string) model.Query {
	out := model.Query{
		Keywords:          normalizeList(q.Keywords),
		SecondaryKeywords: normalizeList(q.SecondaryKeywords),
		Limit:             q.Limit,
	}

	locations := normalizeList(q.Locations)
	var expanded []string
	for _, loc := range locations {
		code, ok := countries[loc]
		if !ok {
			continue
		}
		if contains(locations, code) || contains(expanded, code) {
			continue
		}
		expanded = append(expanded, code)
	}
	out.Locations = append(locations, expanded...)

	return out
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
