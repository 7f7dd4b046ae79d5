package query

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/jobscout/jobscout/internal/model"
)

// Fingerprint derives the stable cache key for a normalized query: a
// canonical JSON serialization of [keywords, secondaryKeywords, locations,
// limit] hashed to an md5 hex digest. Each list is sorted before
// serialization so queries that differ only in element order hash
// identically.
func Fingerprint(q model.Query) string {
	canonical := []any{
		sortedCopy(q.Keywords),
		sortedCopy(q.SecondaryKeywords),
		sortedCopy(q.Locations),
		q.Limit,
	}

	// Marshaling a slice of strings and an int cannot fail.
	raw, _ := json.Marshal(canonical)
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
