// Package filter applies keyword and location predicates to the raw posting
// pool and deduplicates by link.
package filter

import (
	"strings"

	"github.com/jobscout/jobscout/internal/match"
	"github.com/jobscout/jobscout/internal/model"
)

// Sentinel secondary-keyword value meaning "reuse the primary keywords".
const noSecondary = "none"

type phraseEntry struct {
	text   string
	phrase *match.Phrase
}

// Engine filters postings against primary keywords, secondary keywords and
// locations. A posting passes only when at least one of each matches: a
// primary keyword and a secondary keyword against the description (phrase
// matching), and a location as a substring of the location field.
type Engine struct {
	keywords  []phraseEntry
	secondary []phraseEntry
	locations []string
}

// NewEngine compiles the query's keywords into reusable phrases. When no
// secondary keywords are supplied (or only the sentinel "none"), the primary
// keywords stand in for them.
func NewEngine(keywords, secondaryKeywords, locations []string) *Engine {
	if len(secondaryKeywords) == 0 || (len(secondaryKeywords) == 1 && secondaryKeywords[0] == noSecondary) {
		secondaryKeywords = keywords
	}
	return &Engine{
		keywords:  compileAll(keywords),
		secondary: compileAll(secondaryKeywords),
		locations: locations,
	}
}

func compileAll(phrases []string) []phraseEntry {
	out := make([]phraseEntry, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, phraseEntry{text: p, phrase: match.Compile(p)})
	}
	return out
}

// Apply filters and deduplicates the raw pool. The first posting with a
// given non-empty link wins; linkless postings are dropped. Output order
// follows input order.
func (e *Engine) Apply(raw []model.Posting) []model.MatchedPosting {
	seen := make(map[string]struct{})
	var out []model.MatchedPosting

	for _, p := range raw {
		location := strings.ToLower(p.Location)

		matchedKeywords := matching(e.keywords, p.Description)
		if len(matchedKeywords) == 0 {
			continue
		}
		matchedSecondary := matching(e.secondary, p.Description)
		if len(matchedSecondary) == 0 {
			continue
		}
		if !e.matchesLocation(location) {
			continue
		}

		if p.Link == "" {
			continue
		}
		if _, dup := seen[p.Link]; dup {
			continue
		}
		seen[p.Link] = struct{}{}

		out = append(out, model.MatchedPosting{
			Posting:          p,
			Keyword:          strings.Join(matchedKeywords, ", "),
			SecondaryKeyword: strings.Join(matchedSecondary, ", "),
		})
	}

	return out
}

func matching(entries []phraseEntry, description string) []string {
	var out []string
	for _, e := range entries {
		if e.phrase.Match(description) {
			out = append(out, e.text)
		}
	}
	return out
}

func (e *Engine) matchesLocation(location string) bool {
	for _, loc := range e.locations {
		if strings.Contains(location, loc) {
			return true
		}
	}
	return false
}
