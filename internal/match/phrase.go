// Package match implements phrase matching against posting descriptions.
package match

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE  = regexp.MustCompile(`\s+`)
	punctuationRE = regexp.MustCompile(`[.,;:/\-]`)
)

// Phrase is a compiled search phrase. Single-word phrases (and phrases of
// three or more words) match by plain substring containment. Two-word
// phrases match the two words in order with at most one word between them,
// provided the matched span contains no punctuation, so "cloud engineer"
// matches "cloud devops engineer" but not "cloud, engineer".
type Phrase struct {
	text string
	re   *regexp.Regexp // nil for the substring fallback
}

// Compile prepares a phrase for repeated matching.
func Compile(phrase string) *Phrase {
	text := strings.ToLower(strings.TrimSpace(phrase))
	p := &Phrase{text: text}

	words := strings.Fields(text)
	if len(words) != 2 {
		return p
	}

	pattern := `\b` + regexp.QuoteMeta(words[0]) + `(?:\s+\w+)?\s+` + regexp.QuoteMeta(words[1]) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		// Phrase words that break the pattern (unusual punctuation) fall
		// back to substring containment.
		return p
	}
	p.re = re
	return p
}

// Text returns the normalized phrase text.
func (p *Phrase) Text() string {
	return p.text
}

// Match reports whether the phrase occurs in text. Text is lowercased and
// whitespace-collapsed before matching.
func (p *Phrase) Match(text string) bool {
	text = whitespaceRE.ReplaceAllString(strings.ToLower(text), " ")

	if p.re == nil {
		return strings.Contains(text, p.text)
	}

	for _, span := range p.re.FindAllString(text, -1) {
		if !punctuationRE.MatchString(span) {
			return true
		}
	}
	return false
}

// Matches is a convenience wrapper for one-off checks.
func Matches(phrase, text string) bool {
	return Compile(phrase).Match(text)
}
