// file: internal/matcher/matcher.go
// version: 1.2.0
// guid: 1f2a3b4c-5d6e-7f8a-9b0c-1d2e3f4a5b6c

// Package matcher ranks catalog answers against the query a user
// actually typed. The sources are forgiving about spelling, so a title
// search often comes back with near-misses; this package picks out the
// entry the user most likely meant.
package matcher

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/lmorel/bibsearch/internal/metasearch"
)

// Candidate pairs a search result with its similarity to the query.
type Candidate struct {
	Result metasearch.UnifiedResult
	Score  int // 0-100, higher is closer
}

// Relative weight of the title score against the author score when the
// query carries both.
const (
	titleWeight  = 7
	authorWeight = 3
)

// ScoreQuery scores one result against a title/author query.
// Returns 0-100. The author part only counts when both the query and
// the result name an author.
func ScoreQuery(title, author string, r metasearch.UnifiedResult) int {
	ts := ScoreMatch(title, r.Title)
	if ts < 40 && fuzzy.MatchNormalizedFold(title, r.Title) {
		// A subsequence hit ("ptit prince" in "Le petit prince")
		// deserves more than its raw edit distance suggests.
		ts = 40
	}

	if author == "" || len(r.Authors) == 0 {
		return ts
	}

	as := 0
	for _, a := range r.Authors {
		as = max(as, ScoreMatch(author, a))
	}
	return (ts*titleWeight + as*authorWeight) / (titleWeight + authorWeight)
}

// Rank scores every result against the query and returns candidates
// sorted by score descending. Results under minScore are dropped; equal
// scores keep the incoming order.
func Rank(title, author string, results []metasearch.UnifiedResult, minScore int) []Candidate {
	var out []Candidate
	for _, r := range results {
		s := ScoreQuery(title, author, r)
		if s >= minScore {
			out = append(out, Candidate{Result: r, Score: s})
		}
	}
	// Sort descending by score
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Best returns the closest candidate, or ok=false when there is
// nothing to choose from.
func Best(title, author string, results []metasearch.UnifiedResult) (Candidate, bool) {
	ranked := Rank(title, author, results, 0)
	if len(ranked) == 0 {
		return Candidate{}, false
	}
	return ranked[0], true
}
