// file: internal/metasearch/score.go
// version: 1.1.0
// guid: 8c3f6a1d-2e84-4b97-a5d0-7f2c9e4b8d61

package metasearch

import (
	"strings"

	"github.com/lmorel/bibsearch/internal/isbn"
	"github.com/lmorel/bibsearch/internal/sources"
)

// ScoreWeights is the completeness weight table. Each present non-empty
// field contributes exactly its weight; fields are binary, there is no
// partial credit. The zero value scores everything at zero, callers
// normally start from DefaultWeights.
type ScoreWeights struct {
	Title       float64
	Authors     float64
	ISBN        float64 // counted only when the ISBN is checksum-valid
	Year        float64
	Publisher   float64
	Description float64
	Cover       float64
}

// DefaultWeights is the table used unless configuration overrides it.
var DefaultWeights = ScoreWeights{
	Title:       10,
	Authors:     8,
	ISBN:        8,
	Year:        5,
	Publisher:   4,
	Description: 6,
	Cover:       3,
}

// Max returns the highest score the table can produce.
func (w ScoreWeights) Max() float64 {
	return w.Title + w.Authors + w.ISBN + w.Year + w.Publisher + w.Description + w.Cover
}

// Score computes the completeness score of r. Identical field content
// always yields an identical score, so ties between sources are
// expected; ranking breaks them by source priority, never here.
func (w ScoreWeights) Score(r UnifiedResult) float64 {
	var s float64
	if strings.TrimSpace(r.Title) != "" {
		s += w.Title
	}
	if len(r.Authors) > 0 {
		s += w.Authors
	}
	if isbn.Valid(r.ISBN) {
		s += w.ISBN
	}
	if r.Year != "" {
		s += w.Year
	}
	if r.Publisher != "" {
		s += w.Publisher
	}
	if r.Description != "" {
		s += w.Description
	}
	if r.CoverURL != "" {
		s += w.Cover
	}
	return s
}

// Normalizer maps per-source records into the unified shape and scores
// them. Pure: the same record and origin always produce the same result.
type Normalizer struct {
	Weights ScoreWeights
}

// NewNormalizer returns a Normalizer carrying the default weight table.
func NewNormalizer() Normalizer {
	return Normalizer{Weights: DefaultWeights}
}

// Normalize builds the UnifiedResult for one source record.
func (n Normalizer) Normalize(rec sources.Record, origin SourceInfo) UnifiedResult {
	r := UnifiedResult{
		Title:       strings.TrimSpace(rec.Title),
		Subtitle:    strings.TrimSpace(rec.Subtitle),
		ISBN:        isbn.Normalize(rec.ISBN),
		Publisher:   strings.TrimSpace(rec.Publisher),
		Year:        strings.TrimSpace(rec.Year),
		Description: strings.TrimSpace(rec.Description),
		CoverURL:    strings.TrimSpace(rec.CoverURL),
		Language:    strings.TrimSpace(rec.Language),
		Sources:     []string{rec.Source},
		Origin:      origin,
	}
	for _, a := range rec.Authors {
		if a = strings.TrimSpace(a); a != "" {
			r.Authors = append(r.Authors, a)
		}
	}
	if len(r.Authors) > 0 {
		r.MainAuthor = r.Authors[0]
	}
	r.Score = n.Weights.Score(r)
	return r
}
