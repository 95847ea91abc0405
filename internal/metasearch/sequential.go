// file: internal/metasearch/sequential.go
// version: 1.0.0
// guid: 6c2f8b4e-1d97-4a35-b8e0-3f7a9c5d2b84

package metasearch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lmorel/bibsearch/internal/sources"
)

// SequentialStrategy queries sources one at a time in priority order
// and stops at the first source that returns anything. Failures are
// recorded and the next source is tried; sources after the winner are
// never contacted.
type SequentialStrategy struct {
	sources []sources.Source
	norm    Normalizer
	log     zerolog.Logger
}

// NewSequentialStrategy builds the strategy from cfg.
func NewSequentialStrategy(cfg StrategyConfig) *SequentialStrategy {
	return &SequentialStrategy{
		sources: cfg.Sources,
		norm:    cfg.normalizer(),
		log:     cfg.Logger,
	}
}

// Name implements Strategy.
func (s *SequentialStrategy) Name() string {
	return StrategySequential
}

// SearchByISBN implements Strategy.
func (s *SequentialStrategy) SearchByISBN(ctx context.Context, isbn string) ([]UnifiedResult, []SourceMetric) {
	return s.search(ctx, query{kind: "isbn", isbn: isbn})
}

// SearchByTitleAuthor implements Strategy.
func (s *SequentialStrategy) SearchByTitleAuthor(ctx context.Context, title, author string) ([]UnifiedResult, []SourceMetric) {
	return s.search(ctx, query{kind: "title", title: title, author: author})
}

func (s *SequentialStrategy) search(ctx context.Context, q query) ([]UnifiedResult, []SourceMetric) {
	ms := make([]SourceMetric, 0, len(s.sources))
	for _, src := range s.sources {
		results, m := fetchOne(ctx, src, q, s.norm, s.log)
		ms = append(ms, m)
		if len(results) > 0 {
			// First non-empty answer wins, in the source's own order.
			return results, ms
		}
	}
	return nil, ms
}
