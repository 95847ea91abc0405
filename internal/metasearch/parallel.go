// file: internal/metasearch/parallel.go
// version: 1.1.0
// guid: 9e5a3d7b-4f28-4c61-a9d2-0b8e6f3c7a15

package metasearch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lmorel/bibsearch/internal/sources"
)

// ParallelStrategy fans out to every source at once under one shared
// deadline and keeps whatever arrives, in completion order. A source
// that misses the deadline contributes a timeout metric, nothing more.
type ParallelStrategy struct {
	sources []sources.Source
	norm    Normalizer
	timeout time.Duration
	log     zerolog.Logger
}

// NewParallelStrategy builds the strategy from cfg.
func NewParallelStrategy(cfg StrategyConfig) *ParallelStrategy {
	return &ParallelStrategy{
		sources: cfg.Sources,
		norm:    cfg.normalizer(),
		timeout: cfg.fanoutTimeout(),
		log:     cfg.Logger,
	}
}

// Name implements Strategy.
func (p *ParallelStrategy) Name() string {
	return StrategyParallel
}

// SearchByISBN implements Strategy.
func (p *ParallelStrategy) SearchByISBN(ctx context.Context, isbn string) ([]UnifiedResult, []SourceMetric) {
	return p.search(ctx, query{kind: "isbn", isbn: isbn})
}

// SearchByTitleAuthor implements Strategy.
func (p *ParallelStrategy) SearchByTitleAuthor(ctx context.Context, title, author string) ([]UnifiedResult, []SourceMetric) {
	return p.search(ctx, query{kind: "title", title: title, author: author})
}

func (p *ParallelStrategy) search(ctx context.Context, q query) ([]UnifiedResult, []SourceMetric) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type outcome struct {
		results []UnifiedResult
		metric  SourceMetric
	}

	// Buffered to the fan-out width so late finishers can always send
	// and no goroutine outlives the call by more than its own fetch.
	ch := make(chan outcome, len(p.sources))
	for _, src := range p.sources {
		go func(src sources.Source) {
			results, m := fetchOne(ctx, src, q, p.norm, p.log)
			ch <- outcome{results: results, metric: m}
		}(src)
	}

	var all []UnifiedResult
	ms := make([]SourceMetric, 0, len(p.sources))
	for range p.sources {
		o := <-ch
		ms = append(ms, o.metric)
		all = append(all, o.results...)
	}
	return all, ms
}
