// file: internal/metasearch/strategy.go
// version: 1.2.0
// guid: 2d8a5f3c-7e91-4b46-a0c8-9f3e6b1d4c72

package metasearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lmorel/bibsearch/internal/metrics"
	"github.com/lmorel/bibsearch/internal/sources"
)

// Strategy decides how the configured sources are consulted and how
// their answers are combined. A service is built around exactly one
// strategy and keeps it for its whole lifetime.
type Strategy interface {
	Name() string
	SearchByISBN(ctx context.Context, isbn string) ([]UnifiedResult, []SourceMetric)
	SearchByTitleAuthor(ctx context.Context, title, author string) ([]UnifiedResult, []SourceMetric)
}

// Strategy names accepted by configuration.
const (
	StrategySequential = "sequential"
	StrategyParallel   = "parallel"
	StrategyBest       = "best"
)

// DefaultTimeout bounds the concurrent fan-out strategies.
const DefaultTimeout = 10 * time.Second

// StrategyConfig carries what every strategy needs. Sources are
// consulted in slice order, which is therefore the priority order.
type StrategyConfig struct {
	Sources []sources.Source
	Weights ScoreWeights  // zero value means DefaultWeights
	Timeout time.Duration // shared deadline for concurrent fan-out
	Logger  zerolog.Logger
}

func (c StrategyConfig) normalizer() Normalizer {
	if c.Weights == (ScoreWeights{}) {
		return NewNormalizer()
	}
	return Normalizer{Weights: c.Weights}
}

func (c StrategyConfig) fanoutTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// NewStrategy builds a strategy by its configured name.
func NewStrategy(name string, cfg StrategyConfig) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategySequential:
		return NewSequentialStrategy(cfg), nil
	case StrategyParallel:
		return NewParallelStrategy(cfg), nil
	case StrategyBest, "bestresult", "best_result":
		return NewBestResultStrategy(cfg), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Per-source reliability carried into result provenance. Informational
// only: scores come from field completeness, never from here.
var sourceConfidence = map[string]float64{
	sources.NameBnF:         1.0,
	sources.NameGoogleBooks: 0.8,
	sources.NameOpenLibrary: 0.6,
}

func confidenceFor(name string) float64 {
	if c, ok := sourceConfidence[name]; ok {
		return c
	}
	return 0.5
}

// query is one search request routed to a source.
type query struct {
	kind   string // "isbn" or "title"
	isbn   string
	title  string
	author string
}

func (q query) run(ctx context.Context, src sources.Source) ([]sources.Record, error) {
	if q.kind == "isbn" {
		rec, err := src.FetchByISBN(ctx, q.isbn)
		if err != nil {
			return nil, err
		}
		return []sources.Record{*rec}, nil
	}
	return src.FetchByTitleAuthor(ctx, q.title, q.author)
}

// fetchOne consults a single source, normalizes its records and builds
// the telemetry entry. A source that answers "no record" yields a
// success metric with zero results; real failures are classified as
// timeout or error and swallowed here.
func fetchOne(ctx context.Context, src sources.Source, q query, norm Normalizer, log zerolog.Logger) ([]UnifiedResult, SourceMetric) {
	start := time.Now()
	recs, err := q.run(ctx, src)
	elapsed := time.Since(start)

	metric := SourceMetric{Source: src.Name(), Duration: elapsed}
	metrics.ObserveSourceDuration(src.Name(), elapsed)

	switch {
	case err == nil || errors.Is(err, sources.ErrNotFound):
		metric.Status = StatusSuccess
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		metric.Status = StatusTimeout
		metric.Err = err.Error()
	default:
		metric.Status = StatusError
		metric.Err = err.Error()
	}
	metrics.IncSourceRequest(src.Name(), metric.Status)

	if err != nil {
		if metric.Status == StatusSuccess {
			log.Debug().Str("source", src.Name()).Dur("elapsed", elapsed).Msg("source has no record")
		} else {
			log.Warn().Str("source", src.Name()).Dur("elapsed", elapsed).Err(err).Msg("source fetch failed")
		}
		return nil, metric
	}

	origin := SourceInfo{
		Name:         src.Name(),
		Confidence:   confidenceFor(src.Name()),
		ResponseTime: elapsed,
		Success:      true,
	}
	results := make([]UnifiedResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, norm.Normalize(rec, origin))
	}
	metric.Results = len(results)
	log.Debug().Str("source", src.Name()).Int("results", len(results)).Dur("elapsed", elapsed).Msg("source fetch complete")
	return results, metric
}
