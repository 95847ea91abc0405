// file: internal/metasearch/service.go
// version: 1.2.0
// guid: 3a9d6f2e-8c47-4b15-a7e3-5d1f0b8c4e62

package metasearch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/lmorel/bibsearch/internal/cache"
	"github.com/lmorel/bibsearch/internal/isbn"
	"github.com/lmorel/bibsearch/internal/metrics"
)

// DefaultCacheTTL bounds how long a search answer is served from cache.
const DefaultCacheTTL = 30 * time.Minute

// Config assembles a Service.
type Config struct {
	Strategy Strategy
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

// Service is the façade callers talk to: one cache in front of one
// strategy. Lookups never fail; a search that finds nothing returns an
// empty list, and per-source diagnostics travel in the metrics slice.
type Service struct {
	strategy Strategy
	cache    *cache.Cache[[]UnifiedResult]
	log      zerolog.Logger
}

// New builds a Service. A nil strategy is a programmer error and fails
// immediately; nothing else about construction can fail.
func New(cfg Config) (*Service, error) {
	if cfg.Strategy == nil {
		return nil, errors.New("metasearch: strategy is required")
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		strategy: cfg.Strategy,
		cache:    cache.New[[]UnifiedResult](ttl),
		log:      cfg.Logger,
	}, nil
}

// SearchByISBN answers from cache when possible, otherwise delegates to
// the strategy and caches whatever came back, found or not. The
// strategy's ordering is preserved as is. An empty or whitespace-only
// ISBN short-circuits: no source calls, no cache traffic. On cache hits
// the metrics slice is nil.
func (s *Service) SearchByISBN(ctx context.Context, rawISBN string) ([]UnifiedResult, []SourceMetric) {
	cleaned := isbn.Clean(rawISBN)
	if cleaned == "" {
		return nil, nil
	}
	key := "isbn:" + strings.ToLower(cleaned)
	return s.search(ctx, "isbn", key, func(ctx context.Context) ([]UnifiedResult, []SourceMetric) {
		return s.strategy.SearchByISBN(ctx, cleaned)
	})
}

// SearchByTitleAuthor is the title/author twin of SearchByISBN. An
// empty title short-circuits regardless of the author.
func (s *Service) SearchByTitleAuthor(ctx context.Context, title, author string) ([]UnifiedResult, []SourceMetric) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return nil, nil
	}
	key := "title:" + strings.ToLower(title) + "|" + strings.ToLower(author)
	return s.search(ctx, "title", key, func(ctx context.Context) ([]UnifiedResult, []SourceMetric) {
		return s.strategy.SearchByTitleAuthor(ctx, title, author)
	})
}

func (s *Service) search(ctx context.Context, kind, key string, fn func(context.Context) ([]UnifiedResult, []SourceMetric)) ([]UnifiedResult, []SourceMetric) {
	if hit, ok := s.cache.Get(key); ok {
		metrics.IncCacheHit()
		s.log.Debug().Str("kind", kind).Str("key", key).Int("results", len(hit)).Msg("cache hit")
		return hit, nil
	}
	metrics.IncCacheMiss()

	callID := ulid.Make().String()
	log := s.log.With().Str("call_id", callID).Str("kind", kind).Str("strategy", s.strategy.Name()).Logger()
	log.Info().Str("key", key).Msg("search start")

	start := time.Now()
	results, ms := fn(ctx)
	elapsed := time.Since(start)

	metrics.IncSearch(kind, s.strategy.Name())
	metrics.ObserveSearchDuration(kind, elapsed)

	// Empty answers are cached too, so a book no source knows is not
	// re-fetched until the entry expires.
	s.cache.Set(key, results)
	metrics.SetCacheEntries(s.cache.Len())

	log.Info().Int("results", len(results)).Dur("elapsed", elapsed).Msg("search complete")
	return results, ms
}

// ClearCache drops every cached answer and resets the cache counters.
func (s *Service) ClearCache() {
	s.cache.Clear()
	metrics.SetCacheEntries(0)
	s.log.Info().Msg("result cache cleared")
}

// CacheStats returns the live cache counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// StrategyName exposes the configured strategy for diagnostics.
func (s *Service) StrategyName() string {
	return s.strategy.Name()
}
