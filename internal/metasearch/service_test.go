// file: internal/metasearch/service_test.go
// version: 1.2.0
// guid: a6c3e9f5-7d28-4b64-8a19-3f5c0d7e2b81

package metasearch

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmorel/bibsearch/internal/sources"
	"github.com/lmorel/bibsearch/internal/testutil"
)

func newTestService(t *testing.T, fakes ...*testutil.FakeSource) *Service {
	t.Helper()
	srcs := make([]sources.Source, len(fakes))
	for i, f := range fakes {
		srcs[i] = f
	}
	strategy := NewSequentialStrategy(StrategyConfig{Sources: srcs, Logger: zerolog.Nop()})
	svc, err := New(Config{Strategy: strategy, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return svc
}

func TestNewRequiresStrategy(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestServiceSecondSearchHitsCache(t *testing.T) {
	fake := &testutil.FakeSource{
		SourceName: sources.NameBnF,
		ISBNRecord: &sources.Record{Source: sources.NameBnF, Title: "Le petit prince", ISBN: "9782070612758"},
	}
	svc := newTestService(t, fake)
	ctx := context.Background()

	first, ms := svc.SearchByISBN(ctx, "9782070612758")
	require.Len(t, first, 1)
	require.Len(t, ms, 1)

	second, ms2 := svc.SearchByISBN(ctx, "9782070612758")
	assert.Equal(t, first, second)
	assert.Nil(t, ms2, "cache hits carry no source telemetry")
	assert.Equal(t, 1, fake.Calls(), "the source must not be consulted again")

	stats := svc.CacheStats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestServiceCachesEmptyAnswers(t *testing.T) {
	fake := &testutil.FakeSource{SourceName: sources.NameBnF} // knows nothing
	svc := newTestService(t, fake)
	ctx := context.Background()

	results, ms := svc.SearchByISBN(ctx, "9782070612758")
	assert.Empty(t, results)
	require.Len(t, ms, 1)

	results, ms = svc.SearchByISBN(ctx, "9782070612758")
	assert.Empty(t, results)
	assert.Nil(t, ms)
	assert.Equal(t, 1, fake.Calls(), "a cached empty answer is still an answer")
	assert.Equal(t, 1, svc.CacheStats().Entries)
}

func TestServiceEmptyInputShortCircuits(t *testing.T) {
	fake := &testutil.FakeSource{SourceName: sources.NameBnF}
	svc := newTestService(t, fake)
	ctx := context.Background()

	results, ms := svc.SearchByISBN(ctx, "   ")
	assert.Empty(t, results)
	assert.Nil(t, ms)

	results, ms = svc.SearchByTitleAuthor(ctx, "", "Tolkien")
	assert.Empty(t, results)
	assert.Nil(t, ms)

	assert.Zero(t, fake.Calls(), "empty input must not reach any source")
	stats := svc.CacheStats()
	assert.Zero(t, stats.Entries)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses, "short-circuits do not touch the cache")
}

func TestServiceISBNKeyIgnoresFormatting(t *testing.T) {
	fake := &testutil.FakeSource{
		SourceName: sources.NameBnF,
		ISBNRecord: &sources.Record{Source: sources.NameBnF, Title: "Le petit prince", ISBN: "9782070612758"},
	}
	svc := newTestService(t, fake)
	ctx := context.Background()

	svc.SearchByISBN(ctx, "978-2-07-061275-8")
	svc.SearchByISBN(ctx, " 9782070612758 ")

	assert.Equal(t, 1, fake.Calls(), "hyphens and spaces must not split the cache key")
	assert.Equal(t, 1, svc.CacheStats().Entries)
}

func TestServiceTitleKeyIsCaseInsensitive(t *testing.T) {
	fake := &testutil.FakeSource{
		SourceName:   sources.NameBnF,
		TitleRecords: []sources.Record{{Source: sources.NameBnF, Title: "The Hobbit"}},
	}
	svc := newTestService(t, fake)
	ctx := context.Background()

	svc.SearchByTitleAuthor(ctx, "The Hobbit", "Tolkien")
	svc.SearchByTitleAuthor(ctx, "  the hobbit ", "TOLKIEN")

	assert.Equal(t, 1, fake.Calls())
	assert.Equal(t, 1, svc.CacheStats().Entries)
}

func TestServiceGarbageISBNStillSearched(t *testing.T) {
	fake := &testutil.FakeSource{SourceName: sources.NameBnF}
	svc := newTestService(t, fake)

	results, ms := svc.SearchByISBN(context.Background(), "notanisbn")

	assert.Empty(t, results)
	require.Len(t, ms, 1, "validation is the sources' problem, not the façade's")
	assert.Equal(t, 1, fake.Calls())
}

func TestServiceClearCache(t *testing.T) {
	fake := &testutil.FakeSource{
		SourceName: sources.NameBnF,
		ISBNRecord: &sources.Record{Source: sources.NameBnF, Title: "Le petit prince", ISBN: "9782070612758"},
	}
	svc := newTestService(t, fake)
	ctx := context.Background()

	svc.SearchByISBN(ctx, "9782070612758")
	svc.SearchByISBN(ctx, "9782070612758")
	svc.ClearCache()

	stats := svc.CacheStats()
	assert.Zero(t, stats.Entries)
	assert.Zero(t, stats.Hits, "clearing resets the counters")
	assert.Zero(t, stats.Misses)

	svc.SearchByISBN(ctx, "9782070612758")
	assert.Equal(t, 2, fake.Calls(), "after a clear the sources are consulted again")
}

func TestServicePreservesStrategyOrder(t *testing.T) {
	google := &testutil.FakeSource{
		SourceName: sources.NameGoogleBooks,
		TitleRecords: []sources.Record{
			{Source: sources.NameGoogleBooks, Title: "Les Misérables, tome 2"},
			{Source: sources.NameGoogleBooks, Title: "Les Misérables, tome 1"},
		},
	}
	svc := newTestService(t, google)

	results, _ := svc.SearchByTitleAuthor(context.Background(), "Les Misérables", "Hugo")

	require.Len(t, results, 2)
	assert.Equal(t, "Les Misérables, tome 2", results[0].Title, "the façade never re-orders strategy output")
	assert.Equal(t, "Les Misérables, tome 1", results[1].Title)
}

func TestServiceStrategyName(t *testing.T) {
	svc := newTestService(t, &testutil.FakeSource{SourceName: sources.NameBnF})
	assert.Equal(t, StrategySequential, svc.StrategyName())
}

func TestNewStrategyFactory(t *testing.T) {
	cfg := StrategyConfig{
		Sources: []sources.Source{&testutil.FakeSource{SourceName: sources.NameBnF}},
		Logger:  zerolog.Nop(),
	}

	for name, want := range map[string]string{
		"sequential": StrategySequential,
		"parallel":   StrategyParallel,
		"best":       StrategyBest,
		"BestResult": StrategyBest,
		" Parallel ": StrategyParallel,
	} {
		s, err := NewStrategy(name, cfg)
		require.NoError(t, err, name)
		assert.Equal(t, want, s.Name())
	}

	_, err := NewStrategy("fastest", cfg)
	require.Error(t, err)
}
