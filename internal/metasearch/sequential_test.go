// file: internal/metasearch/sequential_test.go
// version: 1.0.0
// guid: b4e7a2d9-8c15-4f63-a07b-5d9e2c4f8a36

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

func TestSequentialFirstSourceWins(t *testing.T) {
	bnf := &testutil.FakeSource{
		SourceName: sources.NameBnF,
		ISBNRecord: &sources.Record{Source: sources.NameBnF, Title: "Le petit prince", ISBN: "9782070612758"},
	}
	google := &testutil.FakeSource{
		SourceName: sources.NameGoogleBooks,
		ISBNRecord: &sources.Record{Source: sources.NameGoogleBooks, Title: "Le petit prince"},
	}
	ol := &testutil.FakeSource{SourceName: sources.NameOpenLibrary}

	s := NewSequentialStrategy(StrategyConfig{
		Sources: []sources.Source{bnf, google, ol},
		Logger:  zerolog.Nop(),
	})

	results, ms := s.SearchByISBN(context.Background(), "9782070612758")

	require.Len(t, results, 1)
	assert.Equal(t, sources.NameBnF, results[0].Origin.Name)
	require.Len(t, ms, 1, "sources after the winner must not appear in telemetry")
	assert.Equal(t, StatusSuccess, ms[0].Status)
	assert.Equal(t, 1, ms[0].Results)

	assert.Equal(t, 1, bnf.Calls())
	assert.Zero(t, google.Calls(), "lower-priority source must not be contacted")
	assert.Zero(t, ol.Calls())
}

func TestSequentialFallsThroughOnEmpty(t *testing.T) {
	bnf := &testutil.FakeSource{SourceName: sources.NameBnF} // answers not-found
	google := &testutil.FakeSource{
		SourceName: sources.NameGoogleBooks,
		ISBNRecord: &sources.Record{Source: sources.NameGoogleBooks, Title: "The Hobbit", ISBN: "9780547928227"},
	}
	ol := &testutil.FakeSource{SourceName: sources.NameOpenLibrary}

	s := NewSequentialStrategy(StrategyConfig{
		Sources: []sources.Source{bnf, google, ol},
		Logger:  zerolog.Nop(),
	})

	results, ms := s.SearchByISBN(context.Background(), "9780547928227")

	require.Len(t, results, 1)
	assert.Equal(t, sources.NameGoogleBooks, results[0].Origin.Name)

	require.Len(t, ms, 2)
	assert.Equal(t, StatusSuccess, ms[0].Status, "not-found is a successful consultation")
	assert.Zero(t, ms[0].Results)
	assert.Equal(t, StatusSuccess, ms[1].Status)
	assert.Zero(t, ol.Calls())
}

func TestSequentialSwallowsFailures(t *testing.T) {
	bnf := &testutil.FakeSource{SourceName: sources.NameBnF, Err: sources.ErrSourceUnavailable}
	google := &testutil.FakeSource{
		SourceName: sources.NameGoogleBooks,
		ISBNRecord: &sources.Record{Source: sources.NameGoogleBooks, Title: "The Hobbit"},
	}

	s := NewSequentialStrategy(StrategyConfig{
		Sources: []sources.Source{bnf, google},
		Logger:  zerolog.Nop(),
	})

	results, ms := s.SearchByISBN(context.Background(), "9780547928227")

	require.Len(t, results, 1, "a failing source must not abort the search")
	assert.Equal(t, sources.NameGoogleBooks, results[0].Origin.Name)

	require.Len(t, ms, 2)
	assert.Equal(t, StatusError, ms[0].Status)
	assert.NotEmpty(t, ms[0].Err)
	assert.Equal(t, StatusSuccess, ms[1].Status)
}

func TestSequentialAllSourcesEmpty(t *testing.T) {
	bnf := &testutil.FakeSource{SourceName: sources.NameBnF}
	google := &testutil.FakeSource{SourceName: sources.NameGoogleBooks}
	ol := &testutil.FakeSource{SourceName: sources.NameOpenLibrary}

	s := NewSequentialStrategy(StrategyConfig{
		Sources: []sources.Source{bnf, google, ol},
		Logger:  zerolog.Nop(),
	})

	results, ms := s.SearchByTitleAuthor(context.Background(), "No Such Book", "")

	assert.Empty(t, results)
	require.Len(t, ms, 3, "every source is consulted when none answers")
	for _, m := range ms {
		assert.Equal(t, StatusSuccess, m.Status)
		assert.Zero(t, m.Results)
	}
}

func TestSequentialTitleSearchKeepsSourceOrder(t *testing.T) {
	bnf := &testutil.FakeSource{
		SourceName: sources.NameBnF,
		TitleRecords: []sources.Record{
			{Source: sources.NameBnF, Title: "Les Misérables, tome 1"},
			{Source: sources.NameBnF, Title: "Les Misérables, tome 2"},
		},
	}

	s := NewSequentialStrategy(StrategyConfig{
		Sources: []sources.Source{bnf},
		Logger:  zerolog.Nop(),
	})

	results, ms := s.SearchByTitleAuthor(context.Background(), "Les Misérables", "Hugo")

	require.Len(t, results, 2)
	assert.Equal(t, "Les Misérables, tome 1", results[0].Title)
	assert.Equal(t, "Les Misérables, tome 2", results[1].Title)
	require.Len(t, ms, 1)
	assert.Equal(t, 2, ms[0].Results)
}
