// file: internal/sources/openlibrary_test.go
// version: 1.1.0
// guid: e5a9c2d8-7f36-4b14-9e0a-2d8b5f1c7e93

package sources_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lmorel/bibsearch/internal/sources"
	"github.com/lmorel/bibsearch/internal/testutil"
)

var _ sources.Source = (*sources.OpenLibraryClient)(nil)

func TestOpenLibraryFetchByISBN(t *testing.T) {
	srv := testutil.MockSourceServer(t, map[string]string{
		"/isbn/9780618260300.json": testutil.OpenLibraryEditionResponse,
		"/authors/OL26320A.json":   testutil.OpenLibraryAuthorResponse,
	})
	defer srv.Close()

	c := sources.NewOpenLibraryClientWithBaseURL(srv.URL)
	rec, err := c.FetchByISBN(context.Background(), "978-0-618-26030-0")
	if err != nil {
		t.Fatalf("FetchByISBN: %v", err)
	}
	if rec.Title != "The Hobbit" {
		t.Errorf("title = %q", rec.Title)
	}
	if len(rec.Authors) != 1 || rec.Authors[0] != "J.R.R. Tolkien" {
		t.Errorf("authors = %v, want resolved author name", rec.Authors)
	}
	if rec.ISBN != "9780618260300" {
		t.Errorf("ISBN = %q", rec.ISBN)
	}
	if rec.Publisher != "Houghton Mifflin" {
		t.Errorf("publisher = %q", rec.Publisher)
	}
	if rec.Description != "Bilbo Baggins is a hobbit." {
		t.Errorf("description = %q, want unwrapped text value", rec.Description)
	}
	wantCover := fmt.Sprintf("%s/b/id/6549871-L.jpg", srv.URL)
	if rec.CoverURL != wantCover {
		t.Errorf("cover = %q, want %q", rec.CoverURL, wantCover)
	}
	if rec.Language != "eng" {
		t.Errorf("language = %q", rec.Language)
	}
}

func TestOpenLibraryFetchByISBNNotFound(t *testing.T) {
	srv := testutil.MockSourceServer(t, map[string]string{})
	defer srv.Close()

	c := sources.NewOpenLibraryClientWithBaseURL(srv.URL)
	_, err := c.FetchByISBN(context.Background(), "9780000000002")
	if !errors.Is(err, sources.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenLibraryAuthorLookupFailureIsNotFatal(t *testing.T) {
	// Author document missing: the record still comes back, just
	// without author names.
	srv := testutil.MockSourceServer(t, map[string]string{
		"/isbn/9780618260300.json": testutil.OpenLibraryEditionResponse,
	})
	defer srv.Close()

	c := sources.NewOpenLibraryClientWithBaseURL(srv.URL)
	rec, err := c.FetchByISBN(context.Background(), "9780618260300")
	if err != nil {
		t.Fatalf("FetchByISBN: %v", err)
	}
	if len(rec.Authors) != 0 {
		t.Errorf("authors = %v, want none", rec.Authors)
	}
}

func TestOpenLibraryFetchByTitleAuthor(t *testing.T) {
	srv := testutil.MockSourceServer(t, map[string]string{
		"/search.json": testutil.OpenLibraryHobbitSearchResponse,
	})
	defer srv.Close()

	c := sources.NewOpenLibraryClientWithBaseURL(srv.URL)
	recs, err := c.FetchByTitleAuthor(context.Background(), "The Hobbit", "Tolkien")
	if err != nil {
		t.Fatalf("FetchByTitleAuthor: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].ISBN != "9780618260300" {
		t.Errorf("ISBN = %q, want the ISBN-13 from the list", recs[0].ISBN)
	}
	if recs[0].Year != "1937" {
		t.Errorf("year = %q", recs[0].Year)
	}
}

func TestOpenLibrarySearchEmpty(t *testing.T) {
	srv := testutil.MockSourceServer(t, map[string]string{
		"/search.json": testutil.OpenLibraryEmptySearchResponse,
	})
	defer srv.Close()

	c := sources.NewOpenLibraryClientWithBaseURL(srv.URL)
	_, err := c.FetchByTitleAuthor(context.Background(), "No Such Book", "")
	if !errors.Is(err, sources.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
