// file: internal/metasearch/score_test.go
// version: 1.0.0
// guid: 8e2b5c9f-4d71-4a38-b6e9-0c5f8a3d7b24

package metasearch

import (
	"testing"
	"time"

	"github.com/lmorel/bibsearch/internal/sources"
)

func TestScoreCountsPresentFields(t *testing.T) {
	w := DefaultWeights
	r := UnifiedResult{
		Title:   "Le petit prince",
		Authors: []string{"Antoine de Saint-Exupéry"},
		ISBN:    "9782070612758",
		Year:    "2007",
	}
	want := w.Title + w.Authors + w.ISBN + w.Year
	if got := w.Score(r); got != want {
		t.Errorf("Score = %v, want %v (title+authors+isbn+year, no publisher)", got, want)
	}
}

func TestScoreIgnoresInvalidISBN(t *testing.T) {
	w := DefaultWeights
	r := UnifiedResult{Title: "X", ISBN: "1234567890"}
	if got := w.Score(r); got != w.Title {
		t.Errorf("Score = %v, want %v (checksum-invalid ISBN earns nothing)", got, w.Title)
	}
}

func TestScoreEmptyRecord(t *testing.T) {
	if got := DefaultWeights.Score(UnifiedResult{}); got != 0 {
		t.Errorf("Score of empty record = %v, want 0", got)
	}
}

func TestScoreMax(t *testing.T) {
	w := DefaultWeights
	full := UnifiedResult{
		Title:       "T",
		Authors:     []string{"A"},
		ISBN:        "9782070612758",
		Year:        "2007",
		Publisher:   "P",
		Description: "D",
		CoverURL:    "http://example/c.jpg",
	}
	if got := w.Score(full); got != w.Max() {
		t.Errorf("Score of complete record = %v, want Max %v", got, w.Max())
	}
}

func TestScoreAllowsTies(t *testing.T) {
	w := DefaultWeights
	a := UnifiedResult{Title: "Same Book", Authors: []string{"X"}, Year: "2001"}
	b := UnifiedResult{Title: "Same Book", Authors: []string{"Y"}, Year: "1999"}
	if w.Score(a) != w.Score(b) {
		t.Error("identical completeness must score identically")
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer()
	rec := sources.Record{
		Source:    sources.NameBnF,
		Title:     "  Le petit prince ",
		Authors:   []string{" Saint-Exupéry, Antoine de ", ""},
		ISBN:      "978-2-07-061275-8",
		Publisher: "Gallimard",
		Year:      "2007",
	}
	origin := SourceInfo{Name: sources.NameBnF, Confidence: 1.0, ResponseTime: 120 * time.Millisecond, Success: true}

	r := n.Normalize(rec, origin)

	if r.Title != "Le petit prince" {
		t.Errorf("title = %q, want trimmed", r.Title)
	}
	if len(r.Authors) != 1 || r.MainAuthor != "Saint-Exupéry, Antoine de" {
		t.Errorf("authors = %v main = %q", r.Authors, r.MainAuthor)
	}
	if r.ISBN != "9782070612758" {
		t.Errorf("ISBN = %q, want normalized", r.ISBN)
	}
	if len(r.Sources) != 1 || r.Sources[0] != sources.NameBnF {
		t.Errorf("sources = %v", r.Sources)
	}
	if r.Origin != origin {
		t.Errorf("origin = %+v", r.Origin)
	}
	want := DefaultWeights.Title + DefaultWeights.Authors + DefaultWeights.ISBN + DefaultWeights.Year + DefaultWeights.Publisher
	if r.Score != want {
		t.Errorf("score = %v, want %v", r.Score, want)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer()
	rec := sources.Record{Source: sources.NameGoogleBooks, Title: "The Hobbit", Authors: []string{"J.R.R. Tolkien"}}
	origin := SourceInfo{Name: sources.NameGoogleBooks, Confidence: 0.8, Success: true}

	a := n.Normalize(rec, origin)
	b := n.Normalize(rec, origin)
	if a.Score != b.Score || a.Title != b.Title || a.MainAuthor != b.MainAuthor {
		t.Error("Normalize must be deterministic for identical input")
	}
}

func TestDisplayHelpers(t *testing.T) {
	r := UnifiedResult{Title: "Le petit prince", Subtitle: "avec des aquarelles de l'auteur"}
	if got := r.DisplayTitle(); got != "Le petit prince - avec des aquarelles de l'auteur" {
		t.Errorf("DisplayTitle = %q", got)
	}
	if got := (UnifiedResult{Title: "X"}).DisplayTitle(); got != "X" {
		t.Errorf("DisplayTitle without subtitle = %q", got)
	}
	if got := (UnifiedResult{}).DisplayTitle(); got != UnknownTitle {
		t.Errorf("DisplayTitle = %q, want placeholder", got)
	}
	if got := (UnifiedResult{}).AuthorsDisplay(); got != UnknownAuthor {
		t.Errorf("AuthorsDisplay = %q, want placeholder", got)
	}
	if got := (UnifiedResult{Authors: []string{"A", "B"}}).AuthorsDisplay(); got != "A, B" {
		t.Errorf("AuthorsDisplay = %q", got)
	}
	if got := (UnifiedResult{Authors: []string{"A", "B", "C", "D"}}).AuthorsDisplay(); got != "A, B, C..." {
		t.Errorf("AuthorsDisplay truncated = %q", got)
	}
	if got := (UnifiedResult{}).YearDisplay(); got != UnknownYear {
		t.Errorf("YearDisplay = %q, want placeholder", got)
	}
	if got := (UnifiedResult{Year: "1937"}).YearDisplay(); got != "1937" {
		t.Errorf("YearDisplay = %q", got)
	}
}
