// file: internal/matcher/matcher_test.go
// version: 1.2.0
// guid: c3d4e5f6-a7b8-9012-cdef-345678901234

package matcher

import (
	"testing"

	"github.com/lmorel/bibsearch/internal/metasearch"
)

func result(title string, authors ...string) metasearch.UnifiedResult {
	r := metasearch.UnifiedResult{Title: title, Authors: authors}
	if len(authors) > 0 {
		r.MainAuthor = authors[0]
	}
	return r
}

func TestScoreQueryTitleOnly(t *testing.T) {
	r := result("Le petit prince", "Antoine de Saint-Exupéry")

	exact := ScoreQuery("Le petit prince", "", r)
	if exact != 100 {
		t.Errorf("exact title = %d, want 100", exact)
	}

	typo := ScoreQuery("Le ptit prince", "", r)
	if typo < 40 {
		t.Errorf("subsequence typo = %d, want >= 40", typo)
	}

	miss := ScoreQuery("Moby Dick", "", r)
	if miss >= typo {
		t.Errorf("unrelated title (%d) should score below a typo (%d)", miss, typo)
	}
}

func TestScoreQueryBlendsAuthor(t *testing.T) {
	r := result("The Hobbit", "J.R.R. Tolkien")

	right := ScoreQuery("The Hobbit", "Tolkien", r)
	wrong := ScoreQuery("The Hobbit", "Rowling", r)
	if right <= wrong {
		t.Errorf("matching author (%d) should beat a wrong one (%d)", right, wrong)
	}

	// A result without authors falls back to the title score alone.
	bare := result("The Hobbit")
	if got := ScoreQuery("The Hobbit", "Rowling", bare); got != 100 {
		t.Errorf("authorless result = %d, want title score 100", got)
	}
}

func TestRank(t *testing.T) {
	results := []metasearch.UnifiedResult{
		result("Lord of the Flies", "William Golding"),
		result("The Lord of the Rings", "J.R.R. Tolkien"),
		result("Something Completely Different", "A. N. Other"),
	}

	ranked := Rank("Lord of the Rings", "", results, 10)
	if len(ranked) == 0 {
		t.Fatal("expected candidates")
	}
	if ranked[0].Result.Title != "The Lord of the Rings" {
		t.Errorf("best = %q, want The Lord of the Rings", ranked[0].Result.Title)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("not sorted: score[%d]=%d > score[%d]=%d",
				i, ranked[i].Score, i-1, ranked[i-1].Score)
		}
	}
}

func TestRankMinScoreFilters(t *testing.T) {
	results := []metasearch.UnifiedResult{
		result("Exact Match"),
		result("something else entirely"),
	}
	ranked := Rank("Exact Match", "", results, 90)
	if len(ranked) != 1 {
		t.Errorf("minScore 90 kept %d candidates, want 1", len(ranked))
	}
}

func TestBest(t *testing.T) {
	if _, ok := Best("anything", "", nil); ok {
		t.Error("Best over nothing must report ok=false")
	}

	results := []metasearch.UnifiedResult{
		result("Dune Messiah", "Frank Herbert"),
		result("Dune", "Frank Herbert"),
	}
	best, ok := Best("Dune", "Herbert", results)
	if !ok {
		t.Fatal("expected a best candidate")
	}
	if best.Result.Title != "Dune" {
		t.Errorf("best = %q, want Dune", best.Result.Title)
	}
}
