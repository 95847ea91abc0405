// file: internal/metasearch/textnorm.go
// version: 1.0.0
// guid: 5e9b2c7f-8d14-4a63-b0e5-1c8f4d7a2e96

package metasearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText produces the comparison form of a string: diacritics folded,
// lowercased, punctuation removed, whitespace collapsed. Used for
// deduplication keys only, never for display.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// punctuation is dropped without leaving a gap, so
		// "J.R.R." and "JRR" compare equal
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeAuthor folds an author name for comparison, reordering the
// catalog "Last, First" form to "first last" first.
func normalizeAuthor(a string) string {
	if i := strings.Index(a, ","); i >= 0 {
		a = strings.TrimSpace(a[i+1:]) + " " + strings.TrimSpace(a[:i])
	}
	return foldText(a)
}

// titleAuthorKey is the deduplication key: folded title plus folded
// main author.
func titleAuthorKey(r UnifiedResult) string {
	author := ""
	if r.MainAuthor != "" {
		author = normalizeAuthor(r.MainAuthor)
	}
	return foldText(r.Title) + "|" + author
}
