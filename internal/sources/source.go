// file: internal/sources/source.go
// version: 1.1.0
// guid: 2e8b4c6d-9f10-4a3b-8c5d-7e1f2a9b0c4d

package sources

import (
	"context"
	"regexp"
)

// Stable source identifiers used in configuration, metrics labels and
// result provenance.
const (
	NameBnF         = "bnf"
	NameGoogleBooks = "googlebooks"
	NameOpenLibrary = "openlibrary"
)

// DefaultOrder is the priority order in which sources are consulted.
var DefaultOrder = []string{NameBnF, NameGoogleBooks, NameOpenLibrary}

const userAgent = "bibsearch/1.0 (+https://github.com/lmorel/bibsearch)"

// Record is one bibliographic record as returned by a single source,
// already mapped out of the source's native payload.
type Record struct {
	Source      string
	Title       string
	Subtitle    string
	Authors     []string
	ISBN        string
	Publisher   string
	Year        string
	Description string
	CoverURL    string
	Language    string
}

// Source is implemented by each remote catalog adapter. Implementations
// must honor ctx cancellation and classify failures with the package
// sentinel errors so callers can use errors.Is.
type Source interface {
	// Name returns the stable identifier of the source.
	Name() string

	// FetchByISBN returns at most one record for the given ISBN.
	// ErrNotFound when the source has no record for it.
	FetchByISBN(ctx context.Context, isbn string) (*Record, error)

	// FetchByTitleAuthor returns candidate records for a title and an
	// optional author. ErrNotFound when nothing matched.
	FetchByTitleAuthor(ctx context.Context, title, author string) ([]Record, error)
}

var displayNames = map[string]string{
	NameBnF:         "BnF",
	NameGoogleBooks: "Google Books",
	NameOpenLibrary: "OpenLibrary",
}

// DisplayName maps a source identifier to its human-readable name.
// Unknown identifiers are returned unchanged.
func DisplayName(id string) string {
	if d, ok := displayNames[id]; ok {
		return d
	}
	return id
}

var yearRE = regexp.MustCompile(`\d{4}`)

// extractYear pulls the first four-digit run out of a free-form date
// string ("DL 2016", "2016-07-12", "cop. 1994").
func extractYear(s string) string {
	return yearRE.FindString(s)
}
