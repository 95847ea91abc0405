// file: internal/sources/openlibrary.go
// version: 1.2.0
// guid: c4f8a2d7-6e1b-4c95-8d3a-0b7e9f5c2a81

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lmorel/bibsearch/internal/isbn"
)

// OpenLibraryClient fetches records from the OpenLibrary REST API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	coverBase  string
}

// NewOpenLibraryClient creates a new OpenLibrary API client.
func NewOpenLibraryClient() *OpenLibraryClient {
	baseURL := os.Getenv("BIBSEARCH_OPENLIBRARY_URL")
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	c := NewOpenLibraryClientWithBaseURL(baseURL)
	c.coverBase = "https://covers.openlibrary.org"
	return c
}

// NewOpenLibraryClientWithBaseURL creates a client with a custom base URL
// (for testing). Cover URLs are built against the same base.
func NewOpenLibraryClientWithBaseURL(baseURL string) *OpenLibraryClient {
	base := strings.TrimRight(baseURL, "/")
	return &OpenLibraryClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    base,
		coverBase:  base,
	}
}

// Name returns the stable identifier for this source.
func (c *OpenLibraryClient) Name() string {
	return NameOpenLibrary
}

type olEdition struct {
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Publishers  []string        `json:"publishers"`
	PublishDate string          `json:"publish_date"`
	ISBN13      []string        `json:"isbn_13"`
	ISBN10      []string        `json:"isbn_10"`
	Covers      []int           `json:"covers"`
	Description json.RawMessage `json:"description"`
	Authors     []olKeyRef      `json:"authors"`
	Languages   []olKeyRef      `json:"languages"`
}

type olKeyRef struct {
	Key string `json:"key"`
}

type olAuthor struct {
	Name string `json:"name"`
}

type olSearchResponse struct {
	NumFound int           `json:"numFound"`
	Docs     []olSearchDoc `json:"docs"`
}

type olSearchDoc struct {
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
	ISBN             []string `json:"isbn"`
	CoverI           int      `json:"cover_i"`
	Language         []string `json:"language"`
}

// FetchByISBN resolves a single edition document by ISBN.
func (c *OpenLibraryClient) FetchByISBN(ctx context.Context, isbnNumber string) (*Record, error) {
	n := isbn.Normalize(isbnNumber)
	editionURL := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, n)

	var ed olEdition
	if err := c.getJSON(ctx, editionURL, &ed); err != nil {
		return nil, err
	}
	if ed.Title == "" {
		return nil, fmt.Errorf("openlibrary: isbn %s: %w", n, ErrNotFound)
	}

	rec := Record{
		Source:      NameOpenLibrary,
		Title:       ed.Title,
		Subtitle:    ed.Subtitle,
		Year:        extractYear(ed.PublishDate),
		Description: olText(ed.Description),
	}
	if len(ed.Publishers) > 0 {
		rec.Publisher = ed.Publishers[0]
	}
	switch {
	case len(ed.ISBN13) > 0:
		rec.ISBN = isbn.Normalize(ed.ISBN13[0])
	case len(ed.ISBN10) > 0:
		rec.ISBN = isbn.Normalize(ed.ISBN10[0])
	default:
		rec.ISBN = n
	}
	if len(ed.Covers) > 0 && ed.Covers[0] > 0 {
		rec.CoverURL = fmt.Sprintf("%s/b/id/%d-L.jpg", c.coverBase, ed.Covers[0])
	}
	if len(ed.Languages) > 0 {
		rec.Language = strings.TrimPrefix(ed.Languages[0].Key, "/languages/")
	}
	// Author names live in separate documents. Resolution is best
	// effort, a failed lookup just leaves the list shorter.
	for i, ref := range ed.Authors {
		if i == 3 {
			break
		}
		var a olAuthor
		if err := c.getJSON(ctx, c.baseURL+ref.Key+".json", &a); err == nil && a.Name != "" {
			rec.Authors = append(rec.Authors, a.Name)
		}
	}
	return &rec, nil
}

// FetchByTitleAuthor runs a search query, narrowed by author when given.
func (c *OpenLibraryClient) FetchByTitleAuthor(ctx context.Context, title, author string) ([]Record, error) {
	params := url.Values{}
	params.Set("title", title)
	if author != "" {
		params.Set("author", author)
	}
	params.Set("limit", "5")
	searchURL := c.baseURL + "/search.json?" + params.Encode()

	var sr olSearchResponse
	if err := c.getJSON(ctx, searchURL, &sr); err != nil {
		return nil, err
	}
	if len(sr.Docs) == 0 {
		return nil, fmt.Errorf("openlibrary: title %q: %w", title, ErrNotFound)
	}

	results := make([]Record, 0, len(sr.Docs))
	for _, doc := range sr.Docs {
		if doc.Title == "" {
			continue
		}
		rec := Record{
			Source:   NameOpenLibrary,
			Title:    doc.Title,
			Subtitle: doc.Subtitle,
			Authors:  doc.AuthorName,
		}
		if doc.FirstPublishYear > 0 {
			rec.Year = strconv.Itoa(doc.FirstPublishYear)
		}
		if len(doc.Publisher) > 0 {
			rec.Publisher = doc.Publisher[0]
		}
		rec.ISBN = pickISBN(doc.ISBN)
		if doc.CoverI > 0 {
			rec.CoverURL = fmt.Sprintf("%s/b/id/%d-L.jpg", c.coverBase, doc.CoverI)
		}
		if len(doc.Language) > 0 {
			rec.Language = doc.Language[0]
		}
		results = append(results, rec)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("openlibrary: title %q: %w", title, ErrNotFound)
	}
	return results, nil
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("openlibrary: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openlibrary: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("openlibrary: %s: %w", rawURL, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("openlibrary: status %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openlibrary: decode: %w", ErrMalformed)
	}
	return nil
}

// olText decodes OpenLibrary's two description encodings: a bare string
// or a {"type": ..., "value": ...} wrapper.
func olText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Value
	}
	return ""
}

// pickISBN prefers the first ISBN-13 in the list, falling back to the
// first entry of any length.
func pickISBN(candidates []string) string {
	for _, s := range candidates {
		if n := isbn.Normalize(s); len(n) == 13 {
			return n
		}
	}
	if len(candidates) > 0 {
		return isbn.Normalize(candidates[0])
	}
	return ""
}
