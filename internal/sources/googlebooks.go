// file: internal/sources/googlebooks.go
// version: 1.2.0
// guid: b7d2e9f4-1a6c-4b83-9e0d-5f2c8a7b1d36

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/lmorel/bibsearch/internal/isbn"
)

// GoogleBooksClient fetches records from the Google Books Volumes API.
// No API key is required for basic searches (free tier, ~1000 req/day).
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleBooksClient creates a new Google Books API client.
func NewGoogleBooksClient() *GoogleBooksClient {
	baseURL := os.Getenv("BIBSEARCH_GOOGLEBOOKS_URL")
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	return NewGoogleBooksClientWithBaseURL(baseURL)
}

// NewGoogleBooksClientWithBaseURL creates a client with a custom base URL (for testing).
func NewGoogleBooksClientWithBaseURL(baseURL string) *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the stable identifier for this source.
func (c *GoogleBooksClient) Name() string {
	return NameGoogleBooks
}

type googleBooksResponse struct {
	TotalItems int              `json:"totalItems"`
	Items      []googleBooksVol `json:"items"`
}

type googleBooksVol struct {
	VolumeInfo googleBooksVolumeInfo `json:"volumeInfo"`
}

type googleBooksVolumeInfo struct {
	Title               string                  `json:"title"`
	Subtitle            string                  `json:"subtitle"`
	Authors             []string                `json:"authors"`
	Publisher           string                  `json:"publisher"`
	PublishedDate       string                  `json:"publishedDate"`
	Description         string                  `json:"description"`
	IndustryIdentifiers []googleBooksIndustryID `json:"industryIdentifiers"`
	ImageLinks          *googleBooksImageLinks  `json:"imageLinks"`
	Language            string                  `json:"language"`
}

type googleBooksIndustryID struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type googleBooksImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// FetchByISBN looks up a single volume by ISBN.
func (c *GoogleBooksClient) FetchByISBN(ctx context.Context, isbnNumber string) (*Record, error) {
	n := isbn.Normalize(isbnNumber)
	recs, err := c.search(ctx, "isbn:"+n, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("googlebooks: isbn %s: %w", n, ErrNotFound)
	}
	return &recs[0], nil
}

// FetchByTitleAuthor searches volumes by title, narrowed by author when given.
func (c *GoogleBooksClient) FetchByTitleAuthor(ctx context.Context, title, author string) ([]Record, error) {
	q := fmt.Sprintf("intitle:%q", title)
	if author != "" {
		q += fmt.Sprintf(" inauthor:%q", author)
	}
	recs, err := c.search(ctx, q, 5)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("googlebooks: title %q: %w", title, ErrNotFound)
	}
	return recs, nil
}

func (c *GoogleBooksClient) search(ctx context.Context, query string, maxResults int) ([]Record, error) {
	searchURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d&printType=books",
		c.baseURL, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("googlebooks: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googlebooks: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googlebooks: status %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	var gbResp googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&gbResp); err != nil {
		return nil, fmt.Errorf("googlebooks: decode: %w", ErrMalformed)
	}

	results := make([]Record, 0, len(gbResp.Items))
	for _, item := range gbResp.Items {
		vi := item.VolumeInfo
		if vi.Title == "" {
			continue
		}
		rec := Record{
			Source:      NameGoogleBooks,
			Title:       vi.Title,
			Subtitle:    vi.Subtitle,
			Authors:     vi.Authors,
			Publisher:   vi.Publisher,
			Description: vi.Description,
			Language:    vi.Language,
			Year:        extractYear(vi.PublishedDate),
		}
		for _, id := range vi.IndustryIdentifiers {
			if id.Type == "ISBN_13" {
				rec.ISBN = isbn.Normalize(id.Identifier)
			} else if id.Type == "ISBN_10" && rec.ISBN == "" {
				rec.ISBN = isbn.Normalize(id.Identifier)
			}
		}
		if vi.ImageLinks != nil {
			thumb := vi.ImageLinks.Thumbnail
			if thumb == "" {
				thumb = vi.ImageLinks.SmallThumbnail
			}
			// Google serves thumbnails over plain http by default.
			rec.CoverURL = strings.Replace(thumb, "http://", "https://", 1)
		}
		results = append(results, rec)
	}
	return results, nil
}
