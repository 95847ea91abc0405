// file: internal/server/response_types.go
// version: 1.1.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package server

import "github.com/lmorel/bibsearch/internal/metasearch"

// SearchResponse is the envelope for both search endpoints.
type SearchResponse struct {
	Results []metasearch.UnifiedResult `json:"results"`
	Count   int                        `json:"count"`
	Cached  bool                       `json:"cached"`
	Sources []metasearch.SourceMetric  `json:"sources,omitempty"`
}

// ErrorResponse is the envelope for client errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// newSearchResponse wraps service output. A nil metrics slice means the
// answer came from cache; results are always a JSON array, never null.
func newSearchResponse(results []metasearch.UnifiedResult, ms []metasearch.SourceMetric) SearchResponse {
	if results == nil {
		results = []metasearch.UnifiedResult{}
	}
	return SearchResponse{
		Results: results,
		Count:   len(results),
		Cached:  ms == nil,
		Sources: ms,
	}
}
