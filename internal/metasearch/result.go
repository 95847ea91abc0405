// file: internal/metasearch/result.go
// version: 1.0.0
// guid: 4a7d2f8c-6b19-4e53-9c0a-8e5b3d1f7a42

package metasearch

import (
	"strings"
	"time"
)

// SourceInfo describes which catalog a result came from and how the
// fetch behaved.
type SourceInfo struct {
	Name         string        `json:"name"`
	Confidence   float64       `json:"confidence"`
	ResponseTime time.Duration `json:"response_time"`
	Success      bool          `json:"success"`
}

// UnifiedResult is the single record shape every source's answers are
// mapped into. A value is built once by the Normalizer and never
// mutated afterward; deduplication builds new values when it merges.
type UnifiedResult struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Authors     []string   `json:"authors,omitempty"`
	MainAuthor  string     `json:"main_author,omitempty"`
	ISBN        string     `json:"isbn,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Year        string     `json:"year,omitempty"`
	Description string     `json:"description,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Language    string     `json:"language,omitempty"`
	Sources     []string   `json:"sources"`
	Origin      SourceInfo `json:"origin"`
	Score       float64    `json:"score"`
}

// Placeholders used by the display helpers.
const (
	UnknownTitle  = "Untitled"
	UnknownAuthor = "Unknown author"
	UnknownYear   = "n.d."
)

// DisplayTitle returns the title joined with its subtitle, or a
// placeholder when the record carries no title at all.
func (r UnifiedResult) DisplayTitle() string {
	if r.Title == "" {
		return UnknownTitle
	}
	if r.Subtitle != "" {
		return r.Title + " - " + r.Subtitle
	}
	return r.Title
}

// AuthorsDisplay returns the comma-joined author list, truncated after
// three names, or a placeholder when no author is known. Display
// helpers never affect scoring or deduplication.
func (r UnifiedResult) AuthorsDisplay() string {
	if len(r.Authors) == 0 {
		return UnknownAuthor
	}
	if len(r.Authors) > 3 {
		return strings.Join(r.Authors[:3], ", ") + "..."
	}
	return strings.Join(r.Authors, ", ")
}

// YearDisplay returns the publication year, or "n.d." when unknown.
func (r UnifiedResult) YearDisplay() string {
	if r.Year == "" {
		return UnknownYear
	}
	return r.Year
}
