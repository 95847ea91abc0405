// file: cmd/search.go
// version: 1.1.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmorel/bibsearch/internal/matcher"
	"github.com/lmorel/bibsearch/internal/metasearch"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for a book by ISBN or by title and author",
	Long: `Search the configured catalogues for a book.

Give either an ISBN or a title (with an optional author):

  bibsearch search --isbn 978-2-07-061275-8
  bibsearch search --title "le petit prince" --author "saint-exupéry"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		isbn, _ := cmd.Flags().GetString("isbn")
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		jsonOut, _ := cmd.Flags().GetBool("json")

		cfg, log := setup()
		svc, err := newService(cfg, log)
		if err != nil {
			return err
		}
		return runSearch(cmd.Context(), os.Stdout, svc, searchOptions{
			ISBN:   isbn,
			Title:  title,
			Author: author,
			JSON:   jsonOut,
		})
	},
}

func init() {
	searchCmd.Flags().String("isbn", "", "ISBN-10 or ISBN-13 to look up")
	searchCmd.Flags().String("title", "", "title to search for")
	searchCmd.Flags().String("author", "", "author to narrow a title search")
	searchCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")

	rootCmd.AddCommand(searchCmd)
}

type searchOptions struct {
	ISBN   string
	Title  string
	Author string
	JSON   bool
}

// searchOutput is the JSON shape of a search command answer.
type searchOutput struct {
	Results []metasearch.UnifiedResult `json:"results"`
	Sources []metasearch.SourceMetric  `json:"sources,omitempty"`
}

func runSearch(ctx context.Context, out io.Writer, svc *metasearch.Service, opts searchOptions) error {
	var (
		results []metasearch.UnifiedResult
		ms      []metasearch.SourceMetric
	)
	switch {
	case opts.ISBN != "" && opts.Title != "":
		return errors.New("give either --isbn or --title, not both")
	case opts.ISBN != "":
		results, ms = svc.SearchByISBN(ctx, opts.ISBN)
	case opts.Title != "":
		results, ms = svc.SearchByTitleAuthor(ctx, opts.Title, opts.Author)
	default:
		return errors.New("specify --isbn or --title")
	}

	if opts.JSON {
		if results == nil {
			results = []metasearch.UnifiedResult{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{Results: results, Sources: ms})
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		printSourceSummary(out, ms)
		return nil
	}

	bestIdx := -1
	if opts.Title != "" && len(results) > 1 {
		if best, ok := matcher.Best(opts.Title, opts.Author, results); ok {
			for i := range results {
				if results[i].Origin == best.Result.Origin && results[i].Title == best.Result.Title {
					bestIdx = i
					break
				}
			}
		}
	}

	for i, r := range results {
		marker := ""
		if i == bestIdx {
			marker = "  <- best match"
		}
		fmt.Fprintf(out, "%2d. %s%s\n", i+1, r.DisplayTitle(), marker)
		fmt.Fprintf(out, "    Author:    %s\n", r.AuthorsDisplay())
		fmt.Fprintf(out, "    Year:      %s", r.YearDisplay())
		if r.Publisher != "" {
			fmt.Fprintf(out, "    Publisher: %s", r.Publisher)
		}
		fmt.Fprintln(out)
		if r.ISBN != "" {
			fmt.Fprintf(out, "    ISBN:      %s\n", r.ISBN)
		}
		fmt.Fprintf(out, "    Score:     %.0f    Sources:   %s\n", r.Score, joinSources(r.Sources))
	}
	printSourceSummary(out, ms)
	return nil
}

func joinSources(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	s := names[0]
	for _, n := range names[1:] {
		s += ", " + n
	}
	return s
}

// printSourceSummary reports which sources answered. A nil metrics
// slice means the answer came straight from cache.
func printSourceSummary(out io.Writer, ms []metasearch.SourceMetric) {
	if ms == nil {
		fmt.Fprintln(out, "(cached answer)")
		return
	}
	for _, m := range ms {
		line := fmt.Sprintf("    %-12s %-8s %3d results  %s", m.Source, m.Status, m.Results, m.Duration.Round(time.Millisecond))
		if m.Err != "" {
			line += "  (" + m.Err + ")"
		}
		fmt.Fprintln(out, line)
	}
}
