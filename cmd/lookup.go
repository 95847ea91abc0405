// file: cmd/lookup.go
// version: 1.0.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lmorel/bibsearch/internal/metasearch"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <file>",
	Short: "Look up a batch of ISBNs from a file",
	Long: `Look up every ISBN listed in a file, one per line. Blank lines and
lines starting with # are skipped. Answers are cached, so rerunning a
partially failed batch only refetches the gaps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open ISBN list: %w", err)
		}
		defer f.Close()
		isbns := parseISBNList(f)
		if len(isbns) == 0 {
			return fmt.Errorf("no ISBNs found in %s", args[0])
		}

		cfg, log := setup()
		svc, err := newService(cfg, log)
		if err != nil {
			return err
		}
		return runLookup(cmd.Context(), os.Stdout, svc, isbns, jsonOut)
	},
}

func init() {
	lookupCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")

	rootCmd.AddCommand(lookupCmd)
}

// parseISBNList reads one ISBN per line, skipping blanks and comments.
func parseISBNList(r io.Reader) []string {
	var isbns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		isbns = append(isbns, line)
	}
	return isbns
}

// lookupEntry is one line of the batch answer.
type lookupEntry struct {
	ISBN   string                    `json:"isbn"`
	Found  bool                      `json:"found"`
	Result *metasearch.UnifiedResult `json:"result,omitempty"`
}

func runLookup(ctx context.Context, out io.Writer, svc *metasearch.Service, isbns []string, jsonOut bool) error {
	bar := progressbar.NewOptions(len(isbns),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("looking up"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	entries := make([]lookupEntry, 0, len(isbns))
	for _, isbn := range isbns {
		results, _ := svc.SearchByISBN(ctx, isbn)
		entry := lookupEntry{ISBN: isbn, Found: len(results) > 0}
		if entry.Found {
			r := results[0]
			entry.Result = &r
		}
		entries = append(entries, entry)
		bar.Add(1)
	}
	bar.Finish()

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	found := 0
	for _, e := range entries {
		if !e.Found {
			fmt.Fprintf(out, "%-17s not found\n", e.ISBN)
			continue
		}
		found++
		r := e.Result
		fmt.Fprintf(out, "%-17s %s, %s (%s) [%s]\n",
			e.ISBN, r.DisplayTitle(), r.AuthorsDisplay(), r.YearDisplay(), joinSources(r.Sources))
	}
	fmt.Fprintf(out, "Resolved %d of %d ISBNs.\n", found, len(entries))
	return nil
}
