// file: cmd/cache.go
// version: 1.0.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmorel/bibsearch/internal/cache"
)

// Talks to a running serve instance: each CLI invocation has its own
// in-process cache, so stats and clear only mean something against the
// server's one.
var (
	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the cache of a running server",
	}

	cacheStatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show entry and hit/miss counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, _ := cmd.Flags().GetString("server")
			return runCacheStats(os.Stdout, serverURL)
		},
	}

	cacheClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached answer and reset the counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, _ := cmd.Flags().GetString("server")
			return runCacheClear(os.Stdout, serverURL)
		},
	}
)

func init() {
	cacheCmd.PersistentFlags().String("server", "http://127.0.0.1:8080", "base URL of the running bibsearch server")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheHTTPClient = &http.Client{Timeout: 10 * time.Second}

func runCacheStats(out io.Writer, serverURL string) error {
	resp, err := cacheHTTPClient.Get(strings.TrimRight(serverURL, "/") + "/api/v1/cache/stats")
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server answered %s", resp.Status)
	}

	var stats cache.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return fmt.Errorf("failed to decode stats: %w", err)
	}

	fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
	fmt.Fprintf(out, "Hits:    %d\n", stats.Hits)
	fmt.Fprintf(out, "Misses:  %d\n", stats.Misses)
	return nil
}

func runCacheClear(out io.Writer, serverURL string) error {
	req, err := http.NewRequest(http.MethodDelete, strings.TrimRight(serverURL, "/")+"/api/v1/cache", nil)
	if err != nil {
		return err
	}
	resp, err := cacheHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	fmt.Fprintln(out, "Cache cleared.")
	return nil
}
