// file: cmd/root.go
// version: 1.2.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmorel/bibsearch/internal/config"
	"github.com/lmorel/bibsearch/internal/logging"
	"github.com/lmorel/bibsearch/internal/metasearch"
	"github.com/lmorel/bibsearch/internal/sources"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bibsearch",
	Short: "Search book metadata across BnF, Google Books and Open Library",
	Long: `Bibsearch looks up book metadata by ISBN or by title and author,
querying the BnF catalogue, Google Books and Open Library and merging
their answers into one unified record per book.

Answers are cached, so repeating a lookup is free until the cache
entry expires.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bibsearch.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().String("strategy", "sequential", "search strategy: sequential, parallel or best")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "shared deadline for concurrent source queries")
	rootCmd.PersistentFlags().Duration("cache-ttl", 30*time.Minute, "how long search answers stay cached")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("strategy", rootCmd.PersistentFlags().Lookup("strategy"))
	viper.BindPFlag("search_timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("cache_ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bibsearch")
	}

	viper.SetEnvPrefix("BIBSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine, every key has a default.
	_ = viper.ReadInConfig()
}

// setup loads the effective configuration and builds the logger.
// Logs go to stderr so JSON output on stdout stays clean.
func setup() (config.Config, zerolog.Logger) {
	cfg := config.Load()
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	if file := viper.ConfigFileUsed(); file != "" {
		log.Debug().Str("config_file", file).Msg("configuration loaded")
	}
	return cfg, log
}

// buildSources assembles the enabled sources in the configured
// priority order, with per-source base URLs and throttles applied.
func buildSources(cfg config.Config) ([]sources.Source, error) {
	out := make([]sources.Source, 0, len(cfg.Sources.Order))
	for _, name := range cfg.Sources.Order {
		sc := cfg.Sources.For(name)
		if !sc.Enabled {
			continue
		}

		var src sources.Source
		switch name {
		case sources.NameBnF:
			if sc.BaseURL != "" {
				src = sources.NewBnFClientWithBaseURL(sc.BaseURL)
			} else {
				src = sources.NewBnFClient()
			}
		case sources.NameGoogleBooks:
			if sc.BaseURL != "" {
				src = sources.NewGoogleBooksClientWithBaseURL(sc.BaseURL)
			} else {
				src = sources.NewGoogleBooksClient()
			}
		case sources.NameOpenLibrary:
			if sc.BaseURL != "" {
				src = sources.NewOpenLibraryClientWithBaseURL(sc.BaseURL)
			} else {
				src = sources.NewOpenLibraryClient()
			}
		default:
			return nil, fmt.Errorf("unknown source %q in sources.order", name)
		}

		if sc.RateLimitRPS > 0 {
			src = sources.Throttled(src, sc.RateLimitRPS, sc.Burst)
		}
		out = append(out, src)
	}

	if len(out) == 0 {
		return nil, errors.New("no sources enabled")
	}
	return out, nil
}

// newService wires sources, strategy and cache into a ready service.
func newService(cfg config.Config, log zerolog.Logger) (*metasearch.Service, error) {
	srcs, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}

	strategy, err := metasearch.NewStrategy(cfg.Strategy, metasearch.StrategyConfig{
		Sources: srcs,
		Timeout: cfg.SearchTimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	return metasearch.New(metasearch.Config{
		Strategy: strategy,
		CacheTTL: cfg.CacheTTL,
		Logger:   log,
	})
}
