// file: internal/config/config.go
// version: 1.2.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lmorel/bibsearch/internal/sources"
)

// Config holds application configuration
type Config struct {
	LogLevel      string
	LogFormat     string
	Strategy      string
	CacheTTL      time.Duration
	SearchTimeout time.Duration
	Server        ServerConfig
	Sources       SourcesConfig
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host           string
	Port           int
	RateLimitRPS   float64
	RateLimitBurst int
}

// SourceConfig configures one catalog source. An empty BaseURL means
// the source's production endpoint; RateLimitRPS 0 means no throttle.
type SourceConfig struct {
	Enabled      bool
	BaseURL      string
	RateLimitRPS float64
	Burst        int
}

// SourcesConfig holds the per-source settings plus the priority order
// the strategies consult them in.
type SourcesConfig struct {
	Order       []string
	BnF         SourceConfig
	GoogleBooks SourceConfig
	OpenLibrary SourceConfig
}

// For returns the settings for a source by its name.
func (s SourcesConfig) For(name string) SourceConfig {
	switch name {
	case sources.NameBnF:
		return s.BnF
	case sources.NameGoogleBooks:
		return s.GoogleBooks
	case sources.NameOpenLibrary:
		return s.OpenLibrary
	default:
		return SourceConfig{}
	}
}

// SetDefaults registers every configuration key with its default value.
func SetDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "console")
	viper.SetDefault("strategy", "sequential")
	viper.SetDefault("cache_ttl", "30m")
	viper.SetDefault("search_timeout", "10s")

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.rate_limit_rps", 5.0)
	viper.SetDefault("server.rate_limit_burst", 10)

	viper.SetDefault("sources.order", sources.DefaultOrder)
	for _, name := range sources.DefaultOrder {
		viper.SetDefault("sources."+name+".enabled", true)
		viper.SetDefault("sources."+name+".base_url", "")
		viper.SetDefault("sources."+name+".rate_limit_rps", 0.0)
		viper.SetDefault("sources."+name+".burst", 1)
	}
}

// Load reads the typed configuration out of viper. SetDefaults must
// have run first; flag and env bindings are the caller's business.
func Load() Config {
	cfg := Config{
		LogLevel:      viper.GetString("log_level"),
		LogFormat:     viper.GetString("log_format"),
		Strategy:      strings.ToLower(strings.TrimSpace(viper.GetString("strategy"))),
		CacheTTL:      viper.GetDuration("cache_ttl"),
		SearchTimeout: viper.GetDuration("search_timeout"),
		Server: ServerConfig{
			Host:           viper.GetString("server.host"),
			Port:           viper.GetInt("server.port"),
			RateLimitRPS:   viper.GetFloat64("server.rate_limit_rps"),
			RateLimitBurst: viper.GetInt("server.rate_limit_burst"),
		},
		Sources: SourcesConfig{
			Order:       viper.GetStringSlice("sources.order"),
			BnF:         loadSource(sources.NameBnF),
			GoogleBooks: loadSource(sources.NameGoogleBooks),
			OpenLibrary: loadSource(sources.NameOpenLibrary),
		},
	}

	if len(cfg.Sources.Order) == 0 {
		cfg.Sources.Order = sources.DefaultOrder
	}
	return cfg
}

func loadSource(name string) SourceConfig {
	prefix := "sources." + name + "."
	return SourceConfig{
		Enabled:      viper.GetBool(prefix + "enabled"),
		BaseURL:      viper.GetString(prefix + "base_url"),
		RateLimitRPS: viper.GetFloat64(prefix + "rate_limit_rps"),
		Burst:        viper.GetInt(prefix + "burst"),
	}
}
