// file: internal/config/file.go
// version: 1.1.0
// guid: 9c8d7e6f-5a4b-3c2d-1e0f-9a8b7c6d5e4f

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lmorel/bibsearch/internal/sources"
)

// WriteDefault writes a starter config file with every supported key
// at its default value. Refuses to clobber an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	perSource := func() map[string]any {
		return map[string]any{
			"enabled":        true,
			"base_url":       "",
			"rate_limit_rps": 0.0,
			"burst":          1,
		}
	}
	fileConfig := map[string]any{
		"log_level":      "info",
		"log_format":     "console",
		"strategy":       "sequential",
		"cache_ttl":      "30m",
		"search_timeout": "10s",
		"server": map[string]any{
			"host":             "127.0.0.1",
			"port":             8080,
			"rate_limit_rps":   5.0,
			"rate_limit_burst": 10,
		},
		"sources": map[string]any{
			"order":                 sources.DefaultOrder,
			sources.NameBnF:         perSource(),
			sources.NameGoogleBooks: perSource(),
			sources.NameOpenLibrary: perSource(),
		},
	}

	data, err := yaml.Marshal(fileConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
