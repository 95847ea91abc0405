// file: internal/logging/logging.go
// version: 1.0.0
// guid: 9a4e7c2b-5d83-4f16-b0a9-3e6c8d1f4a27

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config controls logger construction.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // json or console
	Output io.Writer
}

// New builds the process logger. The level is applied globally so it
// can be adjusted later with SetLevel (config hot reload).
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	return zerolog.New(out).With().Timestamp().Logger()
}

// SetLevel adjusts the process-wide level filter.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel maps a config string to a zerolog level. Unknown or empty
// strings mean info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
