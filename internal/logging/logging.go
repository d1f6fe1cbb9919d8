// Package logging builds the zerolog logger used for diagnostics. Results
// are printed by package output; the logger only carries tracing and
// warnings, always on stderr.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Verbose bool   // debug level instead of warn
	Format  string // console (default) or json
	NoColor bool
}

// ParseFormat validates a --log-format value.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q (expected console or json)", s)
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: opts.NoColor}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
