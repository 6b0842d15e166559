// Package sysutil holds process-level helpers shared by main and config:
// logger setup and the parsing of loosely formatted environment values.
package sysutil

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetLogLevel sets the global zerolog level from a case-insensitive name.
// "warning" is accepted for warn; blank or unknown names mean info.
func SetLogLevel(lvl string) {
	name := strings.ToLower(strings.TrimSpace(lvl))
	if name == "warning" {
		name = "warn"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// NewLogger returns the process logger writing to w: JSON lines, or a
// human-readable console format when pretty is set.
func NewLogger(w io.Writer, pretty bool, service string) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

var (
	truthy = map[string]bool{"1": true, "true": true, "yes": true, "y": true, "on": true}
	falsy  = map[string]bool{"0": true, "false": true, "no": true, "n": true, "off": true}
)

// IsTruthy reports whether v spells yes: 1, true, yes, y or on, in any case.
func IsTruthy(v string) bool { return truthy[strings.ToLower(strings.TrimSpace(v))] }

// IsFalsy reports whether v spells no: 0, false, no, n or off. A value that
// is neither truthy nor falsy is left to the caller's default.
func IsFalsy(v string) bool { return falsy[strings.ToLower(strings.TrimSpace(v))] }

// FirstNonEmpty returns the first non-blank value as given, or "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
