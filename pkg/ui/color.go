// Package ui renders ranked I/O reports as text or JSON. It consumes already
// computed deltas and never derives new counter values beyond display-time
// rate division.
package ui

import "golang.org/x/term"

const (
	reset  = "\033[0m"
	green  = "\033[1;32m"
	yellow = "\033[1;33m"
	blue   = "\033[1;34m"
	cyan   = "\033[1;36m"
)

// Palette maps report elements to SGR sequences. A disabled palette holds
// empty strings so callers can splice colors unconditionally.
type Palette struct {
	Reset   string
	Header  string
	Column  string
	PID     string
	Device  string
	Summary string
}

// NewPalette returns ANSI colors when enabled, or an all-empty palette.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}
	return Palette{
		Reset:   reset,
		Header:  cyan,
		Column:  blue,
		PID:     green,
		Device:  cyan,
		Summary: yellow,
	}
}

// AutoColor reports whether colored output makes sense for fd: colors go to
// terminals, never into pipes or files.
func AutoColor(fd int) bool {
	return term.IsTerminal(fd)
}
