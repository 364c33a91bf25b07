//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

func badFileRune(sym rune) bool {
	return sym == 0 || sym == os.PathSeparator || sym == os.PathListSeparator
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
