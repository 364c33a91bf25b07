// Package debug produces human readable dumps of element and area trees.
package debug

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxText limits length of quoted text in dumps, longer values are
// shortened with an ellipsis.
const MaxText = 64

// TreeWriter accumulates indented lines, one per tree node or node property.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return NewTreeWriterIndent("  ")
}

// NewTreeWriterIndent uses given string for every indentation level.
func NewTreeWriterIndent(indent string) *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: indent,
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

// Line writes formatted node line.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled text content quoted.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Attr writes node property as @name=value.
func (tw *TreeWriter) Attr(depth int, name, value string) {
	tw.pad(depth)
	tw.w.WriteByte('@')
	tw.w.WriteString(name)
	tw.w.WriteByte('=')
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	if utf8.RuneCountInString(raw) > MaxText {
		runes := []rune(raw)
		return strconv.Quote(string(runes[:MaxText])) + "..."
	}
	return strconv.Quote(raw)
}
