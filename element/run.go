package element

import (
	"image"

	"mview/markup"
)

// RunKind distinguishes content pieces of token elements.
type RunKind uint8

const (
	RunText RunKind = iota
	// RunGlyph is character selected by font index, rendered as Text.
	RunGlyph
	// RunImage is external picture.
	RunImage
	// RunAlignMark is zero length alignment point.
	RunAlignMark
)

// Run is one content child of a token element.
type Run struct {
	Kind RunKind
	Text string
	// Image and its requested size for RunImage, zero size means natural.
	Image         image.Image
	Width, Height float64
	// Edge of alignment mark, "left" or "right".
	Edge string
	// Node is markup node the run was read from, NoNode for runs created by
	// editing.
	Node markup.NodeID
}

func (r Run) equal(o Run) bool {
	return r.Kind == o.Kind && r.Text == o.Text && r.Image == o.Image && r.Width == o.Width &&
		r.Height == o.Height && r.Edge == o.Edge && r.Node == o.Node
}

// Length is number of logical characters in the run.
func (r Run) Length() int {
	switch r.Kind {
	case RunText:
		return LogicalLength(r.Text)
	case RunGlyph, RunImage:
		return 1
	}
	return 0
}

// IsCombining reports whether r is combining mark attached to the previous
// character.
func IsCombining(r rune) bool {
	return (r >= 0x0300 && r <= 0x0362) || (r >= 0x20d0 && r <= 0x20e8)
}

// LogicalLength counts characters ignoring combining marks. Text made of
// marks only is a single character.
func LogicalLength(s string) int {
	n := 0
	for _, r := range s {
		if !IsCombining(r) {
			n++
		}
	}
	if n == 0 && s != "" {
		return 1
	}
	return n
}

// Chars splits text into logical characters, each base character keeps the
// combining marks following it. Leading marks go with the first base
// character.
func Chars(s string) []string {
	var (
		res   []string
		start int
		base  bool
	)
	for i, r := range s {
		if IsCombining(r) {
			continue
		}
		if base {
			res = append(res, s[start:i])
			start = i
		}
		base = true
	}
	if start < len(s) {
		res = append(res, s[start:])
	}
	return res
}

// logicalOffset returns byte offset right after logical character k, k=-1
// meaning the beginning of the string.
func logicalOffset(s string, k int) int {
	if k < 0 {
		return 0
	}
	count := -1
	for i, r := range s {
		if !IsCombining(r) {
			count++
			if count == k+1 {
				return i
			}
		}
	}
	return len(s)
}
