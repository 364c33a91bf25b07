package builder

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"mview/attr"
	"mview/element"
	"mview/markup"
)

// collapse replaces whitespace sequences with single space.
func collapse(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	if space && sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// readRuns collects token content: one run per text node, mglyph or
// malignmark child. Whitespace is collapsed and trimmed at both ends of the
// content, text is normalized to NFC.
func (b *Builder) readRuns(n markup.NodeID, e *element.Element) []element.Run {
	var runs []element.Run
	for it := b.doc.Nodes(n); it.More(); it.Next() {
		c := it.Node()
		switch b.doc.Type(c) {
		case markup.TextNode:
			runs = append(runs, element.Run{Kind: element.RunText, Text: collapse(b.doc.Value(c)), Node: c})
		case markup.ElementNode:
			switch tag := b.doc.Tag(c); tag {
			case "mglyph":
				runs = append(runs, b.readGlyph(c))
			case "malignmark":
				edge, _ := b.doc.Attr(c, "edge")
				switch edge {
				case "left", "right":
				case "":
					edge = "left"
				default:
					b.log.Warn("Malformed attribute value, using default",
						zap.String("tag", tag), zap.String("attr", "edge"), zap.String("value", edge))
					edge = "left"
				}
				runs = append(runs, element.Run{Kind: element.RunAlignMark, Edge: edge, Node: c})
			default:
				b.log.Warn("Unexpected tag inside token, skipping", zap.String("tag", tag), zap.String("token", e.Name()))
			}
		}
	}
	// trim outer whitespace
	for i := range runs {
		if runs[i].Kind == element.RunText {
			runs[i].Text = strings.TrimLeft(runs[i].Text, " ")
			if runs[i].Text != "" {
				break
			}
		} else if runs[i].Length() > 0 {
			break
		}
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Kind == element.RunText {
			runs[i].Text = strings.TrimRight(runs[i].Text, " ")
			if runs[i].Text != "" {
				break
			}
		} else if runs[i].Length() > 0 {
			break
		}
	}
	res := runs[:0]
	for _, r := range runs {
		if r.Kind == element.RunText {
			if r.Text == "" {
				continue
			}
			r.Text = norm.NFC.String(r.Text)
		}
		res = append(res, r)
	}
	return res
}

// readGlyph interprets mglyph either as font glyph selected by index or as
// external image.
func (b *Builder) readGlyph(c markup.NodeID) element.Run {
	run := element.Run{Kind: element.RunGlyph, Text: "?", Node: c}
	if src, ok := b.doc.Attr(c, "src"); ok {
		alt, _ := b.doc.Attr(c, "alt")
		run = element.Run{Kind: element.RunImage, Text: alt, Node: c}
		if b.images == nil {
			b.log.Warn("No image loader, mglyph shown as placeholder", zap.String("src", src))
			return run
		}
		img, err := b.images(src)
		if err != nil {
			b.log.Warn("Unable to load mglyph image", zap.String("src", src), zap.Error(err))
			return run
		}
		run.Image = img
		for _, d := range []struct {
			name string
			dst  *float64
		}{{"width", &run.Width}, {"height", &run.Height}} {
			if raw, ok := b.doc.Attr(c, d.name); ok {
				l, err := attr.ParseLength(raw)
				if err != nil || (l.Unit != attr.UnitPx && l.Unit != attr.UnitPt && l.Unit != attr.UnitNone) {
					b.log.Warn("Malformed attribute value, using natural size",
						zap.String("tag", "mglyph"), zap.String("attr", d.name), zap.String("value", raw))
					continue
				}
				*d.dst = l.Value
			}
		}
		return run
	}
	raw, ok := b.doc.Attr(c, "index")
	if !ok {
		b.log.Warn("mglyph without index or src, using '?'")
		return run
	}
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || index <= 0 {
		b.log.Warn("Malformed attribute value, using '?'", zap.String("tag", "mglyph"), zap.String("attr", "index"), zap.String("value", raw))
		return run
	}
	run.Text = string(rune(index))
	return run
}

// tokenText returns collapsed text of token node.
func (b *Builder) tokenText(n markup.NodeID) string {
	return strings.TrimSpace(collapse(b.doc.Text(n)))
}

// writeBack replaces content children of token node with edited runs.
func (b *Builder) writeBack(n markup.NodeID, e *element.Element) {
	keep := make(map[markup.NodeID]bool)
	for _, r := range e.Runs() {
		if r.Node != markup.NoNode {
			keep[r.Node] = true
		}
	}
	for _, c := range b.doc.Children(n) {
		if b.doc.Type(c) == markup.CommentNode || keep[c] {
			continue
		}
		b.doc.Free(c)
	}
	for _, r := range e.Runs() {
		c := r.Node
		switch {
		case r.Kind == element.RunText && c == markup.NoNode:
			if r.Text == "" {
				continue
			}
			c = b.doc.CreateText(r.Text)
		case r.Kind == element.RunText:
			if r.Text == "" {
				b.doc.Free(c)
				continue
			}
			b.doc.SetValue(c, r.Text)
			b.doc.Unlink(c)
		case c == markup.NoNode:
			continue
		default:
			b.doc.Unlink(c)
		}
		b.doc.AppendChild(n, c)
	}
	e.ContentWritten()
	b.log.Debug("Token content written back", zap.Stringer("element", e), zap.String("text", e.TextContent()))
}

// constructToken writes pending edits back and reads content from markup.
func constructToken(b *Builder, n markup.NodeID, e *element.Element) {
	if e.Marked(element.MarkContentSet) {
		b.writeBack(n, e)
	}
	e.SetRuns(b.readRuns(n, e))
}
