package element

import (
	"slices"
	"strings"

	"mview/markup"
)

// Runs returns token content.
func (e *Element) Runs() []Run { return e.runs }

// SetRuns replaces token content, invalidating layout on change. Cursor is
// clamped to the new content.
func (e *Element) SetRuns(runs []Run) {
	if slices.EqualFunc(e.runs, runs, Run.equal) {
		return
	}
	e.runs = runs
	e.clampCursor()
	e.SetDirtyLayout()
}

// ContentLength is number of logical characters in token content.
func (e *Element) ContentLength() int {
	n := 0
	for _, r := range e.runs {
		n += r.Length()
	}
	return n
}

// TextContent concatenates text of all runs.
func (e *Element) TextContent() string {
	var s string
	for _, r := range e.runs {
		if r.Kind == RunText || r.Kind == RunGlyph {
			s += r.Text
		}
	}
	return s
}

// RemovedNodes returns markup nodes of runs deleted by editing, to be freed
// on write back.
func (e *Element) RemovedNodes() []markup.NodeID { return e.removed }

// ContentWritten is called by builder after edited content was written to
// markup.
func (e *Element) ContentWritten() {
	e.removed = nil
	e.marks &^= MarkContentSet
}

// Cursor returns caret position. offset -1 means before the first character
// of the run.
func (e *Element) Cursor() (child, offset int) {
	return e.cursorChild, e.cursorOffset
}

// SetCursor places caret at the given position and marks the element as
// cursor holder.
func (e *Element) SetCursor(child, offset int) {
	e.cursorChild, e.cursorOffset = child, offset
	e.clampCursor()
	e.marks |= MarkCursor
	e.SetDirtyLayout()
}

// ResetCursor removes the caret from the element.
func (e *Element) ResetCursor() {
	e.cursorChild, e.cursorOffset = 0, -1
	e.ClearMark(MarkCursor)
	e.SetDirtyLayout()
}

// SetFirstCursorPosition moves caret before all content.
func (e *Element) SetFirstCursorPosition() {
	e.SetCursor(0, -1)
}

// SetLastCursorPosition moves caret after all content.
func (e *Element) SetLastCursorPosition() {
	for i := len(e.runs) - 1; i >= 0; i-- {
		if l := e.runs[i].Length(); l > 0 {
			e.SetCursor(i, l-1)
			return
		}
	}
	e.SetCursor(0, -1)
}

func (e *Element) clampCursor() {
	if e.cursorChild >= len(e.runs) || e.cursorChild < 0 {
		e.cursorChild, e.cursorOffset = 0, -1
		if len(e.runs) > 0 && e.marks&MarkCursor != 0 {
			// keep caret at the end when content shrank
			for i := len(e.runs) - 1; i >= 0; i-- {
				if l := e.runs[i].Length(); l > 0 {
					e.cursorChild, e.cursorOffset = i, l-1
					break
				}
			}
		}
		return
	}
	if l := e.runs[e.cursorChild].Length(); e.cursorOffset >= l {
		e.cursorOffset = l - 1
	}
	if e.cursorOffset < 0 {
		e.cursorChild, e.cursorOffset = 0, -1
	}
}

// IncreaseCursorPosition moves caret one character right. Returns false at
// the end of content.
func (e *Element) IncreaseCursorPosition() bool {
	i, off := e.cursorChild, e.cursorOffset
	if off >= 0 && off < e.runs[i].Length()-1 {
		e.SetCursor(i, off+1)
		return true
	}
	start := i + 1
	if off < 0 {
		start = i
	}
	for j := start; j < len(e.runs); j++ {
		if e.runs[j].Length() > 0 {
			e.SetCursor(j, 0)
			return true
		}
	}
	return false
}

// DecreaseCursorPosition moves caret one character left. Returns false at
// the beginning of content.
func (e *Element) DecreaseCursorPosition() bool {
	i, off := e.cursorChild, e.cursorOffset
	switch {
	case off < 0:
		return false
	case off > 0:
		e.SetCursor(i, off-1)
		return true
	}
	for j := i - 1; j >= 0; j-- {
		if l := e.runs[j].Length(); l > 0 {
			e.SetCursor(j, l-1)
			return true
		}
	}
	e.SetCursor(0, -1)
	return true
}

// CursorIndex is number of logical characters before the caret.
func (e *Element) CursorIndex() int {
	if e.cursorOffset < 0 {
		return 0
	}
	n := 0
	for _, r := range e.runs[:e.cursorChild] {
		n += r.Length()
	}
	return n + e.cursorOffset + 1
}

// SetCursorIndex places caret after index logical characters.
func (e *Element) SetCursorIndex(index int) {
	if index <= 0 {
		e.SetCursor(0, -1)
		return
	}
	n := 0
	for i, r := range e.runs {
		l := r.Length()
		if index <= n+l {
			e.SetCursor(i, index-n-1)
			return
		}
		n += l
	}
	e.SetLastCursorPosition()
}

// RawContentBeforeCursor returns text of the cursor run up to the caret.
func (e *Element) RawContentBeforeCursor() string {
	if len(e.runs) == 0 || e.cursorOffset < 0 {
		return ""
	}
	t := e.runs[e.cursorChild].Text
	return t[:logicalOffset(t, e.cursorOffset)]
}

// RawContentAfterCursor returns text of the cursor run after the caret.
func (e *Element) RawContentAfterCursor() string {
	if len(e.runs) == 0 {
		return ""
	}
	t := e.runs[e.cursorChild].Text
	return t[logicalOffset(t, e.cursorOffset):]
}

// InsertGlyphAfterCursor inserts text at the caret and moves caret after it.
func (e *Element) InsertGlyphAfterCursor(s string) {
	if s == "" {
		return
	}
	i, off := e.cursorChild, e.cursorOffset
	switch {
	case len(e.runs) == 0:
		e.runs = []Run{{Kind: RunText, Node: markup.NoNode}}
		i, off = 0, -1
	case e.runs[i].Kind != RunText:
		if off < 0 {
			e.runs = slices.Insert(e.runs, i, Run{Kind: RunText, Node: markup.NoNode})
		} else {
			i++
			e.runs = slices.Insert(e.runs, i, Run{Kind: RunText, Node: markup.NoNode})
			off = -1
		}
	}
	t := e.runs[i].Text
	at := logicalOffset(t, off)
	e.runs[i].Text = t[:at] + s + t[at:]
	e.marks |= MarkContentSet
	// inserted marks may merge with the character before them
	e.SetCursor(i, LogicalLength(e.runs[i].Text[:at+len(s)])-1)
}

// DeleteGlyphBeforeCursor removes the character before the caret. Returns
// false when there is nothing before the caret.
func (e *Element) DeleteGlyphBeforeCursor() bool {
	i, off := e.cursorChild, e.cursorOffset
	if off < 0 || len(e.runs) == 0 {
		return false
	}
	r := &e.runs[i]
	switch r.Kind {
	case RunText:
		chars := Chars(r.Text)
		chars = slices.Delete(chars, off, off+1)
		r.Text = strings.Join(chars, "")
		if r.Text == "" && len(e.runs) > 1 {
			if r.Node != markup.NoNode {
				e.removed = append(e.removed, r.Node)
			}
			e.runs = slices.Delete(e.runs, i, i+1)
		}
	default:
		if r.Node != markup.NoNode {
			e.removed = append(e.removed, r.Node)
		}
		e.runs = slices.Delete(e.runs, i, i+1)
	}
	e.marks |= MarkContentSet
	if off > 0 {
		e.SetCursor(i, off-1)
		return true
	}
	for j := i - 1; j >= 0; j-- {
		if l := e.runs[j].Length(); l > 0 {
			e.SetCursor(j, l-1)
			return true
		}
	}
	e.SetCursor(0, -1)
	return true
}
