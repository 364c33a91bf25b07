package view

import (
	"fmt"

	"golang.org/x/image/math/fixed"

	"mview/builder"
	"mview/element"
	"mview/markup"
)

// cursor returns up to date element holding the caret.
func (v *View) cursor() (*element.Element, error) {
	if v.RootElement() == nil {
		return nil, ErrNoRoot
	}
	e := v.b.CursorElement()
	if e == nil {
		return nil, ErrNoCursor
	}
	return e, nil
}

// CursorElement returns token holding the caret or nil.
func (v *View) CursorElement() *element.Element {
	e, _ := v.cursor()
	return e
}

// InsertGlyph inserts text after the caret.
func (v *View) InsertGlyph(s string) error {
	e, err := v.cursor()
	if err != nil {
		return err
	}
	e.InsertGlyphAfterCursor(s)
	e.SetDirtyStructure()
	return nil
}

// DeleteGlyph removes character before the caret. At the start of a token
// deletion of the preceding element is requested instead.
func (v *View) DeleteGlyph() error {
	e, err := v.cursor()
	if err != nil {
		return err
	}
	if e.DeleteGlyphBeforeCursor() {
		e.SetDirtyStructure()
		return nil
	}
	return e.SetIntent(element.IntentDelete)
}

// InsertElementAfterCursor splits cursor token and inserts default subtree
// of tag at the caret.
func (v *View) InsertElementAfterCursor(tag string) error {
	if p, ok := v.reg.Lookup(tag); !ok || p.CreateDefault == nil {
		return fmt.Errorf("%s: %w", tag, builder.ErrNotInsertable)
	}
	e, err := v.cursor()
	if err != nil {
		return err
	}
	return e.RequestSplit(tag)
}

// MoveCursorRight moves caret one character right, crossing into the next
// token when the current one is exhausted.
func (v *View) MoveCursorRight() error {
	e, err := v.cursor()
	if err != nil {
		return err
	}
	if e.IncreaseCursorPosition() {
		return nil
	}
	return e.SetIntent(element.IntentMoveNext)
}

// MoveCursorLeft is mirror of MoveCursorRight.
func (v *View) MoveCursorLeft() error {
	e, err := v.cursor()
	if err != nil {
		return err
	}
	if e.DecreaseCursorPosition() {
		return nil
	}
	return e.SetIntent(element.IntentMovePrev)
}

func (v *View) request(i element.Intent) error {
	e, err := v.cursor()
	if err != nil {
		return err
	}
	return e.SetIntent(i)
}

// StepCursorLeft opens new empty token before the cursor token.
func (v *View) StepCursorLeft() error { return v.request(element.IntentInsertLeft) }

// StepCursorRight opens new empty token after the cursor token.
func (v *View) StepCursorRight() error { return v.request(element.IntentInsertRight) }

// StepCursorUp moves caret into the slot drawn above.
func (v *View) StepCursorUp() error { return v.request(element.IntentMoveUp) }

// StepCursorDown moves caret into the slot drawn below.
func (v *View) StepCursorDown() error { return v.request(element.IntentMoveDown) }

// PlaceCursorAt puts caret to the character under the point. Returns false
// when there is no token there.
func (v *View) PlaceCursorAt(x, y fixed.Int26_6) bool {
	e, index, ok := v.CharAt(x, y)
	if !ok {
		if e, _, ok = v.ElementAt(x, y); !ok {
			return false
		}
		index = 0
	}
	if !e.Kind().IsToken() {
		if !e.Marked(element.MarkWrapper) {
			return false
		}
		var tok *element.Element
		e.Walk(func(c *element.Element) bool {
			if c.Kind().IsToken() {
				tok = c
			}
			return tok == nil
		})
		if tok == nil {
			return false
		}
		e, index = tok, 0
	}
	if e.Node() == markup.NoNode {
		return false
	}
	v.b.MoveCursor(e, index)
	return true
}

// Select makes e the only selected element.
func (v *View) Select(e *element.Element) {
	v.Unselect()
	e.SetMark(element.MarkSelected)
}

// SelectElementAt selects element under the point.
func (v *View) SelectElementAt(x, y fixed.Int26_6) (*element.Element, bool) {
	e, _, ok := v.ElementAt(x, y)
	if !ok {
		return nil, false
	}
	v.Select(e)
	return e, true
}

func (v *View) IsSelected(e *element.Element) bool {
	return e != nil && e.Marked(element.MarkSelected)
}

// Selected returns selected element or nil.
func (v *View) Selected() *element.Element {
	root := v.RootElement()
	if root == nil {
		return nil
	}
	return root.Find(element.MarkSelected)
}

// Unselect clears selection.
func (v *View) Unselect() {
	root := v.RootElement()
	if root == nil {
		return
	}
	for _, e := range root.FindAll(element.MarkSelected) {
		e.ClearMark(element.MarkSelected)
	}
}

func (v *View) selectedNode() (*element.Element, error) {
	e := v.Selected()
	if e == nil {
		return nil, ErrNothingSelected
	}
	if e.Node() == markup.NoNode {
		return nil, fmt.Errorf("%s has no markup", e)
	}
	return e, nil
}

// CopySelected keeps copy of selected markup for PasteAfterCursor.
func (v *View) CopySelected() error {
	e, err := v.selectedNode()
	if err != nil {
		return err
	}
	v.b.Copy(e.Node())
	return nil
}

// DeleteSelected replaces selected element with empty slot holding the
// caret.
func (v *View) DeleteSelected() error {
	e, err := v.selectedNode()
	if err != nil {
		return err
	}
	e.ClearMark(element.MarkSelected)
	return v.b.ReplaceWithPlaceholder(e.Node())
}

// PasteAfterCursor inserts copied markup after the cursor token.
func (v *View) PasteAfterCursor() error {
	e, err := v.cursor()
	if err != nil {
		return err
	}
	if v.b.Clipboard() == markup.NoNode {
		return ErrEmptyClipboard
	}
	return e.SetIntent(element.IntentPaste)
}
