package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"

	"mview/view"
)

var errNothingUnderPoint = errors.New("nothing under the point")

// step is a single editing script command.
type step struct {
	line int
	op   string
	arg  string
}

func (s step) String() string {
	if s.arg == "" {
		return fmt.Sprintf("%d: %s", s.line, s.op)
	}
	return fmt.Sprintf("%d: %s %s", s.line, s.op, s.arg)
}

// arity of every known command, -1 means rest of the line.
var scriptOps = map[string]int{
	"place":      2,
	"insert":     -1,
	"element":    1,
	"backspace":  0,
	"left":       0,
	"right":      0,
	"up":         0,
	"down":       0,
	"open-left":  0,
	"open-right": 0,
	"select":     2,
	"copy":       0,
	"paste":      0,
	"cut":        0,
}

func parseScript(r io.Reader) ([]step, error) {
	var (
		steps []step
		n     int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		op, arg, _ := strings.Cut(line, " ")
		arity, ok := scriptOps[op]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown command '%s'", n, op)
		}
		arg = strings.TrimSpace(arg)
		switch {
		case arity < 0:
			if arg == "" {
				return nil, fmt.Errorf("line %d: '%s' needs an argument", n, op)
			}
		case len(strings.Fields(arg)) != arity:
			return nil, fmt.Errorf("line %d: '%s' expects %d argument(s)", n, op, arity)
		}
		steps = append(steps, step{line: n, op: op, arg: arg})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read script: %w", err)
	}
	return steps, nil
}

func parsePoint(arg string) (x, y fixed.Int26_6, err error) {
	f := strings.Fields(arg)
	fx, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x coordinate: %w", err)
	}
	fy, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y coordinate: %w", err)
	}
	return fixed.Int26_6(fx * 64), fixed.Int26_6(fy * 64), nil
}

func (s step) apply(v *view.View) error {
	switch s.op {
	case "place", "select":
		x, y, err := parsePoint(s.arg)
		if err != nil {
			return err
		}
		if s.op == "place" {
			if !v.PlaceCursorAt(x, y) {
				return errNothingUnderPoint
			}
			return nil
		}
		if _, ok := v.SelectElementAt(x, y); !ok {
			return errNothingUnderPoint
		}
		return nil
	case "insert":
		return v.InsertGlyph(s.arg)
	case "element":
		return v.InsertElementAfterCursor(s.arg)
	case "backspace":
		return v.DeleteGlyph()
	case "left":
		return v.MoveCursorLeft()
	case "right":
		return v.MoveCursorRight()
	case "up":
		return v.StepCursorUp()
	case "down":
		return v.StepCursorDown()
	case "open-left":
		return v.StepCursorLeft()
	case "open-right":
		return v.StepCursorRight()
	case "copy":
		return v.CopySelected()
	case "paste":
		return v.PasteAfterCursor()
	case "cut":
		return v.DeleteSelected()
	}
	return fmt.Errorf("unknown command '%s'", s.op)
}

// runScript applies steps in order stopping at the first failure. Pending
// structural edits are realized after every step so that following
// hit tests see the updated formula.
func runScript(v *view.View, steps []step) error {
	for _, s := range steps {
		if err := s.apply(v); err != nil {
			return fmt.Errorf("line %d (%s): %w", s.line, s.op, err)
		}
		v.RootArea()
	}
	return nil
}
