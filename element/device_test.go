package element

import (
	"golang.org/x/image/math/fixed"

	"mview/area"
)

// testDevice lays every character out as 10x(8+2) box.
type testDevice struct{}

func (testDevice) String(f Font, text string) []area.Area {
	var res []area.Area
	for _, c := range Chars(text) {
		res = append(res, area.NewGlyph(c, nil, area.NewBoundingBox(fixed.I(10), fixed.I(8), fixed.I(2))))
	}
	return res
}

func (testDevice) Stretch(f Font, text string, span fixed.Int26_6, vertical bool) area.Area {
	if vertical {
		return area.NewGlyph(text, nil, area.NewBoundingBox(fixed.I(10), span-fixed.I(2), fixed.I(2)))
	}
	return area.NewGlyph(text, nil, area.NewBoundingBox(span, fixed.I(8), fixed.I(2)))
}

func (testDevice) Metrics(f Font) Metrics {
	return Metrics{
		Em:      fixed.I(10),
		Ex:      fixed.I(5),
		Axis:    fixed.I(3),
		Rule:    fixed.I(1),
		Ascent:  fixed.I(8),
		Descent: fixed.I(2),
	}
}

func (testDevice) Cursor(f Font) area.Area {
	return area.NewCursor(fixed.I(8), fixed.I(2))
}

func (testDevice) Dummy(f Font) area.Area {
	return area.NewInk(area.NewBoundingBox(fixed.I(10), fixed.I(8), fixed.I(2)))
}
