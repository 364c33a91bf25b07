package builder

import (
	"mview/attr"
)

// Attribute catalog. Signatures are shared by registry entries and never
// modified.

func sig(name string, fromContext bool, def string, p attr.Parser) *attr.Signature {
	return &attr.Signature{Name: name, FromElement: true, FromContext: fromContext, Default: def, Parse: p}
}

var (
	colorAttrs = []*attr.Signature{
		sig("mathcolor", false, "", attr.ColorValue),
		sig("mathbackground", false, "", attr.ColorValue),
	}

	mathVariant = sig("mathvariant", true, "", attr.Keywords(
		"normal", "bold", "italic", "bold-italic", "double-struck", "bold-fraktur", "script",
		"bold-script", "fraktur", "sans-serif", "bold-sans-serif", "sans-serif-italic",
		"sans-serif-bold-italic", "monospace"))
	mathSize = sig("mathsize", false, "", attr.LengthOr("small", "normal", "big"))

	tokenAttrs = concat(colorAttrs, mathVariant, mathSize)

	operatorAttrs = concat(tokenAttrs,
		sig("form", false, "", attr.Keywords("prefix", "infix", "postfix")),
		sig("fence", false, "", attr.Bool),
		sig("separator", false, "", attr.Bool),
		sig("lspace", false, "", attr.LengthValue),
		sig("rspace", false, "", attr.LengthValue),
		sig("stretchy", false, "", attr.Bool),
		sig("symmetric", false, "", attr.Bool),
		sig("maxsize", false, "", attr.LengthOr("infinity")),
		sig("minsize", false, "", attr.LengthValue),
		sig("largeop", false, "", attr.Bool),
		sig("movablelimits", false, "", attr.Bool),
		sig("accent", false, "", attr.Bool),
	)

	stringAttrs = concat(tokenAttrs,
		sig("lquote", false, `"`, attr.String),
		sig("rquote", false, `"`, attr.String),
	)

	spaceAttrs = concat(colorAttrs,
		sig("width", false, "0em", attr.LengthValue),
		sig("height", false, "0ex", attr.LengthValue),
		sig("depth", false, "0ex", attr.LengthValue),
	)

	styleAttrs = concat(colorAttrs,
		sig("displaystyle", false, "", attr.Bool),
		sig("scriptlevel", false, "", attr.ScriptLevel),
		sig("scriptsizemultiplier", false, "", attr.LengthValue),
		sig("scriptminsize", false, "", attr.LengthValue),
		mathSize,
	)

	mathAttrs = concat(colorAttrs,
		sig("display", false, "inline", attr.Keywords("inline", "block")),
		sig("displaystyle", false, "", attr.Bool),
	)

	paddedAttrs = concat(colorAttrs,
		sig("width", false, "", attr.LengthValue),
		sig("height", false, "", attr.LengthValue),
		sig("depth", false, "", attr.LengthValue),
		sig("lspace", false, "", attr.LengthValue),
	)

	encloseAttrs = concat(colorAttrs,
		sig("notation", false, "longdiv", attr.String),
	)

	actionAttrs = concat(colorAttrs,
		sig("actiontype", false, "", attr.String),
		sig("selection", false, "1", attr.Int),
	)

	fractionAttrs = concat(colorAttrs,
		sig("linethickness", false, "", attr.LengthOr("thin", "medium", "thick")),
		sig("numalign", false, "center", attr.Keywords("left", "center", "right")),
		sig("denomalign", false, "center", attr.Keywords("left", "center", "right")),
		sig("bevelled", false, "false", attr.Bool),
	)

	scriptAttrs = concat(colorAttrs,
		sig("subscriptshift", false, "", attr.LengthValue),
		sig("superscriptshift", false, "", attr.LengthValue),
	)

	underOverAttrs = concat(colorAttrs,
		sig("accent", false, "", attr.Bool),
		sig("accentunder", false, "", attr.Bool),
		sig("align", false, "center", attr.Keywords("left", "center", "right")),
	)

	rowAlign    = attr.Keywords("top", "bottom", "center", "baseline", "axis")
	columnAlign = attr.Keywords("left", "center", "right")

	tableAttrs = concat(colorAttrs,
		sig("align", false, "axis", attr.Keywords("top", "bottom", "center", "baseline", "axis")),
		sig("rowalign", false, "baseline", attr.Sequence(rowAlign)),
		sig("columnalign", false, "center", attr.Sequence(columnAlign)),
		sig("rowspacing", false, "1.0ex", attr.Sequence(attr.LengthValue)),
		sig("columnspacing", false, "0.8em", attr.Sequence(attr.LengthValue)),
		sig("frame", false, "none", attr.Keywords("none", "solid", "dashed")),
		sig("framespacing", false, "0.4em 0.5ex", attr.Sequence(attr.LengthValue)),
		sig("equalrows", false, "false", attr.Bool),
		sig("equalcolumns", false, "false", attr.Bool),
	)

	tableRowAttrs = concat(colorAttrs,
		sig("rowalign", false, "", rowAlign),
		sig("columnalign", false, "", attr.Sequence(columnAlign)),
	)

	cellAttrs = concat(colorAttrs,
		sig("rowalign", false, "", rowAlign),
		sig("columnalign", false, "", columnAlign),
		sig("columnspan", false, "1", attr.Int),
		sig("rowspan", false, "1", attr.Int),
	)

	fencedAttrs = concat(colorAttrs,
		sig("open", false, "(", attr.String),
		sig("close", false, ")", attr.String),
		sig("separators", false, ",", attr.String),
	)
)

// inheritable lists attributes style providers pass down to descendants.
var inheritable = []string{"mathvariant"}

func concat(base []*attr.Signature, more ...*attr.Signature) []*attr.Signature {
	res := make([]*attr.Signature, 0, len(base)+len(more))
	res = append(res, base...)
	return append(res, more...)
}
