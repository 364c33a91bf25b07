package element

// Kind selects layout and building behavior of an element.
// ENUM(dummy, math, identifier, number, operator, text, string, space, row, style, error, padded, phantom, enclose, action, fraction, sqrt, root, sub, sup, subsup, under, over, underover, multiscripts, table, table-row, cell)
type Kind int

// IsToken reports whether elements of the kind hold text runs.
func (k Kind) IsToken() bool {
	switch k {
	case KindIdentifier, KindNumber, KindOperator, KindText, KindString:
		return true
	}
	return false
}

// IsLinear reports whether elements of the kind accept any number of
// children laid out in a row.
func (k Kind) IsLinear() bool {
	switch k {
	case KindMath, KindRow, KindStyle, KindError, KindPadded, KindPhantom, KindEnclose, KindSqrt, KindCell:
		return true
	}
	return false
}

// Arity returns number of required children for fixed slot kinds, -1 for
// the others.
func (k Kind) Arity() int {
	switch k {
	case KindFraction, KindRoot, KindSub, KindSup, KindUnder, KindOver:
		return 2
	case KindSubsup, KindUnderover:
		return 3
	}
	return -1
}
