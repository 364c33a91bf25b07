package builder

import (
	"strconv"
)

// operator holds dictionary defaults for one operator form. Spaces are in
// 18ths of em.
type operator struct {
	lspace, rspace int
	stretchy       bool
	fence          bool
	symmetric      bool
	separator      bool
	largeop        bool
	movablelimits  bool
	accent         bool
}

type operatorKey struct {
	text string
	form string
}

var operators = buildOperators()

func buildOperators() map[operatorKey]operator {
	m := make(map[operatorKey]operator)
	add := func(form string, op operator, texts ...string) {
		for _, t := range texts {
			m[operatorKey{t, form}] = op
		}
	}
	fence := operator{stretchy: true, fence: true, symmetric: true}
	add("prefix", fence, "(", "[", "{", "|", "‖", "⟨", "⌈", "⌊")
	add("postfix", fence, ")", "]", "}", "|", "‖", "⟩", "⌉", "⌋")

	add("infix", operator{lspace: 4, rspace: 4}, "+", "-", "−", "±", "∓", "∪", "∩", "∧", "∨")
	add("prefix", operator{rspace: 1}, "+", "-", "−", "±", "∓", "¬")
	add("infix", operator{lspace: 4, rspace: 4}, "×", "·", "⋅", "÷", "∘", "⊗", "⊕")
	add("infix", operator{lspace: 1, rspace: 1}, "/")
	add("infix", operator{lspace: 5, rspace: 5},
		"=", "<", ">", "≤", "≥", "≠", "≡", "≈", "∼", "≃", "∝", "→", "←", "↔", "⇒", "⇐", "⇔",
		"∈", "∉", "⊂", "⊃", "⊆", "⊇", ":=", "↦")
	add("infix", operator{rspace: 3, separator: true}, ",", ";")
	add("infix", operator{}, "\u2061", "\u2062", "\u2063", "\u2064")
	add("postfix", operator{}, "!", "′", "″", "‴", "'")
	add("prefix", operator{rspace: 3, largeop: true, movablelimits: true, symmetric: true},
		"∑", "∏", "∐", "⋃", "⋂", "⨁", "⨂", "lim", "max", "min", "sup", "inf")
	add("prefix", operator{rspace: 3, largeop: true, symmetric: true}, "∫", "∬", "∭", "∮")
	add("prefix", operator{rspace: 1}, "∂", "∇", "d")
	add("postfix", operator{accent: true}, "¯", "‾", "^", "ˆ", "~", "˜", "˙", "¨", "ˇ", "→", "\u20d7")
	add("postfix", operator{accent: true, stretchy: true}, "⏞", "⏟", "︷", "︸", "⎴", "⎵")
	return m
}

// lookupOperator finds dictionary entry trying the requested form first
// and falling back to infix, postfix and prefix.
func lookupOperator(text, form string) operator {
	for _, f := range []string{form, "infix", "postfix", "prefix"} {
		if op, ok := operators[operatorKey{text, f}]; ok {
			return op
		}
	}
	return operator{lspace: 5, rspace: 5}
}

// defaults returns raw attribute text for every dictionary property.
func (op operator) defaults() map[string]string {
	frac := func(n int) string {
		if n == 0 {
			return "0em"
		}
		return strconv.FormatFloat(float64(n)/18, 'f', -1, 64) + "em"
	}
	b := strconv.FormatBool
	return map[string]string{
		"lspace":        frac(op.lspace),
		"rspace":        frac(op.rspace),
		"stretchy":      b(op.stretchy),
		"fence":         b(op.fence),
		"symmetric":     b(op.symmetric),
		"separator":     b(op.separator),
		"largeop":       b(op.largeop),
		"movablelimits": b(op.movablelimits),
		"accent":        b(op.accent),
	}
}
