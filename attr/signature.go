package attr

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser converts raw attribute text into typed value.
type Parser func(raw string) (any, error)

// Signature declares one attribute: where its value may come from and what
// to use when it is absent or malformed.
type Signature struct {
	Name string
	// FromElement allows reading the attribute from the element itself.
	FromElement bool
	// FromContext allows inheriting the attribute from style providers.
	FromContext bool
	// Default is raw default text, empty when attribute has no default.
	Default string
	Parse   Parser
}

// ParseValue parses raw text according to the signature.
func (s *Signature) ParseValue(raw string) (Value, error) {
	v, err := s.Parse(raw)
	if err != nil {
		return Value{}, fmt.Errorf("attribute %s: %w", s.Name, err)
	}
	return NewValue(v), nil
}

// DefaultValue returns parsed default, unset Value when there is none.
// Malformed defaults are programming errors.
func (s *Signature) DefaultValue() Value {
	if s.Default == "" {
		return Value{}
	}
	v, err := s.ParseValue(s.Default)
	if err != nil {
		panic(err)
	}
	return v
}

// Keywords accepts one of the listed tokens.
func Keywords(allowed ...string) Parser {
	return func(raw string) (any, error) {
		raw = strings.TrimSpace(raw)
		for _, a := range allowed {
			if raw == a {
				return Token(raw), nil
			}
		}
		return nil, fmt.Errorf("unexpected value %q, want one of %s", raw, strings.Join(allowed, ", "))
	}
}

func Bool(raw string) (any, error) {
	switch strings.TrimSpace(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, fmt.Errorf("unexpected boolean %q", raw)
}

func Int(raw string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return v, nil
}

func String(raw string) (any, error) { return raw, nil }

func LengthValue(raw string) (any, error) {
	return ParseLength(raw)
}

func ColorValue(raw string) (any, error) {
	return ParseColor(raw)
}

// LengthOr accepts length or one of the keywords.
func LengthOr(keywords ...string) Parser {
	kw := Keywords(keywords...)
	return func(raw string) (any, error) {
		if v, err := kw(raw); err == nil {
			return v, nil
		}
		return ParseLength(raw)
	}
}

// ScriptLevel accepts absolute value or +n/-n increment. Increments are
// returned as Increment.
func ScriptLevel(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed script level %q", raw)
	}
	if strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "-") {
		return Increment(v), nil
	}
	return v, nil
}

// Increment is relative integer value.
type Increment int

// Sequence accepts whitespace separated list of values, each parsed by p.
func Sequence(p Parser) Parser {
	return func(raw string) (any, error) {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty list")
		}
		res := make([]Value, 0, len(fields))
		for _, f := range fields {
			v, err := p(f)
			if err != nil {
				return nil, err
			}
			res = append(res, NewValue(v))
		}
		return res, nil
	}
}

// At returns i-th element of sequence value, repeating the last one past
// the end. Non sequence values are returned as is.
func At(v Value, i int) Value {
	seq, ok := v.v.([]Value)
	if !ok {
		return v
	}
	if len(seq) == 0 {
		return Value{}
	}
	return seq[min(i, len(seq)-1)]
}
