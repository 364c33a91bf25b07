// Package attr resolves markup attributes into typed values.
package attr

import (
	"errors"
	"fmt"
)

// ErrWrongType is returned when a value is accessed as a type it does not
// hold.
var ErrWrongType = errors.New("attribute value has wrong type")

// Value holds one parsed attribute value of any supported type.
type Value struct {
	v any
}

func NewValue(v any) Value { return Value{v: v} }

// IsSet reports whether value holds anything.
func (v Value) IsSet() bool { return v.v != nil }

func (v Value) String() string {
	if v.v == nil {
		return "<unset>"
	}
	return fmt.Sprint(v.v)
}

// As returns value as T or ErrWrongType.
func As[T any](v Value) (T, error) {
	t, ok := v.v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: holds %T, requested %T", ErrWrongType, v.v, zero)
	}
	return t, nil
}

// MustAs is As for callers which consider mismatch a programming error.
func MustAs[T any](v Value) T {
	t, err := As[T](v)
	if err != nil {
		panic(err)
	}
	return t
}

// Token is a keyword value, like "bold" or "center".
type Token string
