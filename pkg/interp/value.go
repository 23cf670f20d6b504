// Package interp implements the tree-walking Lox evaluator.
package interp

import "strconv"

// Value is the interface for all Lox runtime values.
// The sealed marker restricts implementations to this package, keeping the
// value union closed: Number, String, Bool, and Nil.
type Value interface {
	loxValue() // sealed marker
}

// NilValue is the absence-of-value marker.
type NilValue struct{}

func (NilValue) loxValue() {}

// BoolValue is a boolean.
type BoolValue struct {
	Value bool
}

func (BoolValue) loxValue() {}

// NumberValue is a double-precision number.
type NumberValue struct {
	Value float64
}

func (NumberValue) loxValue() {}

// StringValue is a string.
type StringValue struct {
	Value string
}

func (StringValue) loxValue() {}

// NewNil creates the nil value.
func NewNil() Value { return NilValue{} }

// NewBool creates a boolean value.
func NewBool(b bool) Value { return BoolValue{Value: b} }

// NewNumber creates a numeric value.
func NewNumber(n float64) Value { return NumberValue{Value: n} }

// NewString creates a string value.
func NewString(s string) Value { return StringValue{Value: s} }

// Truthy returns the boolean interpretation of a Lox value.
// nil and false are falsey; everything else, including 0 and "", is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Value
	default:
		return true
	}
}

// Equal compares two values. nil equals only nil; otherwise equality is per
// value kind with no numeric/string coercion.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Value == bv.Value
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Value == bv.Value
	}
	return false
}

// Stringify renders a value in its display form: nil prints as "nil", and
// integral numbers print without a decimal point (10, not 10.0).
func Stringify(v Value) string {
	switch val := v.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Value)
	case NumberValue:
		return strconv.FormatFloat(val.Value, 'f', -1, 64)
	case StringValue:
		return val.Value
	default:
		return "nil"
	}
}

// typeName returns the value kind for error messages.
func typeName(v Value) string {
	switch v.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return "boolean"
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	default:
		return "unknown"
	}
}
