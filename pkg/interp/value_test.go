package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected bool
	}{
		{"nil is falsey", NewNil(), false},
		{"false is falsey", NewBool(false), false},
		{"true is truthy", NewBool(true), true},
		{"zero is truthy", NewNumber(0), true},
		{"number is truthy", NewNumber(3.5), true},
		{"empty string is truthy", NewString(""), true},
		{"string is truthy", NewString("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truthy(tt.value))
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"nil equals nil", NewNil(), NewNil(), true},
		{"nil not equal to false", NewNil(), NewBool(false), false},
		{"equal numbers", NewNumber(2), NewNumber(2), true},
		{"unequal numbers", NewNumber(2), NewNumber(3), false},
		{"equal strings", NewString("a"), NewString("a"), true},
		{"unequal strings", NewString("a"), NewString("b"), false},
		{"equal bools", NewBool(true), NewBool(true), true},
		{"no number-string coercion", NewNumber(1), NewString("1"), false},
		{"no bool-number coercion", NewBool(true), NewNumber(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
			assert.Equal(t, tt.expected, Equal(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"nil", NewNil(), "nil"},
		{"true", NewBool(true), "true"},
		{"false", NewBool(false), "false"},
		{"integral number drops the point", NewNumber(10), "10"},
		{"fractional number keeps digits", NewNumber(10.5), "10.5"},
		{"zero", NewNumber(0), "0"},
		{"negative", NewNumber(-2.25), "-2.25"},
		{"string is raw", NewString("hi"), "hi"},
		{"empty string", NewString(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stringify(tt.value))
		})
	}
}
