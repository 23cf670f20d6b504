package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golox-lang/golox/pkg/token"
)

func ident(name string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: name, Line: 1}
}

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", NewNumber(1))

	value, err := env.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(1), value)
}

func TestGetUndefined(t *testing.T) {
	env := NewEnvironment(nil)

	_, err := env.Get(ident("missing"))
	require.Error(t, err)

	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Equal(t, "Undefined variable 'missing'.", rtErr.Message)
	assert.Equal(t, "missing", rtErr.Token.Lexeme)
}

func TestRedefineInSameScope(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", NewNumber(1))
	env.Define("x", NewString("now a string"))

	value, err := env.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, NewString("now a string"), value)
}

func TestGetWalksOutward(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("x", NewNumber(1))
	inner := globals.Child().Child()

	value, err := inner.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(1), value)
}

func TestShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", NewNumber(1))

	inner := outer.Child()
	inner.Define("x", NewNumber(2))

	got, err := inner.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(2), got, "inner scope sees the shadow")

	got, err = outer.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(1), got, "outer binding is untouched")
}

func TestAssignWalksOutward(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", NewNumber(1))
	inner := outer.Child()

	require.NoError(t, inner.Assign(ident("x"), NewNumber(9)))

	got, err := outer.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(9), got, "assignment reaches the defining scope")
}

func TestAssignPrefersNearestBinding(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", NewNumber(1))
	inner := outer.Child()
	inner.Define("x", NewNumber(2))

	require.NoError(t, inner.Assign(ident("x"), NewNumber(3)))

	got, _ := inner.Get(ident("x"))
	assert.Equal(t, NewNumber(3), got)
	got, _ = outer.Get(ident("x"))
	assert.Equal(t, NewNumber(1), got, "outer binding must not change")
}

func TestAssignUndefined(t *testing.T) {
	env := NewEnvironment(nil)

	err := env.Assign(ident("ghost"), NewNumber(1))
	require.Error(t, err)

	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
	assert.Equal(t, "Undefined variable 'ghost'.", rtErr.Message)
}
