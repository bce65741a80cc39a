package eval_test

import (
	"errors"
	"testing"

	"lox/eval"
	"lox/lexer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) lexer.Token {
	return lexer.Token{Type: lexer.IDENTIFIER, Lexeme: name, Line: 1, Column: 1}
}

func TestEnvironmentGet(t *testing.T) {
	globals := eval.NewEnvironment(nil)
	globals.Define("a", eval.Number(1))
	inner := eval.NewEnvironment(eval.NewEnvironment(globals))
	inner.Define("b", eval.String("b"))

	v, err := inner.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, eval.Number(1), v)

	v, err = inner.Get(ident("b"))
	require.NoError(t, err)
	assert.Equal(t, eval.String("b"), v)

	_, err = globals.Get(ident("b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, eval.ErrUndefinedVariable))
	assert.Equal(t, "Undefined variable 'b'.", err.(*eval.RuntimeError).Message)
}

func TestEnvironmentDefineOverwrites(t *testing.T) {
	env := eval.NewEnvironment(nil)
	env.Define("a", eval.Number(1))
	env.Define("a", eval.Number(2))
	v, err := env.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, eval.Number(2), v)
}

func TestEnvironmentAssign(t *testing.T) {
	globals := eval.NewEnvironment(nil)
	globals.Define("a", eval.Number(1))
	inner := eval.NewEnvironment(globals)

	require.NoError(t, inner.Assign(ident("a"), eval.Number(5)))
	v, _ := globals.Get(ident("a"))
	assert.Equal(t, eval.Number(5), v)

	// assignment never creates a binding.
	err := inner.Assign(ident("c"), eval.NIL)
	assert.ErrorIs(t, err, eval.ErrUndefinedVariable)
	_, err = inner.Get(ident("c"))
	assert.Error(t, err)
}

func TestEnvironmentAt(t *testing.T) {
	globals := eval.NewEnvironment(nil)
	globals.Define("a", eval.Number(1))
	middle := eval.NewEnvironment(globals)
	middle.Define("a", eval.Number(2))
	inner := eval.NewEnvironment(middle)

	assert.Equal(t, eval.Number(2), inner.GetAt(1, "a"))
	assert.Equal(t, eval.Number(1), inner.GetAt(2, "a"))

	inner.AssignAt(2, "a", eval.Number(10))
	assert.Equal(t, eval.Number(10), globals.GetAt(0, "a"))
	assert.Equal(t, eval.Number(2), middle.GetAt(0, "a"))
}

func TestEnvironmentAtInvariants(t *testing.T) {
	env := eval.NewEnvironment(eval.NewEnvironment(nil))
	assert.Panics(t, func() { env.GetAt(0, "missing") })
	assert.Panics(t, func() { env.GetAt(5, "a") })
	assert.Panics(t, func() { env.AssignAt(1, "missing", eval.NIL) })
}
