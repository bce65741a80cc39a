package eval

import (
	"errors"
	"fmt"

	"lox/lexer"
)

// Kinds of runtime errors. Every RuntimeError wraps exactly one of
// these, so callers can use errors.Is.
var (
	ErrType              = errors.New("type error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedProperty = errors.New("undefined property")
	ErrArity             = errors.New("wrong number of arguments")
)

// RuntimeError aborts the remainder of an Interpret call. Token is
// the token closest to where the error happened.
type RuntimeError struct {
	Token   lexer.Token
	Kind    error
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func (e *RuntimeError) Unwrap() error { return e.Kind }

func runtimeError(tok lexer.Token, kind error, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func undefinedVariable(name lexer.Token) *RuntimeError {
	return runtimeError(name, ErrUndefinedVariable, "Undefined variable '%s'.", name.Lexeme)
}
