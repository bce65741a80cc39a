package eval

import (
	"fmt"

	"lox/lexer"
)

// This file implements the operators. Arithmetic follows IEEE-754,
// so 1/0 is +Inf and NaN is not equal to itself.

func binary(op lexer.Token, left Value, right Value) (Value, error) {
	switch op.Type {
	case lexer.EQUAL_EQUAL:
		return Boolean(isEqual(left, right)), nil
	case lexer.BANG_EQUAL:
		return Boolean(!isEqual(left, right)), nil
	case lexer.PLUS:
		switch l := left.(type) {
		case Number:
			if r, ok := right.(Number); ok {
				return l + r, nil
			}
		case String:
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}
		return nil, runtimeError(op, ErrType, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, runtimeError(op, ErrType, "Operands must be numbers.")
	}
	switch op.Type {
	case lexer.MINUS:
		return l - r, nil
	case lexer.STAR:
		return l * r, nil
	case lexer.SLASH:
		return l / r, nil
	case lexer.GREATER:
		return Boolean(l > r), nil
	case lexer.GREATER_EQUAL:
		return Boolean(l >= r), nil
	case lexer.LESS:
		return Boolean(l < r), nil
	case lexer.LESS_EQUAL:
		return Boolean(l <= r), nil
	}
	panic(fmt.Sprintf("unhandled binary operator %s", op.Type))
}

func unary(op lexer.Token, right Value) (Value, error) {
	switch op.Type {
	case lexer.BANG:
		return Boolean(!isTruthy(right)), nil
	case lexer.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, runtimeError(op, ErrType, "Operand must be a number.")
		}
		return -n, nil
	}
	panic(fmt.Sprintf("unhandled unary operator %s", op.Type))
}

// isEqual relies on interface comparison: primitives compare by
// value, and everything else by identity.
func isEqual(a, b Value) bool { return a == b }

func isTruthy(v Value) bool { return v != FALSE && v != NIL }
