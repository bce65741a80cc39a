package eval

import (
	"fmt"

	"lox/lexer"
)

type Environment struct {
	store map[string]Value
	outer *Environment
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// ancestor returns the environment that is distance d
// away from the current environment.
func (e *Environment) ancestor(d int) *Environment {
	env := e
	for i := 0; i < d; i++ {
		env = env.outer
		if env == nil {
			panic(fmt.Sprintf("no environment at distance %d", d))
		}
	}
	return env
}

// Define binds the given name to the given value in this frame,
// overwriting any existing binding.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get gets the given name from the environment, traversing
// the outer environments if it is not found.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign rebinds the name in the closest frame that defines it.
func (e *Environment) Assign(name lexer.Token, value Value) error {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name.Lexeme]; ok {
			env.store[name.Lexeme] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// GetAt gets the variable at exactly distance d. The resolver
// guarantees that the binding exists, so a miss is a bug.
func (e *Environment) GetAt(d int, name string) Value {
	v, ok := e.ancestor(d).store[name]
	if !ok {
		panic(fmt.Sprintf("unresolved binding %q at distance %d", name, d))
	}
	return v
}

func (e *Environment) AssignAt(d int, name string, value Value) {
	env := e.ancestor(d)
	if _, ok := env.store[name]; !ok {
		panic(fmt.Sprintf("unresolved binding %q at distance %d", name, d))
	}
	env.store[name] = value
}
