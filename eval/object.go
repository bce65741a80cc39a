package eval

import (
	"lox/lexer"
	"lox/resolver"
)

// ---------
// Functions
// ---------

func (v *Function) Name() string { return v.decl.Name.Lexeme }
func (v *Function) Arity() int   { return len(v.decl.Params) }

// Bind returns a copy of the function whose closure has "this"
// bound to the instance. Every call creates a fresh environment, so
// a method bound to two instances never shares state.
func (v *Function) Bind(this *Instance) *Function {
	env := NewEnvironment(v.closure)
	env.Define("this", this)
	return newFunction(v.decl, env, v.isInit)
}

func (v *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(v.closure)
	for i, param := range v.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	ret, err := in.executeBlock(v.decl.Body, env)
	if err != nil {
		return nil, err
	}
	// initializers always produce the instance, even on a bare return.
	if v.isInit {
		return v.closure.GetAt(0, "this"), nil
	}
	if ret != nil {
		return ret.Value, nil
	}
	return NIL, nil
}

// --------
// Builtins
// --------

func (v *Builtin) Arity() int { return v.arity }

func (v *Builtin) Call(in *Interpreter, args []Value) (Value, error) {
	return v.call(in, args)
}

// -------
// Classes
// -------

// FindMethod looks the method up in the class, then along the
// superclass chain.
func (v *Class) FindMethod(name string) (*Function, bool) {
	for class := v; class != nil; class = class.superclass {
		if method, ok := class.methods[name]; ok {
			return method, true
		}
	}
	return nil, false
}

func (v *Class) Superclass() *Class { return v.superclass }

func (v *Class) Arity() int {
	if init, ok := v.FindMethod(resolver.InitMethod); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance and runs the initializer on it.
func (v *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := newInstance(v)
	if init, ok := v.FindMethod(resolver.InitMethod); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// ---------
// Instances
// ---------

func (v *Instance) Class() *Class { return v.class }

// Get returns the field with the given name, or failing that, the
// method bound to this instance.
func (v *Instance) Get(name lexer.Token) (Value, error) {
	if value, ok := v.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method, ok := v.class.FindMethod(name.Lexeme); ok {
		return method.Bind(v), nil
	}
	return nil, runtimeError(name, ErrUndefinedProperty, "Undefined property '%s'.", name.Lexeme)
}

func (v *Instance) Set(name lexer.Token, value Value) {
	v.fields[name.Lexeme] = value
}
