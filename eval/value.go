package eval

// This file contains the runtime representations of Lox values.
// Nil, Boolean, Number and String are plain Go values, so that
// interface comparison gives us Lox equality for free; everything
// else is a pointer and compares by identity.

import (
	"lox/lexer"
	"lox/parser"
)

type ValueType uint8

const (
	_ = ValueType(iota)
	VT_NIL
	VT_BOOLEAN
	VT_NUMBER
	VT_STRING
	VT_FUNCTION
	VT_BUILTIN
	VT_CLASS
	VT_INSTANCE
)

var valueTypeNames = map[ValueType]string{
	VT_NIL:      "nil",
	VT_BOOLEAN:  "boolean",
	VT_NUMBER:   "number",
	VT_STRING:   "string",
	VT_FUNCTION: "function",
	VT_BUILTIN:  "builtin",
	VT_CLASS:    "class",
	VT_INSTANCE: "instance",
}

func (t ValueType) String() string { return valueTypeNames[t] }

type Value interface {
	Type() ValueType
}

// Callable is implemented by every value that can appear on the
// left of a call expression.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

type Nil struct{}
type Boolean bool
type Number float64
type String string

// Function is a user-defined function or method, closed over the
// environment it was declared in.
type Function struct {
	decl    *parser.Function
	closure *Environment
	isInit  bool
}

func newFunction(decl *parser.Function, closure *Environment, isInit bool) *Function {
	return &Function{
		decl:    decl,
		closure: closure,
		isInit:  isInit,
	}
}

type builtinFunc func(in *Interpreter, args []Value) (Value, error)

// Builtin represents a native function.
type Builtin struct {
	name  string
	arity int
	call  builtinFunc
}

func newBuiltin(name string, arity int, call builtinFunc) *Builtin {
	return &Builtin{
		name:  name,
		arity: arity,
		call:  call,
	}
}

type Class struct {
	Name       string
	superclass *Class
	methods    map[string]*Function
}

func newClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{
		Name:       name,
		superclass: superclass,
		methods:    methods,
	}
}

type Instance struct {
	class  *Class
	fields map[string]Value
}

func newInstance(class *Class) *Instance {
	return &Instance{
		class:  class,
		fields: map[string]Value{},
	}
}

func (v Nil) Type() ValueType       { return VT_NIL }
func (v Boolean) Type() ValueType   { return VT_BOOLEAN }
func (v Number) Type() ValueType    { return VT_NUMBER }
func (v String) Type() ValueType    { return VT_STRING }
func (v *Function) Type() ValueType { return VT_FUNCTION }
func (v *Builtin) Type() ValueType  { return VT_BUILTIN }
func (v *Class) Type() ValueType    { return VT_CLASS }
func (v *Instance) Type() ValueType { return VT_INSTANCE }

// ==========
// Singletons
// ==========

var (
	NIL   = Nil{}
	TRUE  = Boolean(true)
	FALSE = Boolean(false)
)

// ===============
// Runtime Control
// ===============

// Return carries the value of an executed return statement up to
// the enclosing call. Statement execution yields a nil *Return when
// it completes normally.
type Return struct {
	Keyword lexer.Token
	Value   Value
}
