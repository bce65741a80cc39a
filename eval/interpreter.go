package eval

import (
	"fmt"
	"io"

	"lox/lexer"
	"lox/parser"
	"lox/resolver"
)

type Interpreter struct {
	// globals is the outermost environment; unresolved names are
	// looked up here directly.
	globals *Environment
	// the current environment we're executing.
	env *Environment
	// locals maps a resolved expression to its scope distance.
	locals map[parser.Expr]int
	out    io.Writer
}

// New returns an interpreter whose print statements write to out.
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineBuiltins(globals)
	return &Interpreter{
		globals: globals,
		env:     globals,
		locals:  map[parser.Expr]int{},
		out:     out,
	}
}

var _ resolver.Binder = (*Interpreter)(nil)

// Resolve records the scope distance of a local variable expression.
func (in *Interpreter) Resolve(expr parser.Expr, depth int) {
	in.locals[expr] = depth
}

func (in *Interpreter) Globals() *Environment { return in.globals }

// Interpret executes the statements in order, stopping at the
// first runtime error.
func (in *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		ret, err := in.exec(stmt)
		if err != nil {
			return err
		}
		if ret != nil {
			panic(fmt.Sprintf("return outside of a function at line %d", ret.Keyword.Line))
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the current environment.
func (in *Interpreter) Evaluate(expr parser.Expr) (Value, error) {
	return in.evalExpr(expr)
}

func (in *Interpreter) exec(node parser.Stmt) (*Return, error) {
	switch node := node.(type) {
	case nil:
		// placeholder for a statement that failed to parse.
		return nil, nil
	case *parser.Block:
		return in.executeBlock(node.Stmts, NewEnvironment(in.env))
	case *parser.Class:
		return nil, in.execClass(node)
	case *parser.ExprStmt:
		_, err := in.evalExpr(node.Expr)
		return nil, err
	case *parser.Function:
		in.env.Define(node.Name.Lexeme, newFunction(node, in.env, false))
		return nil, nil
	case *parser.If:
		return in.execIf(node)
	case *parser.Print:
		return nil, in.execPrint(node)
	case *parser.Return:
		return in.execReturn(node)
	case *parser.Var:
		return nil, in.execVar(node)
	case *parser.While:
		return in.execWhile(node)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

func (in *Interpreter) evalExpr(node parser.Expr) (Value, error) {
	switch node := node.(type) {
	case *parser.Assign:
		return in.evalAssign(node)
	case *parser.Binary:
		return in.evalBinary(node)
	case *parser.Call:
		return in.evalCall(node)
	case *parser.Get:
		return in.evalGet(node)
	case *parser.Grouping:
		return in.evalExpr(node.Expr)
	case *parser.Literal:
		switch node.Lit.Type {
		case lexer.STRING:
			return String(node.Lit.Literal.(string)), nil
		case lexer.NUMBER:
			return Number(node.Lit.Literal.(float64)), nil
		case lexer.NIL:
			return NIL, nil
		case lexer.TRUE:
			return TRUE, nil
		case lexer.FALSE:
			return FALSE, nil
		}
	case *parser.Logical:
		return in.evalLogical(node)
	case *parser.Set:
		return in.evalSet(node)
	case *parser.Super:
		return in.evalSuper(node)
	case *parser.This:
		return in.lookUp(node, node.Keyword)
	case *parser.Unary:
		return in.evalUnary(node)
	case *parser.Variable:
		return in.lookUp(node, node.Name)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

// executeBlock runs the statements in env, restoring the current
// environment on every exit path.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Environment) (*Return, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	for _, stmt := range stmts {
		ret, err := in.exec(stmt)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}

// ==========
// Statements
// ==========

func (in *Interpreter) execClass(node *parser.Class) error {
	var superclass *Class
	if node.Superclass != nil {
		value, err := in.evalExpr(node.Superclass)
		if err != nil {
			return err
		}
		class, ok := value.(*Class)
		if !ok {
			return runtimeError(node.Superclass.Name, ErrType, "Superclass must be a class.")
		}
		superclass = class
	}

	// methods need to see the class name in their closure.
	in.env.Define(node.Name.Lexeme, NIL)

	if superclass != nil {
		in.env = NewEnvironment(in.env)
		in.env.Define("super", superclass)
	}
	methods := make(map[string]*Function, len(node.Methods))
	for _, method := range node.Methods {
		isInit := method.Name.Lexeme == resolver.InitMethod
		methods[method.Name.Lexeme] = newFunction(method, in.env, isInit)
	}
	class := newClass(node.Name.Lexeme, superclass, methods)
	if superclass != nil {
		in.env = in.env.outer
	}
	return in.env.Assign(node.Name, class)
}

func (in *Interpreter) execIf(node *parser.If) (*Return, error) {
	cond, err := in.evalExpr(node.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.exec(node.Then)
	}
	if node.Else != nil {
		return in.exec(node.Else)
	}
	return nil, nil
}

func (in *Interpreter) execPrint(node *parser.Print) error {
	value, err := in.evalExpr(node.Expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(in.out, Stringify(value))
	return err
}

func (in *Interpreter) execReturn(node *parser.Return) (*Return, error) {
	if node.Value == nil {
		return &Return{Keyword: node.Keyword, Value: NIL}, nil
	}
	value, err := in.evalExpr(node.Value)
	if err != nil {
		return nil, err
	}
	return &Return{Keyword: node.Keyword, Value: value}, nil
}

func (in *Interpreter) execVar(node *parser.Var) error {
	value := Value(NIL)
	if node.Init != nil {
		v, err := in.evalExpr(node.Init)
		if err != nil {
			return err
		}
		value = v
	}
	in.env.Define(node.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) execWhile(node *parser.While) (*Return, error) {
	for {
		cond, err := in.evalExpr(node.Cond)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		ret, err := in.exec(node.Body)
		if err != nil || ret != nil {
			return ret, err
		}
	}
}

// ===========
// Expressions
// ===========

func (in *Interpreter) evalAssign(node *parser.Assign) (Value, error) {
	value, err := in.evalExpr(node.Value)
	if err != nil {
		return nil, err
	}
	if d, ok := in.locals[node]; ok {
		in.env.AssignAt(d, node.Name.Lexeme, value)
		return value, nil
	}
	if err := in.globals.Assign(node.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) evalBinary(node *parser.Binary) (Value, error) {
	left, err := in.evalExpr(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(node.Right)
	if err != nil {
		return nil, err
	}
	return binary(node.Op, left, right)
}

func (in *Interpreter) evalCall(node *parser.Call) (Value, error) {
	callee, err := in.evalExpr(node.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeError(node.Paren, ErrType, "Can only call functions and classes.")
	}
	args := make([]Value, len(node.Args))
	for i, arg := range node.Args {
		value, err := in.evalExpr(arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	if len(args) != fn.Arity() {
		return nil, runtimeError(node.Paren, ErrArity, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(node *parser.Get) (Value, error) {
	object, err := in.evalExpr(node.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, runtimeError(node.Name, ErrType, "Only instances have properties.")
	}
	return instance.Get(node.Name)
}

func (in *Interpreter) evalLogical(node *parser.Logical) (Value, error) {
	left, err := in.evalExpr(node.Left)
	if err != nil {
		return nil, err
	}
	if node.Op.Type == lexer.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return in.evalExpr(node.Right)
}

func (in *Interpreter) evalSet(node *parser.Set) (Value, error) {
	object, err := in.evalExpr(node.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, runtimeError(node.Name, ErrType, "Only instances have fields.")
	}
	value, err := in.evalExpr(node.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(node.Name, value)
	return value, nil
}

// evalSuper finds the method on the superclass bound in the
// synthetic "super" scope, and binds it to the "this" one scope
// closer.
func (in *Interpreter) evalSuper(node *parser.Super) (Value, error) {
	d, ok := in.locals[node]
	if !ok {
		panic(fmt.Sprintf("unresolved super at line %d", node.Keyword.Line))
	}
	superclass := in.env.GetAt(d, "super").(*Class)
	this := in.env.GetAt(d-1, "this").(*Instance)
	method, ok := superclass.FindMethod(node.Method.Lexeme)
	if !ok {
		return nil, runtimeError(node.Method, ErrUndefinedProperty, "Undefined property '%s'.", node.Method.Lexeme)
	}
	return method.Bind(this), nil
}

func (in *Interpreter) evalUnary(node *parser.Unary) (Value, error) {
	right, err := in.evalExpr(node.Right)
	if err != nil {
		return nil, err
	}
	return unary(node.Op, right)
}

// =========
// Utilities
// =========

// lookUp reads a variable through the recorded distance, or from
// the globals if the resolver left it unrecorded.
func (in *Interpreter) lookUp(node parser.Expr, name lexer.Token) (Value, error) {
	if d, ok := in.locals[node]; ok {
		return in.env.GetAt(d, name.Lexeme), nil
	}
	return in.globals.Get(name)
}
