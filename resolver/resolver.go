// Package resolver implements identifier resolution semantic analysis,
// as well as some syntax checks (e.g. ensuring that returns are within
// a function, and that this/super are used inside a class). Identifier
// resolution works by recording the distance from the current
// environment where an identifier can be found.
package resolver

import (
	"fmt"

	"lox/lexer"
	"lox/parser"
)

type ResolverError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	return fmt.Sprintf("%s:%d:%d: at %q: %s", re.Filename, re.Token.Line, re.Token.Column, re.Token.Lexeme, re.Message)
}

// Binder receives the distance of every resolved local variable
// expression. Expressions that are never passed to Resolve are
// globals.
type Binder interface {
	Resolve(expr parser.Expr, depth int)
}

// Scope maps a variable name to whether it has finished initialising.
type Scope map[string]bool

type FunctionType uint8

const (
	FN_NONE = FunctionType(iota)
	FN_FUNCTION
	FN_INITIALIZER
	FN_METHOD
)

type ClassType uint8

const (
	CLASS_NONE = ClassType(iota)
	CLASS_CLASS
	CLASS_SUBCLASS
)

// InitMethod is the name of the class initializer method.
const InitMethod = "init"

type Resolver struct {
	module *parser.Module
	binder Binder
	// each scope is a map from varname to a boolean, corresponding
	// to whether the variable was already initialised. The global
	// scope is not tracked.
	scopes []Scope
	Errors []error
	fn     FunctionType
	class  ClassType
}

func New(module *parser.Module, binder Binder) *Resolver {
	return &Resolver{
		module: module,
		binder: binder,
		scopes: []Scope{},
		Errors: []error{},
		fn:     FN_NONE,
		class:  CLASS_NONE,
	}
}

func (r *Resolver) curr() Scope { return r.scopes[len(r.scopes)-1] }
func (r *Resolver) push()       { r.scopes = append(r.scopes, Scope{}) }
func (r *Resolver) pop()        { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) err(tok lexer.Token, msg string) {
	r.Errors = append(r.Errors, ResolverError{
		Filename: r.module.Filename,
		Token:    tok,
		Message:  msg,
	})
}

// Resolve resolves the given module. Errors are accumulated in
// r.Errors; resolution carries on past them so that every static
// error is reported.
func (r *Resolver) Resolve() {
	r.resolveStmts(r.module.Stmts)
	if len(r.scopes) != 0 || r.fn != FN_NONE || r.class != CLASS_NONE {
		panic("something gone wrong!")
	}
}

func (r *Resolver) resolveStmts(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		r.resolve(stmt)
	}
}

func (r *Resolver) resolve(node parser.Node) {
	switch node := node.(type) {
	case nil:
		// placeholder for a statement that failed to parse.
		return
	// Statements
	case *parser.Block:
		r.resolveBlock(node)
	case *parser.Class:
		r.resolveClass(node)
	case *parser.ExprStmt:
		r.resolve(node.Expr)
	case *parser.Function:
		r.resolveFunctionStmt(node)
	case *parser.If:
		r.resolveIf(node)
	case *parser.Print:
		r.resolve(node.Expr)
	case *parser.Return:
		r.resolveReturn(node)
	case *parser.Var:
		r.resolveVar(node)
	case *parser.While:
		r.resolveWhile(node)
	// Expressions
	case *parser.Assign:
		r.resolveAssign(node)
	case *parser.Binary:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Call:
		r.resolveCall(node)
	case *parser.Get:
		r.resolve(node.Object)
	case *parser.Grouping:
		r.resolve(node.Expr)
	case *parser.Literal:
		return
	case *parser.Logical:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Set:
		r.resolve(node.Value)
		r.resolve(node.Object)
	case *parser.Super:
		r.resolveSuper(node)
	case *parser.This:
		r.resolveThis(node)
	case *parser.Unary:
		r.resolve(node.Right)
	case *parser.Variable:
		r.resolveVariable(node)
	default:
		panic(fmt.Sprintf("unhandled node: %#+v", node))
	}
}

// ==========
// Statements
// ==========

func (r *Resolver) resolveBlock(node *parser.Block) {
	r.push()
	r.resolveStmts(node.Stmts)
	r.pop()
}

func (r *Resolver) resolveClass(node *parser.Class) {
	class := r.class
	r.class = CLASS_CLASS
	r.declare(node.Name)
	r.define(node.Name)

	if node.Superclass != nil {
		if node.Superclass.Name.Lexeme == node.Name.Lexeme {
			r.err(node.Superclass.Name, "a class can't inherit from itself")
		}
		r.class = CLASS_SUBCLASS
		r.resolve(node.Superclass)
		r.push()
		r.curr()["super"] = true
	}

	r.push()
	r.curr()["this"] = true
	for _, method := range node.Methods {
		fn := FN_METHOD
		if method.Name.Lexeme == InitMethod {
			fn = FN_INITIALIZER
		}
		r.resolveFunction(method, fn)
	}
	r.pop()

	if node.Superclass != nil {
		r.pop()
	}
	r.class = class
}

func (r *Resolver) resolveFunctionStmt(node *parser.Function) {
	// declare and define eagerly, so that the function can
	// refer to itself recursively.
	r.declare(node.Name)
	r.define(node.Name)
	r.resolveFunction(node, FN_FUNCTION)
}

// resolveFunction pushes a single scope holding the parameters and
// resolves the body directly in it; the interpreter likewise runs
// the body in the call's environment without another block.
func (r *Resolver) resolveFunction(node *parser.Function, typ FunctionType) {
	fn := r.fn
	r.fn = typ
	r.push()
	for _, param := range node.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(node.Body)
	r.pop()
	r.fn = fn
}

func (r *Resolver) resolveIf(node *parser.If) {
	r.resolve(node.Cond)
	r.resolve(node.Then)
	if node.Else != nil {
		r.resolve(node.Else)
	}
}

func (r *Resolver) resolveReturn(node *parser.Return) {
	if r.fn == FN_NONE {
		r.err(node.Keyword, "can't return from top-level code")
	}
	if node.Value != nil {
		if r.fn == FN_INITIALIZER {
			r.err(node.Keyword, "can't return a value from an initializer")
		}
		r.resolve(node.Value)
	}
}

func (r *Resolver) resolveVar(node *parser.Var) {
	r.declare(node.Name)
	if node.Init != nil {
		r.resolve(node.Init)
	}
	r.define(node.Name)
}

func (r *Resolver) resolveWhile(node *parser.While) {
	r.resolve(node.Cond)
	r.resolve(node.Body)
}

// ===========
// Expressions
// ===========

func (r *Resolver) resolveAssign(node *parser.Assign) {
	r.resolve(node.Value)
	r.lookup(node, node.Name)
}

func (r *Resolver) resolveCall(node *parser.Call) {
	r.resolve(node.Callee)
	for _, arg := range node.Args {
		r.resolve(arg)
	}
}

func (r *Resolver) resolveSuper(node *parser.Super) {
	switch r.class {
	case CLASS_NONE:
		r.err(node.Keyword, "can't use 'super' outside of a class")
	case CLASS_CLASS:
		r.err(node.Keyword, "can't use 'super' in a class with no superclass")
	}
	r.lookup(node, node.Keyword)
}

func (r *Resolver) resolveThis(node *parser.This) {
	if r.class == CLASS_NONE {
		r.err(node.Keyword, "can't use 'this' outside of a class")
		return
	}
	r.lookup(node, node.Keyword)
}

func (r *Resolver) resolveVariable(node *parser.Variable) {
	name := node.Name.Lexeme
	if len(r.scopes) > 0 {
		if initialised, ok := r.curr()[name]; ok && !initialised {
			r.err(node.Name, "can't read local variable in its own initializer")
		}
	}
	r.lookup(node, node.Name)
}

// =========
// Utilities
// =========

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	curr := r.curr()
	if _, ok := curr[name.Lexeme]; ok {
		r.err(name, "already a variable with this name in this scope")
	}
	curr[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.curr()[name.Lexeme] = true
}

// lookup finds the closest scope containing the name and records its
// distance. Names that are not found are left for the global scope.
func (r *Resolver) lookup(node parser.Expr, token lexer.Token) {
	name := token.Lexeme
	curr := len(r.scopes) - 1
	for i := curr; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.binder.Resolve(node, curr-i)
			return
		}
	}
}
