package resolver_test

import (
	"testing"

	"lox/lexer"
	"lox/parser"
	"lox/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bindings records every distance handed out by the resolver.
type bindings map[parser.Expr]int

func (b bindings) Resolve(expr parser.Expr, depth int) { b[expr] = depth }

func TestResolver(t *testing.T) {
	input := `
var a = 1;
{
  var b = 2;
  fun f(x) { print a; print b; print x; f(x); }
}
`
	module := lexAndParse(t, input)
	if module == nil {
		return
	}
	locals := bindings{}
	r := resolver.New(module, locals)
	r.Resolve()
	if !noErrors(t, "resolver", r.Errors) {
		return
	}
	body := module.Stmts[1].(*parser.Block).Stmts[1].(*parser.Function).Body
	a := body[0].(*parser.Print).Expr.(*parser.Variable)
	b := body[1].(*parser.Print).Expr.(*parser.Variable)
	x := body[2].(*parser.Print).Expr.(*parser.Variable)
	f := body[3].(*parser.ExprStmt).Expr.(*parser.Call).Callee.(*parser.Variable)

	_, ok := locals[a]
	assert.False(t, ok, "globals are not recorded")
	assert.Equal(t, 1, locals[b])
	assert.Equal(t, 0, locals[x])
	assert.Equal(t, 1, locals[f])
	assert.Len(t, locals, 3)
}

func TestResolverAssign(t *testing.T) {
	module := lexAndParse(t, "{ var a; { { a = 2; } } }")
	if module == nil {
		return
	}
	locals := bindings{}
	r := resolver.New(module, locals)
	r.Resolve()
	require.Empty(t, r.Errors)
	outer := module.Stmts[0].(*parser.Block)
	inner := outer.Stmts[1].(*parser.Block).Stmts[0].(*parser.Block)
	assign := inner.Stmts[0].(*parser.ExprStmt).Expr.(*parser.Assign)
	assert.Equal(t, 2, locals[assign])
}

func TestResolverClasses(t *testing.T) {
	input := `
class A { m() { return this; } }
class B < A { m() { return super.m; } }
`
	module := lexAndParse(t, input)
	if module == nil {
		return
	}
	locals := bindings{}
	r := resolver.New(module, locals)
	r.Resolve()
	if !noErrors(t, "resolver", r.Errors) {
		return
	}
	this := module.Stmts[0].(*parser.Class).Methods[0].Body[0].(*parser.Return).Value
	super := module.Stmts[1].(*parser.Class).Methods[0].Body[0].(*parser.Return).Value
	assert.Equal(t, 1, locals[this])
	assert.Equal(t, 2, locals[super])
}

func TestResolverErrors(t *testing.T) {
	tests := []struct {
		input   string
		numErrs int
		message string
	}{
		{"var a = 1; var a = 2;", 0, ""},
		{"{ var a = 1; var a = 2; }", 1, "already a variable with this name"},
		{"fun f(a, a) {}", 1, "already a variable with this name"},
		{"{ var a = a; }", 1, "own initializer"},
		{"var a = a;", 0, ""},
		{"return 1;", 1, "top-level code"},
		{"{ return; }", 1, "top-level code"},
		{"fun f() { return 1; }", 0, ""},
		{"class A { init() { return 1; } }", 1, "from an initializer"},
		{"class A { init() { return; } }", 0, ""},
		{"class A { init() { fun g() { return 1; } } }", 0, ""},
		{"print this;", 1, "'this' outside of a class"},
		{"fun f() { return this; }", 1, "'this' outside of a class"},
		{"class A { m() { fun g() { return this; } } }", 0, ""},
		{"super.x;", 1, "'super' outside of a class"},
		{"class A { m() { super.m(); } }", 1, "no superclass"},
		{"class A {} class B < A { m() { super.m(); } }", 0, ""},
		{"class A < A {}", 1, "inherit from itself"},
		{"return; print this; super.x;", 3, "top-level code"},
	}
	for i, test := range tests {
		module := lexAndParse(t, test.input)
		if module == nil {
			continue
		}
		r := resolver.New(module, bindings{})
		r.Resolve()
		if len(r.Errors) != test.numErrs {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Errorf("expected=%d errors, got=%d", test.numErrs, len(r.Errors))
			t.Errorf("%+v\n", r.Errors)
			continue
		}
		if test.numErrs > 0 {
			assert.Contains(t, r.Errors[0].Error(), test.message, "tests[%d] (%q)", i, test.input)
		}
	}
}

func TestResolverErrorPosition(t *testing.T) {
	l := lexer.New("<test>", "fun f() {}\nreturn 1;")
	l.ScanTokens()
	require.Empty(t, l.Errors)
	p := parser.New("<test>", l.Tokens)
	module := p.Parse()
	require.Empty(t, p.Errors)
	r := resolver.New(module, bindings{})
	r.Resolve()
	require.Len(t, r.Errors, 1)
	assert.Equal(t, `<test>:2:1: at "return": can't return from top-level code`, r.Errors[0].Error())
}

func TestResolverPlaceholders(t *testing.T) {
	module := &parser.Module{Stmts: []parser.Stmt{nil, nil}}
	r := resolver.New(module, bindings{})
	assert.NotPanics(t, r.Resolve)
	assert.Empty(t, r.Errors)
}

// utils

func lexAndParse(t *testing.T, input string) *parser.Module {
	fn := ""
	l := lexer.New(fn, input)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		t.Errorf("got lexer errors: %+v", l.Errors)
		return nil
	}
	p := parser.New(fn, l.Tokens)
	module := p.Parse()
	if !noErrors(t, "parser", p.Errors) {
		return nil
	}
	return module
}

func noErrors[E error](t *testing.T, src string, errors []E) bool {
	if len(errors) != 0 {
		t.Errorf("got %s errors:\n", src)
		for _, x := range errors {
			t.Errorf("%s\n", x)
		}
		return false
	}
	return true
}
