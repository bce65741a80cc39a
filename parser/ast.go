package parser

import "lox/lexer"

// The node set is closed: only types in this package implement the
// unexported marker methods, so a type switch over Expr or Stmt can
// list every case.

type Node interface {
	String() string
	Tok() lexer.Token
	node()
}

type Expr interface {
	Node
	expr()
}

type Stmt interface {
	Node
	stmt()
}

// Module is the root of a parsed source unit. Statements that failed
// to parse are kept as nil placeholders.
type Module struct {
	Filename string
	Stmts    []Stmt
}

// ===========
// Expressions
// ===========

type Assign struct {
	Name  lexer.Token
	Value Expr
}

type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

type Call struct {
	Callee Expr
	Paren  lexer.Token // closing paren, used for error locations.
	Args   []Expr
}

type Get struct {
	Object Expr
	Name   lexer.Token
}

type Grouping struct {
	LParen lexer.Token
	Expr   Expr
}

type Literal struct {
	Lit lexer.Token
}

// Logical is an `and' / `or' expression. Unlike Binary the right
// operand may not be evaluated.
type Logical struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

type Super struct {
	Keyword lexer.Token
	Method  lexer.Token
}

type This struct {
	Keyword lexer.Token
}

type Unary struct {
	Op    lexer.Token
	Right Expr
}

type Variable struct {
	Name lexer.Token
}

// ==========
// Statements
// ==========

type Block struct {
	LBrace lexer.Token
	Stmts  []Stmt
}

type Class struct {
	Name       lexer.Token
	Superclass *Variable // nil if the class has no superclass.
	Methods    []*Function
}

type ExprStmt struct {
	Expr Expr
}

type Function struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

type If struct {
	Keyword lexer.Token
	Cond    Expr
	Then    Stmt
	Else    Stmt
}

type Print struct {
	Keyword lexer.Token
	Expr    Expr
}

type Return struct {
	Keyword lexer.Token
	Value   Expr // nil for a bare `return;'
}

type Var struct {
	Name lexer.Token
	Init Expr // nil if there is no initializer.
}

type While struct {
	Keyword lexer.Token
	Cond    Expr
	Body    Stmt
}

// ======
// Tokens
// ======

func (node *Module) Tok() lexer.Token {
	return lexer.Token{Type: lexer.EOF, Line: 1, Column: 1}
}

func (node *Assign) Tok() lexer.Token   { return node.Name }
func (node *Binary) Tok() lexer.Token   { return node.Op }
func (node *Call) Tok() lexer.Token     { return node.Paren }
func (node *Get) Tok() lexer.Token      { return node.Name }
func (node *Grouping) Tok() lexer.Token { return node.LParen }
func (node *Literal) Tok() lexer.Token  { return node.Lit }
func (node *Logical) Tok() lexer.Token  { return node.Op }
func (node *Set) Tok() lexer.Token      { return node.Name }
func (node *Super) Tok() lexer.Token    { return node.Keyword }
func (node *This) Tok() lexer.Token     { return node.Keyword }
func (node *Unary) Tok() lexer.Token    { return node.Op }
func (node *Variable) Tok() lexer.Token { return node.Name }

func (node *Block) Tok() lexer.Token    { return node.LBrace }
func (node *Class) Tok() lexer.Token    { return node.Name }
func (node *ExprStmt) Tok() lexer.Token { return node.Expr.Tok() }
func (node *Function) Tok() lexer.Token { return node.Name }
func (node *If) Tok() lexer.Token       { return node.Keyword }
func (node *Print) Tok() lexer.Token    { return node.Keyword }
func (node *Return) Tok() lexer.Token   { return node.Keyword }
func (node *Var) Tok() lexer.Token      { return node.Name }
func (node *While) Tok() lexer.Token    { return node.Keyword }

// =======
// Markers
// =======

func (node *Module) node() {}

func (node *Assign) node()   {}
func (node *Binary) node()   {}
func (node *Call) node()     {}
func (node *Get) node()      {}
func (node *Grouping) node() {}
func (node *Literal) node()  {}
func (node *Logical) node()  {}
func (node *Set) node()      {}
func (node *Super) node()    {}
func (node *This) node()     {}
func (node *Unary) node()    {}
func (node *Variable) node() {}

func (node *Assign) expr()   {}
func (node *Binary) expr()   {}
func (node *Call) expr()     {}
func (node *Get) expr()      {}
func (node *Grouping) expr() {}
func (node *Literal) expr()  {}
func (node *Logical) expr()  {}
func (node *Set) expr()      {}
func (node *Super) expr()    {}
func (node *This) expr()     {}
func (node *Unary) expr()    {}
func (node *Variable) expr() {}

func (node *Block) node()    {}
func (node *Class) node()    {}
func (node *ExprStmt) node() {}
func (node *Function) node() {}
func (node *If) node()       {}
func (node *Print) node()    {}
func (node *Return) node()   {}
func (node *Var) node()      {}
func (node *While) node()    {}

func (node *Block) stmt()    {}
func (node *Class) stmt()    {}
func (node *ExprStmt) stmt() {}
func (node *Function) stmt() {}
func (node *If) stmt()       {}
func (node *Print) stmt()    {}
func (node *Return) stmt()   {}
func (node *Var) stmt()      {}
func (node *While) stmt()    {}
