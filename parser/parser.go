package parser

import "lox/lexer"

type (
	unaryParser  func() Expr
	binaryParser func(Expr) Expr
)

// maxArgs is the maximum number of parameters or call arguments.
const maxArgs = 255

type Parser struct {
	filename      string
	tokens        []lexer.Token
	Errors        []ParserError
	curr          int // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
}

const (
	PREC_LOWEST  = iota
	PREC_ASSIGN  // =
	PREC_OR      // or
	PREC_AND     // and
	PREC_EQ      // ==, !=
	PREC_CMP     // <=, <, >, >=
	PREC_SUM     // +, -
	PREC_PRODUCT // *, /
	PREC_UNARY   // !, -
	PREC_CALL    // (), .
)

// ====
// init
// ====

func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []ParserError{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN: p.grouping,
		lexer.IDENTIFIER: p.variable,
		lexer.NUMBER:     p.literal,
		lexer.STRING:     p.literal,
		lexer.TRUE:       p.literal,
		lexer.FALSE:      p.literal,
		lexer.NIL:        p.literal,
		lexer.THIS:       p.this,
		lexer.SUPER:      p.super,
		lexer.BANG:       p.unary,
		lexer.MINUS:      p.unary,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.EQUAL:         p.assign,
		lexer.OR:            p.logical,
		lexer.AND:           p.logical,
		lexer.EQUAL_EQUAL:   p.binary,
		lexer.BANG_EQUAL:    p.binary,
		lexer.GREATER:       p.binary,
		lexer.GREATER_EQUAL: p.binary,
		lexer.LESS:          p.binary,
		lexer.LESS_EQUAL:    p.binary,
		lexer.PLUS:          p.binary,
		lexer.MINUS:         p.binary,
		lexer.STAR:          p.binary,
		lexer.SLASH:         p.binary,
		lexer.LEFT_PAREN:    p.call,
		lexer.DOT:           p.get,
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.EQUAL:         PREC_ASSIGN,
		lexer.OR:            PREC_OR,
		lexer.AND:           PREC_AND,
		lexer.EQUAL_EQUAL:   PREC_EQ,
		lexer.BANG_EQUAL:    PREC_EQ,
		lexer.GREATER:       PREC_CMP,
		lexer.GREATER_EQUAL: PREC_CMP,
		lexer.LESS:          PREC_CMP,
		lexer.LESS_EQUAL:    PREC_CMP,
		lexer.PLUS:          PREC_SUM,
		lexer.MINUS:         PREC_SUM,
		lexer.STAR:          PREC_PRODUCT,
		lexer.SLASH:         PREC_PRODUCT,
		lexer.LEFT_PAREN:    PREC_CALL,
		lexer.DOT:           PREC_CALL,
	}
	return p
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if p.curr == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.curr-1]
}

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// module → declaration* EOF

func (p *Parser) Parse() *Module {
	module := &Module{Filename: p.filename, Stmts: []Stmt{}}
	if len(p.tokens) == 0 {
		return module
	}
	for !p.isAtEnd() {
		module.Stmts = append(module.Stmts, p.declaration())
	}
	return module
}

// =================
// statement parsing
// =================
//
//   declaration → class | fun | var | statement
//   class       → "class" IDENT ( "<" IDENT )? "{" function* "}"
//   fun         → "fun" function
//   function    → IDENT "(" params? ")" block
//   var         → "var" IDENT ( "=" expression )? ";"
//   statement   → for | if | print | return | while | block | exprStmt
//   for         → "for" "(" ( var | exprStmt | ";" ) expression? ";" expression? ")" statement
//   if          → "if" "(" expression ")" statement ( "else" statement )?
//   print       → "print" expression ";"
//   return      → "return" expression? ";"
//   while       → "while" "(" expression ")" statement
//   block       → "{" declaration* "}"
//   exprStmt    → expression ";"
//
// note: since most of the var,for,... are keywords in Go,
// they are named __Stmt().

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		// This will be called repeatedly as we parse statements, so
		// this is a good place to synchronize(). We have to make
		// sure that all top-level calls to parse statements/expressions
		// have a recover.
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	switch {
	case p.match(lexer.CLASS):
		stmt = p.classStmt()
	case p.match(lexer.FUN):
		stmt = p.function("function")
	case p.match(lexer.VAR):
		stmt = p.varStmt()
	default:
		stmt = p.statement()
	}
	return
}

func (p *Parser) statement() Stmt {
	switch {
	case p.check(lexer.FOR):
		return p.forStmt()
	case p.check(lexer.IF):
		return p.ifStmt()
	case p.check(lexer.PRINT):
		return p.printStmt()
	case p.check(lexer.RETURN):
		return p.returnStmt()
	case p.check(lexer.WHILE):
		return p.whileStmt()
	case p.check(lexer.LEFT_BRACE):
		return p.blockStmt()
	}
	return p.exprStmt()
}

func (p *Parser) classStmt() Stmt {
	name := p.expect(lexer.IDENTIFIER, "expected class name")
	var superclass *Variable
	if p.match(lexer.LESS) {
		superclass = &Variable{Name: p.expect(lexer.IDENTIFIER, "expected superclass name")}
	}
	p.expect(lexer.LEFT_BRACE, "expected { before class body")
	methods := []*Function{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		methods = append(methods, p.function("method"))
	}
	p.expect(lexer.RIGHT_BRACE, "expected } after class body")
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *Function {
	name := p.expect(lexer.IDENTIFIER, "expected %s name", kind)
	p.expect(lexer.LEFT_PAREN, "expected ( after %s name", kind)
	params := []lexer.Token{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.report(p.peek(), "can't have more than %d parameters", maxArgs)
			}
			params = append(params, p.expect(lexer.IDENTIFIER, "expected parameter name"))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "expected ) after parameters")
	p.expect(lexer.LEFT_BRACE, "expected { before %s body", kind)
	return &Function{Name: name, Params: params, Body: p.block()}
}

func (p *Parser) varStmt() Stmt {
	name := p.expect(lexer.IDENTIFIER, "expected variable name")
	var init Expr
	if p.match(lexer.EQUAL) {
		init = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after variable declaration")
	return &Var{Name: name, Init: init}
}

// forStmt desugars a for loop into a while loop, wrapped in
// blocks for the initializer and increment.
func (p *Parser) forStmt() Stmt {
	keyword := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected ( after for")
	var init Stmt
	switch {
	case p.match(lexer.SEMICOLON):
	case p.match(lexer.VAR):
		init = p.varStmt()
	default:
		init = p.exprStmt()
	}
	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after loop condition")
	var incr Expr
	if !p.check(lexer.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.expect(lexer.RIGHT_PAREN, "expected ) after for clauses")
	body := p.statement()

	if incr != nil {
		body = &Block{LBrace: keyword, Stmts: []Stmt{body, &ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &Literal{Lit: lexer.Token{Type: lexer.TRUE, Lexeme: "true", Line: keyword.Line, Column: keyword.Column}}
	}
	body = &While{Keyword: keyword, Cond: cond, Body: body}
	if init != nil {
		body = &Block{LBrace: keyword, Stmts: []Stmt{init, body}}
	}
	return body
}

func (p *Parser) ifStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected ( after if")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	then := p.statement()
	var elseStmt Stmt = nil
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return &If{Keyword: token, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) printStmt() Stmt {
	token := p.consume()
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after value")
	return &Print{Keyword: token, Expr: expr}
}

func (p *Parser) returnStmt() Stmt {
	token := p.consume()
	var value Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after return value")
	return &Return{Keyword: token, Value: value}
}

func (p *Parser) whileStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected ( after while")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	body := p.statement()
	return &While{Keyword: token, Cond: cond, Body: body}
}

func (p *Parser) blockStmt() Stmt {
	token := p.consume()
	return &Block{LBrace: token, Stmts: p.block()}
}

// block parses declarations up to the closing brace; the opening
// brace must already be consumed.
func (p *Parser) block() []Stmt {
	stmts := []Stmt{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		stmts = append(stmts, p.declaration())
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return stmts
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after expression")
	return &ExprStmt{Expr: expr}
}

// ==================
// expression parsing
// ==================

// expression matches a single expression.
func (p *Parser) expression() Expr { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) Expr {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		p.error(p.peek(), "expected expression")
	}
	expr := unary()
	for prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

func (p *Parser) unary() Expr {
	tok := p.consume()
	return &Unary{Op: tok, Right: p.precedence(PREC_UNARY)}
}

func (p *Parser) grouping() Expr {
	tok := p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unmatched (")
	return &Grouping{LParen: tok, Expr: expr}
}

// assign is right-associative, so the right hand side is parsed
// one level below PREC_ASSIGN.
func (p *Parser) assign(left Expr) Expr {
	tok := p.consume()
	right := p.precedence(PREC_ASSIGN - 1)
	switch left := left.(type) {
	case *Variable:
		return &Assign{Name: left.Name, Value: right}
	case *Get:
		return &Set{Object: left.Object, Name: left.Name, Value: right}
	}
	// this is not an error worth panicking over.
	// just move along -- we will put it in `.errors'.
	p.report(tok, "invalid assignment target")
	return left
}

func (p *Parser) get(left Expr) Expr {
	p.consume()
	name := p.expect(lexer.IDENTIFIER, "expected property name after .")
	return &Get{Object: left, Name: name}
}

func (p *Parser) call(callee Expr) Expr {
	p.consume()
	args := []Expr{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.report(p.peek(), "can't have more than %d arguments", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.expect(lexer.RIGHT_PAREN, "expected ) after arguments")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) binary(left Expr) Expr {
	tok := p.consume()
	return &Binary{Left: left, Op: tok, Right: p.precedence(p.precedences[tok.Type])}
}

func (p *Parser) logical(left Expr) Expr {
	tok := p.consume()
	return &Logical{Left: left, Op: tok, Right: p.precedence(p.precedences[tok.Type])}
}

func (p *Parser) variable() Expr {
	return &Variable{Name: p.consume()}
}

func (p *Parser) this() Expr {
	return &This{Keyword: p.consume()}
}

func (p *Parser) super() Expr {
	tok := p.consume()
	p.expect(lexer.DOT, "expected . after super")
	method := p.expect(lexer.IDENTIFIER, "expected superclass method name")
	return &Super{Keyword: tok, Method: method}
}

func (p *Parser) literal() Expr {
	return &Literal{Lit: p.consume()}
}
