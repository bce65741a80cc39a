package parser

import (
	"fmt"

	"lox/lexer"
)

// Represents a parsing error. We use this internally to signal
// that we cannot continue parsing some expression/statement --
// as opposed to minor errors like assigning to a function.
type ParserError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (e ParserError) Error() string { return e.String() }
func (e ParserError) String() string {
	where := e.Token.Lexeme
	if e.Token.Type == lexer.EOF {
		where = "end"
	}
	return fmt.Sprintf("%s:%d:%d: at %q: %s", e.Filename, e.Token.Line, e.Token.Column, where, e.Message)
}

// report records an error without unwinding the parser.
func (p *Parser) report(tok lexer.Token, s string, args ...interface{}) ParserError {
	err := ParserError{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	return err
}

// error records an error and unwinds to the enclosing declaration.
func (p *Parser) error(tok lexer.Token, s string, args ...interface{}) {
	panic(p.report(tok, s, args...))
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if !p.check(typ) {
		p.error(p.peek(), s, args...)
	}
	return p.consume()
}

// synchronize synchronizes the parser by discarding tokens
// until we reach a token which starts a statement. This means
// that cascading errors are discarded, and we still report as
// many errors as possible.
func (p *Parser) synchronize() {
	p.consume()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF,
			lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.consume()
	}
}
