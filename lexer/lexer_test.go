package lexer_test

import (
	"testing"

	"lox/lexer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	lex := lexer.New("", `
class Dog < Animal { init(name) { this.name = name; } }
var dog = Dog("阿福");
21.50 == 2.10;
true != false and nil or !x; // trailing comment
fun f(a, b) { return a <= b; }`)
	lex.ScanTokens()
	if len(lex.Errors) != 0 {
		t.Errorf("failed: expected no errors, got:")
		for _, x := range lex.Errors {
			t.Log(x.String())
		}
	}
	t.Log(lex.Tokens)
}

func TestLexerTokenTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected lexer.TokenType
	}{
		{"(", lexer.LEFT_PAREN},
		{")", lexer.RIGHT_PAREN},
		{"{", lexer.LEFT_BRACE},
		{"}", lexer.RIGHT_BRACE},
		{",", lexer.COMMA},
		{".", lexer.DOT},
		{"-", lexer.MINUS},
		{"+", lexer.PLUS},
		{";", lexer.SEMICOLON},
		{"/", lexer.SLASH},
		{"*", lexer.STAR},
		{"!", lexer.BANG},
		{"!=", lexer.BANG_EQUAL},
		{"=", lexer.EQUAL},
		{"==", lexer.EQUAL_EQUAL},
		{">", lexer.GREATER},
		{">=", lexer.GREATER_EQUAL},
		{"<", lexer.LESS},
		{"<=", lexer.LESS_EQUAL},
		{`"my string"`, lexer.STRING},
		{"5", lexer.NUMBER},
		{"5.24", lexer.NUMBER},
		{"my_identifier", lexer.IDENTIFIER},
		{"and", lexer.AND},
		{"class", lexer.CLASS},
		{"else", lexer.ELSE},
		{"false", lexer.FALSE},
		{"fun", lexer.FUN},
		{"for", lexer.FOR},
		{"if", lexer.IF},
		{"nil", lexer.NIL},
		{"or", lexer.OR},
		{"print", lexer.PRINT},
		{"return", lexer.RETURN},
		{"super", lexer.SUPER},
		{"this", lexer.THIS},
		{"true", lexer.TRUE},
		{"var", lexer.VAR},
		{"while", lexer.WHILE},
	}
	for i, test := range tests {
		lex := lexer.New("<test>", test.input)
		lex.ScanTokens()
		require.Empty(t, lex.Errors, "tests[%d] (%q)", i, test.input)
		require.Len(t, lex.Tokens, 2, "tests[%d] (%q)", i, test.input)
		assert.Equal(t, test.expected, lex.Tokens[0].Type, "tests[%d] (%q)", i, test.input)
		assert.Equal(t, lexer.EOF, lex.Tokens[1].Type, "tests[%d] (%q)", i, test.input)
	}
}

func TestLexerLiterals(t *testing.T) {
	lex := lexer.New("", "12.5 \"a\\\"b\" \"multi\nline\"")
	lex.ScanTokens()
	require.Empty(t, lex.Errors)
	require.Len(t, lex.Tokens, 4)
	assert.Equal(t, 12.5, lex.Tokens[0].Literal)
	assert.Equal(t, `a"b`, lex.Tokens[1].Literal)
	assert.Equal(t, "multi\nline", lex.Tokens[2].Literal)
}

func TestLexerPositions(t *testing.T) {
	lex := lexer.New("", "var a;\n  print a;")
	lex.ScanTokens()
	require.Empty(t, lex.Errors)
	tok := lex.Tokens[3]
	assert.Equal(t, lexer.PRINT, tok.Type)
	assert.Equal(t, 2, tok.Line)
	assert.Equal(t, 3, tok.Column)
}

func TestLexerEmpty(t *testing.T) {
	lex := lexer.New("", "")
	lex.ScanTokens()
	require.Len(t, lex.Tokens, 1)
	assert.Equal(t, lexer.EOF, lex.Tokens[0].Type)
}

func TestLexerBad(t *testing.T) {
	badInputs := []string{
		"\"abc",
		"def | holy",
		"abc & adhkfsai",
		"\"abraca\xc3\x28 dabra\"",
		"\xc3\x28",
		"abc def \xf0\x28\x8c\xbc uu \xc3\x28 omg",
		"\"bad \\q escape\"",
		"a # b",
	}
	for i, input := range badInputs {
		lex := lexer.New("<test>", input)
		lex.ScanTokens()
		if len(lex.Errors) == 0 {
			t.Errorf("tests[%d] (%q) failed", i, input)
			t.Errorf("expected errors, got none")
		}
		for _, x := range lex.Errors {
			t.Logf("%s\n", x.String())
		}
	}
}
