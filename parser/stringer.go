package parser

import (
	"bytes"
	"strings"
)

func (node *Module) String() string {
	stmts := []string{}
	for _, stmt := range node.Stmts {
		stmts = append(stmts, stmtString(stmt))
	}
	return strings.Join(stmts, "\n")
}

// stmtString prints a statement, including nil placeholders left
// behind by parse errors.
func stmtString(stmt Stmt) string {
	if stmt == nil {
		return "<error>;"
	}
	return stmt.String()
}

// Statements

func (node *Block) String() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for _, stmt := range node.Stmts {
		buf.WriteString(stmtString(stmt))
	}
	buf.WriteString("}")
	return buf.String()
}

func (node *Class) String() string {
	var buf bytes.Buffer
	buf.WriteString("class ")
	buf.WriteString(node.Name.Lexeme)
	if node.Superclass != nil {
		buf.WriteString(" < ")
		buf.WriteString(node.Superclass.String())
	}
	buf.WriteString(" {")
	for _, method := range node.Methods {
		buf.WriteString(method.signature())
	}
	buf.WriteString("}")
	return buf.String()
}

func (node *ExprStmt) String() string {
	return node.Expr.String() + ";"
}

func (node *Function) String() string {
	return "fun " + node.signature()
}

func (node *Function) signature() string {
	var buf bytes.Buffer
	buf.WriteString(node.Name.Lexeme)
	buf.WriteString("(")
	params := make([]string, len(node.Params))
	for i, param := range node.Params {
		params[i] = param.Lexeme
	}
	buf.WriteString(strings.Join(params, ", "))
	buf.WriteString(") {")
	for _, stmt := range node.Body {
		buf.WriteString(stmtString(stmt))
	}
	buf.WriteString("}")
	return buf.String()
}

func (node *If) String() string {
	var buf bytes.Buffer
	buf.WriteString("if (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(stmtString(node.Then))
	if node.Else != nil {
		buf.WriteString(" else ")
		buf.WriteString(node.Else.String())
	}
	return buf.String()
}

func (node *Print) String() string {
	return "print " + node.Expr.String() + ";"
}

func (node *Return) String() string {
	if node.Value == nil {
		return "return;"
	}
	return "return " + node.Value.String() + ";"
}

func (node *Var) String() string {
	if node.Init == nil {
		return "var " + node.Name.Lexeme + ";"
	}
	return "var " + node.Name.Lexeme + " = " + node.Init.String() + ";"
}

func (node *While) String() string {
	var buf bytes.Buffer
	buf.WriteString("while (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(stmtString(node.Body))
	return buf.String()
}

// Expressions

func (node *Assign) String() string {
	return "(" + node.Name.Lexeme + " = " + node.Value.String() + ")"
}

func (node *Binary) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Left.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op.Lexeme)
	buf.WriteString(" ")
	buf.WriteString(node.Right.String())
	buf.WriteString(")")
	return buf.String()
}

func (node *Call) String() string {
	args := make([]string, len(node.Args))
	for i, arg := range node.Args {
		args[i] = arg.String()
	}
	return node.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func (node *Get) String() string {
	return "(" + node.Object.String() + "." + node.Name.Lexeme + ")"
}

func (node *Grouping) String() string {
	return "(group " + node.Expr.String() + ")"
}

func (node *Logical) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Left.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op.Lexeme)
	buf.WriteString(" ")
	buf.WriteString(node.Right.String())
	buf.WriteString(")")
	return buf.String()
}

func (node *Set) String() string {
	return "(" + node.Object.String() + "." + node.Name.Lexeme + " = " + node.Value.String() + ")"
}

func (node *Unary) String() string {
	return "(" + node.Op.Lexeme + node.Right.String() + ")"
}

func (node *Super) String() string    { return "super." + node.Method.Lexeme }
func (node *This) String() string     { return node.Keyword.Lexeme }
func (node *Variable) String() string { return node.Name.Lexeme }
func (node *Literal) String() string  { return node.Lit.Lexeme }
