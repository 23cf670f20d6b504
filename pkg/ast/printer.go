package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an expression in prefix parenthesized form, e.g.
// "(* (group (+ 1 2)) 3)". Used by the ast CLI command and in tests to
// assert tree shape.
func Print(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return printLiteral(e.Value)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}

// PrintStmts renders statements one per line.
func PrintStmts(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = printStmt(s)
	}
	return strings.Join(parts, "\n")
}

func printStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *Expression:
		return parenthesize("expr", s.Expression)
	case *PrintStmt:
		return parenthesize("print", s.Expression)
	case *VarDecl:
		if s.Initializer == nil {
			return fmt.Sprintf("(var %s)", s.Name.Lexeme)
		}
		return parenthesize("var "+s.Name.Lexeme, s.Initializer)
	case *Block:
		var b strings.Builder
		b.WriteString("(block")
		for _, inner := range s.Statements {
			b.WriteString(" ")
			b.WriteString(printStmt(inner))
		}
		b.WriteString(")")
		return b.String()
	default:
		return fmt.Sprintf("<%T>", stmt)
	}
}

func printLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(Print(e))
	}
	b.WriteString(")")
	return b.String()
}
