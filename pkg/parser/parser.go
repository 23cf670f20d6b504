// Package parser implements the Lox recursive-descent parser.
//
// Grammar, lowest precedence first:
//
//	program     := declaration* EOF
//	declaration := "var" IDENTIFIER ("=" expression)? ";" | statement
//	statement   := "print" expression ";" | "{" declaration* "}" | expression ";"
//	expression  := assignment
//	assignment  := IDENTIFIER "=" assignment | equality
//	equality    := comparison (("!=" | "==") comparison)*
//	comparison  := term ((">" | ">=" | "<" | "<=") term)*
//	term        := factor (("-" | "+") factor)*
//	factor      := unary (("/" | "*") unary)*
//	unary       := ("!" | "-") unary | primary
//	primary     := NUMBER | STRING | "true" | "false" | "nil"
//	             | IDENTIFIER | "(" expression ")"
//
// A syntax error aborts the declaration being parsed; the parser reports it,
// resynchronizes at the next statement boundary, and keeps going, so one pass
// can surface several independent errors. Malformed declarations are dropped
// from the result.
package parser

import (
	"errors"
	"fmt"

	"github.com/golox-lang/golox/pkg/ast"
	"github.com/golox-lang/golox/pkg/diagnostics"
	"github.com/golox-lang/golox/pkg/token"
)

// errParse signals a local parse failure. It carries no information: the
// diagnostic has already been reported by the time it is raised.
var errParse = errors.New("parse error")

type parser struct {
	tokens   []token.Token
	current  int
	reporter diagnostics.Reporter
}

// Parse parses a whole program. Malformed statements are reported to the
// reporter and omitted; well-formed ones are kept.
func Parse(tokens []token.Token, reporter diagnostics.Reporter) []ast.Stmt {
	p := newParser(tokens, reporter)

	var statements []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// ParseREPL parses one interactive line. A line starting with a declaration
// or statement keyword parses as usual; anything else parses as one bare
// expression wrapped in an expression statement, no trailing ';' required.
func ParseREPL(tokens []token.Token, reporter diagnostics.Reporter) []ast.Stmt {
	p := newParser(tokens, reporter)

	var stmt ast.Stmt
	switch p.peek().Type {
	case token.Var, token.Fun, token.Class:
		stmt = p.declaration()
	case token.Print, token.LeftBrace, token.If, token.While, token.For, token.Return:
		stmt = p.protect(p.statement)
	default:
		stmt = p.protect(func() ast.Stmt {
			expr := p.expression()
			return &ast.Expression{Expression: expr}
		})
	}

	if stmt == nil {
		return nil
	}
	return []ast.Stmt{stmt}
}

func newParser(tokens []token.Token, reporter diagnostics.Reporter) *parser {
	if reporter == nil {
		reporter = diagnostics.ReporterFunc(func(diagnostics.Diagnostic) {})
	}
	return &parser{tokens: tokens, reporter: reporter}
}

// --- Declarations and statements ---

func (p *parser) declaration() ast.Stmt {
	return p.protect(func() ast.Stmt {
		if p.match(token.Var) {
			return p.varDeclaration()
		}
		return p.statement()
	})
}

// protect runs a parse rule, converting a raised parse failure into a nil
// statement after resynchronizing.
func (p *parser) protect(rule func() ast.Stmt) (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errParse {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return rule()
}

func (p *parser) varDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
	}

	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarDecl{Name: name, Initializer: initializer}
}

func (p *parser) statement() ast.Stmt {
	if p.match(token.Print) {
		return p.printStatement()
	}
	if p.match(token.LeftBrace) {
		return &ast.Block{Statements: p.block()}
	}
	return p.expressionStatement()
}

func (p *parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expression: value}
}

func (p *parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.Expression{Expression: expr}
}

func (p *parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return statements
}

// --- Expressions, precedence climbing ---

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

func (p *parser) assignment() ast.Expr {
	expr := p.equality()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if variable, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: variable.Name, Value: value}
		}

		// Report but do not raise: the right-hand side already parsed, so
		// parsing can continue from here.
		p.reportAt(equals, "Invalid assignment target.")
	}

	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: operator, Right: right}
	}
	return p.primary()
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Expression: expr}
	}

	panic(p.raise(p.peek(), "Expect expression."))
}

// --- Parsing infrastructure ---

func (p *parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) consume(typ token.Type, message string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.raise(p.peek(), message))
}

func (p *parser) check(typ token.Type) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *parser) reportAt(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = " at end"
	}
	p.reporter.Report(diagnostics.Diagnostic{
		Kind:    diagnostics.Parse,
		Line:    tok.Line,
		Where:   where,
		Message: message,
	})
}

// raise reports a diagnostic and returns the sentinel to panic with.
func (p *parser) raise(tok token.Token, message string) error {
	p.reportAt(tok, message)
	return errParse
}

// synchronize discards tokens until a statement boundary: either just past a
// ';', or in front of a token that can begin a declaration or statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}

		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}
