// Package ast defines the Lox AST node types.
//
// Expr and Stmt are closed variant sets: the sealed marker methods keep all
// implementations in this package, so evaluator type switches are exhaustive
// over a fixed set of shapes. Nodes own their children exclusively; operator
// and name tokens are referenced for diagnostics only.
package ast

import "github.com/golox-lang/golox/pkg/token"

// Expr is the interface for all expression nodes.
type Expr interface {
	exprNode() // sealed marker
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	stmtNode() // sealed marker
}

// --- Expressions ---

// Literal is a number, string, boolean, or nil constant. Value is float64,
// string, bool, or nil, matching the runtime value kinds.
type Literal struct {
	Value any
}

func (*Literal) exprNode() {}

// Grouping is a parenthesized expression.
type Grouping struct {
	Expression Expr
}

func (*Grouping) exprNode() {}

// Unary is a prefix operator application ('!' or '-').
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (*Unary) exprNode() {}

// Binary is an infix operator application.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Binary) exprNode() {}

// Variable is a read of a named binding.
type Variable struct {
	Name token.Token
}

func (*Variable) exprNode() {}

// Assign writes a named binding and yields the assigned value.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) exprNode() {}

// --- Statements ---

// Expression is an expression evaluated for its side effects.
type Expression struct {
	Expression Expr
}

func (*Expression) stmtNode() {}

// PrintStmt evaluates its expression and emits the display form as a line.
type PrintStmt struct {
	Expression Expr
}

func (*PrintStmt) stmtNode() {}

// VarDecl declares a variable in the current scope. Initializer may be nil,
// in which case the variable starts out as nil.
type VarDecl struct {
	Name        token.Token
	Initializer Expr
}

func (*VarDecl) stmtNode() {}

// Block executes its statements in a fresh child scope.
type Block struct {
	Statements []Stmt
}

func (*Block) stmtNode() {}
