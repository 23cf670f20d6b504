package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/golox-lang/golox/pkg/ast"
	"github.com/golox-lang/golox/pkg/token"
)

// RuntimeError is an evaluation failure carrying the offending token for its
// source line. The first one raised stops the current statement batch.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Interpreter walks statement and expression trees against an environment
// chain. It is single-threaded; one evaluation owns the chain exclusively.
type Interpreter struct {
	globals *Environment
	out     io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print statement output. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// New creates an Interpreter with a fresh global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals: NewEnvironment(nil),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Globals exposes the interpreter's outermost environment. The REPL driver
// keeps it alive across lines.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// Interpret executes statements in order against the global scope. The first
// runtime error stops the batch and is returned; side effects of prior
// statements stand.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := i.execute(stmt, i.globals); err != nil {
			return err
		}
	}
	return nil
}

// InterpretREPL is Interpret with the interactive convenience: a batch that
// is exactly one bare expression statement has its value displayed instead of
// silently discarded.
func (i *Interpreter) InterpretREPL(statements []ast.Stmt) error {
	if len(statements) == 1 {
		if exprStmt, ok := statements[0].(*ast.Expression); ok {
			value, err := i.evaluate(exprStmt.Expression, i.globals)
			if err != nil {
				return err
			}
			fmt.Fprintln(i.out, Stringify(value))
			return nil
		}
	}
	return i.Interpret(statements)
}

// Evaluate computes a single expression against the global scope.
func (i *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	return i.evaluate(expr, i.globals)
}

func (i *Interpreter) execute(stmt ast.Stmt, env *Environment) error {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := i.evaluate(s.Expression, env)
		return err

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, Stringify(value))
		return nil

	case *ast.VarDecl:
		var value Value = NewNil()
		if s.Initializer != nil {
			var err error
			value, err = i.evaluate(s.Initializer, env)
			if err != nil {
				return err
			}
		}
		env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.Block:
		// The child scope lives only for this block; passing it down and
		// returning leaves the caller's env untouched even on error.
		return i.executeBlock(s.Statements, env.Child())

	default:
		return fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	for _, stmt := range statements {
		if err := i.execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluate(expr ast.Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return i.evaluate(e.Expression, env)

	case *ast.Unary:
		return i.evalUnary(e, env)

	case *ast.Binary:
		return i.evalBinary(e, env)

	case *ast.Variable:
		return env.Get(e.Name)

	case *ast.Assign:
		value, err := i.evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(e.Name, value); err != nil {
			return nil, err
		}
		// Assignment is an expression; it yields the assigned value.
		return value, nil

	default:
		return nil, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return NewNil()
	case bool:
		return NewBool(val)
	case float64:
		return NewNumber(val)
	case string:
		return NewString(val)
	default:
		return NewNil()
	}
}

func (i *Interpreter) evalUnary(e *ast.Unary, env *Environment) (Value, error) {
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Bang:
		return NewBool(!Truthy(right)), nil
	case token.Minus:
		num, ok := right.(NumberValue)
		if !ok {
			return nil, &RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return NewNumber(-num.Value), nil
	}

	return nil, &RuntimeError{Token: e.Operator, Message: "Unsupported unary operator."}
}

func (i *Interpreter) evalBinary(e *ast.Binary, env *Environment) (Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.BangEqual:
		return NewBool(!Equal(left, right)), nil
	case token.EqualEqual:
		return NewBool(Equal(left, right)), nil

	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
		token.Minus, token.Star, token.Slash:
		lNum, lOk := left.(NumberValue)
		rNum, rOk := right.(NumberValue)
		if !lOk || !rOk {
			return nil, &RuntimeError{Token: e.Operator, Message: "Operands must be numbers."}
		}
		switch e.Operator.Type {
		case token.Greater:
			return NewBool(lNum.Value > rNum.Value), nil
		case token.GreaterEqual:
			return NewBool(lNum.Value >= rNum.Value), nil
		case token.Less:
			return NewBool(lNum.Value < rNum.Value), nil
		case token.LessEqual:
			return NewBool(lNum.Value <= rNum.Value), nil
		case token.Minus:
			return NewNumber(lNum.Value - rNum.Value), nil
		case token.Star:
			return NewNumber(lNum.Value * rNum.Value), nil
		case token.Slash:
			if rNum.Value == 0 {
				return nil, &RuntimeError{Token: e.Operator, Message: "Division by zero."}
			}
			return NewNumber(lNum.Value / rNum.Value), nil
		}

	case token.Plus:
		if lNum, ok := left.(NumberValue); ok {
			if rNum, ok := right.(NumberValue); ok {
				return NewNumber(lNum.Value + rNum.Value), nil
			}
		}
		// Either side being a string concatenates both display forms.
		_, lStr := left.(StringValue)
		_, rStr := right.(StringValue)
		if lStr || rStr {
			return NewString(Stringify(left) + Stringify(right)), nil
		}
		return nil, &RuntimeError{
			Token: e.Operator,
			Message: fmt.Sprintf(
				"Operands must be two numbers, two strings, or one number and one string; got %s and %s.",
				typeName(left), typeName(right)),
		}
	}

	return nil, &RuntimeError{Token: e.Operator, Message: "Unsupported binary operator."}
}
