package interp

import (
	"fmt"

	"github.com/golox-lang/golox/pkg/token"
)

// Environment is a scoped set of variable bindings with a non-owning link to
// its enclosing scope. Define always writes the current scope; Get and Assign
// walk outward through the chain.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates an environment. A nil enclosing scope makes it the
// global scope.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Child creates a nested scope enclosed by this one.
func (e *Environment) Child() *Environment {
	return NewEnvironment(e)
}

// Define creates or overwrites a binding in this scope only. Shadowing an
// outer binding is intentional and unconditional.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get resolves a variable, walking outward through enclosing scopes. An
// unbound name is a runtime error citing the identifier token.
func (e *Environment) Get(name token.Token) (Value, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{
		Token:   name,
		Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}

// Assign updates the nearest existing binding for the name, walking outward.
// Assigning an undeclared name is a runtime error.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return &RuntimeError{
		Token:   name,
		Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}
