package evaluator

import (
	"fmt"

	"github.com/sandrolain/golox/pkg/types"
)

// Environment maps names to values for one lexical scope.
//
// Environments form a chain from the innermost block or call scope up to the
// globals. A closure keeps a pointer to the environment it was defined in, so
// a frame can outlive the call that created it.
type Environment struct {
	// values stores the variables defined in this scope
	values map[string]types.Value

	// enclosing is the parent scope, nil for the globals
	enclosing *Environment
}

// NewEnvironment creates a scope nested in enclosing.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]types.Value),
		enclosing: enclosing,
	}
}

// Enclosing returns the parent scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this scope, replacing any previous binding.
func (e *Environment) Define(name string, value types.Value) {
	e.values[name] = value
}

// Get retrieves a variable, searching this scope and its parents.
func (e *Environment) Get(name types.Token) (types.Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.values[name.Lexeme]; ok {
			return value, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates an existing variable, searching this scope and its parents.
func (e *Environment) Assign(name types.Token, value types.Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Ancestor returns the environment distance hops up the chain.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the scope exactly distance hops up the chain.
func (e *Environment) GetAt(distance int, name string) types.Value {
	if env := e.Ancestor(distance); env != nil {
		if value, ok := env.values[name]; ok {
			return value
		}
	}
	return types.NilValue
}

// AssignAt writes name into the scope exactly distance hops up the chain.
func (e *Environment) AssignAt(distance int, name types.Token, value types.Value) {
	if env := e.Ancestor(distance); env != nil {
		env.values[name.Lexeme] = value
	}
}

// String returns a string representation of the environment.
func (e *Environment) String() string {
	depth := 0
	for env := e.enclosing; env != nil; env = env.enclosing {
		depth++
	}
	return fmt.Sprintf("Environment{depth=%d, values=%d}", depth, len(e.values))
}

func undefinedVariable(name types.Token) error {
	return newRuntimeError(types.ErrUndefinedVariable, name,
		fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}
