package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/golox/pkg/types"
)

// Class is a runtime class: a name, an optional superclass and a method
// table. Calling a class constructs an instance.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

// NewClass creates a class.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	if methods == nil {
		methods = make(map[string]*Function)
	}
	return &Class{name: name, superclass: superclass, methods: methods}
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Superclass returns the parent class or nil.
func (c *Class) Superclass() *Class { return c.superclass }

// FindMethod looks name up in this class, then along the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	for class := c; class != nil; class = class.superclass {
		if m, ok := class.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Kind implements types.Value.
func (c *Class) Kind() types.ValueKind { return types.KindCallable }

// String implements types.Value.
func (c *Class) String() string { return c.name }

// Arity is the arity of init, or zero without one.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call creates a new instance and runs init on it when present.
func (c *Class) Call(ctx context.Context, in *Interpreter, args []types.Value) (types.Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(ctx, in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an object created by calling a class.
type Instance struct {
	class  *Class
	fields map[string]types.Value
}

// NewInstance creates an instance of class with no fields.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]types.Value)}
}

// Class returns the class the instance was created from.
func (i *Instance) Class() *Class { return i.class }

// Get reads a property. Fields shadow methods; methods come back bound to i.
func (i *Instance) Get(name types.Token) (types.Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, newRuntimeError(types.ErrUndefinedProperty, name,
		fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

// Set creates or overwrites a field.
func (i *Instance) Set(name types.Token, value types.Value) {
	i.fields[name.Lexeme] = value
}

// Kind implements types.Value.
func (i *Instance) Kind() types.ValueKind { return types.KindInstance }

// String implements types.Value.
func (i *Instance) String() string { return i.class.name + " instance" }
