package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/golox/pkg/functions"
	"github.com/sandrolain/golox/pkg/types"
)

// Callable is implemented by every value that can be called: user functions,
// bound methods, classes and native functions.
type Callable interface {
	types.Value
	// Arity is the exact number of arguments Call expects.
	Arity() int
	// Call invokes the callable. args has exactly Arity() elements.
	Call(ctx context.Context, in *Interpreter, args []types.Value) (types.Value, error)
}

// Function is a user-defined function or method together with the
// environment it closes over.
type Function struct {
	decl          types.NodeID
	prog          *types.Program
	closure       *Environment
	isInitializer bool
}

// NewFunction creates a function for the declaration decl of prog.
func NewFunction(prog *types.Program, decl types.NodeID, closure *Environment, isInitializer bool) *Function {
	return &Function{
		decl:          decl,
		prog:          prog,
		closure:       closure,
		isInitializer: isInitializer,
	}
}

func (f *Function) declaration() *types.Node {
	return f.prog.Node(f.decl)
}

// Name returns the declared name.
func (f *Function) Name() string {
	return f.declaration().Token.Lexeme
}

// Kind implements types.Value.
func (f *Function) Kind() types.ValueKind { return types.KindCallable }

// String implements types.Value.
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Name())
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.declaration().Params)
}

// Bind returns a copy of f whose closure defines "this" as instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.prog, f.decl, env, f.isInitializer)
}

// Call runs the function body in a fresh environment enclosed by the
// closure, not by the caller's environment. An initializer always yields the
// bound instance.
func (f *Function) Call(ctx context.Context, in *Interpreter, args []types.Value) (types.Value, error) {
	decl := f.declaration()

	env := NewEnvironment(f.closure)
	for i, param := range decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	prev := in.prog
	in.prog = f.prog
	defer func() { in.prog = prev }()

	out, err := in.executeBlock(ctx, decl.List, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if out.returned {
		return out.value, nil
	}
	return types.NilValue, nil
}

// NativeFunction adapts a functions.NativeDef to the Callable protocol.
type NativeFunction struct {
	def functions.NativeDef
}

// NewNativeFunction wraps def.
func NewNativeFunction(def functions.NativeDef) *NativeFunction {
	return &NativeFunction{def: def}
}

// Kind implements types.Value.
func (n *NativeFunction) Kind() types.ValueKind { return types.KindCallable }

// String implements types.Value.
func (n *NativeFunction) String() string { return "<native fn>" }

// Arity returns the declared arity.
func (n *NativeFunction) Arity() int { return n.def.Arity }

// Call invokes the Go implementation.
func (n *NativeFunction) Call(ctx context.Context, _ *Interpreter, args []types.Value) (types.Value, error) {
	v, err := n.def.Fn(ctx, args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return types.NilValue, nil
	}
	return v, nil
}
