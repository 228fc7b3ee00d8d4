// Package functions provides types for registering native functions.
//
// Native functions are Go functions exposed to scripts as ordinary callable
// globals. The interpreter always installs the builtin clock function; hosts
// can register their own through [evaluator.WithNative].
//
// # Example
//
//	interp := evaluator.New(
//	    evaluator.WithNative("double", 1, func(ctx context.Context, args []types.Value) (types.Value, error) {
//	        n, ok := args[0].(types.Number)
//	        if !ok {
//	            return nil, errors.New("double expects a number")
//	        }
//	        return n * 2, nil
//	    }),
//	)
package functions

import (
	"context"
	"time"

	"github.com/sandrolain/golox/pkg/types"
)

// NativeFunc is the signature for native functions.
// args holds exactly as many values as the declared arity.
type NativeFunc func(ctx context.Context, args []types.Value) (types.Value, error)

// NativeDef describes a native function together with its arity.
type NativeDef struct {
	// Name is the global name the function is bound to.
	Name string
	// Arity is the exact number of arguments the function takes.
	Arity int
	// Fn is the implementation.
	Fn NativeFunc
}

// Clock returns the clock builtin: a zero-argument function returning the
// seconds elapsed since the Unix epoch as read from now.
func Clock(now func() time.Time) NativeDef {
	if now == nil {
		now = time.Now
	}
	return NativeDef{
		Name:  "clock",
		Arity: 0,
		Fn: func(_ context.Context, _ []types.Value) (types.Value, error) {
			return types.Number(float64(now().UnixNano()) / float64(time.Second)), nil
		},
	}
}

// Builtins returns the functions every interpreter starts with.
func Builtins(now func() time.Time) []NativeDef {
	return []NativeDef{Clock(now)}
}
