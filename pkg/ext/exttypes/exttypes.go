// Package exttypes provides type inspection functions for golox scripts.
package exttypes

import (
	"context"

	"github.com/sandrolain/golox/pkg/functions"
	"github.com/sandrolain/golox/pkg/types"
)

// All returns all type function definitions.
func All() []functions.NativeDef {
	return []functions.NativeDef{
		TypeOf(),
		is("isNil", types.KindNil),
		is("isBool", types.KindBool),
		is("isNumber", types.KindNumber),
		is("isString", types.KindString),
		is("isCallable", types.KindCallable),
		is("isInstance", types.KindInstance),
	}
}

// TypeOf returns the definition for typeOf(value): "nil", "boolean", "number",
// "string", "callable" or "instance".
func TypeOf() functions.NativeDef {
	return functions.NativeDef{
		Name:  "typeOf",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			return types.String(kind(args[0]).String()), nil
		},
	}
}

func is(name string, want types.ValueKind) functions.NativeDef {
	return functions.NativeDef{
		Name:  name,
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			return types.Bool(kind(args[0]) == want), nil
		},
	}
}

func kind(v types.Value) types.ValueKind {
	if v == nil {
		return types.KindNil
	}
	return v.Kind()
}
