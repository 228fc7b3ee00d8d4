// Package extnumeric provides math functions for golox scripts.
package extnumeric

import (
	"context"
	"fmt"
	"math"

	"github.com/sandrolain/golox/pkg/ext/extutil"
	"github.com/sandrolain/golox/pkg/functions"
	"github.com/sandrolain/golox/pkg/types"
)

// All returns all numeric function definitions.
func All() []functions.NativeDef {
	return []functions.NativeDef{
		unary("abs", math.Abs),
		unary("floor", math.Floor),
		unary("ceil", math.Ceil),
		unary("round", math.Round),
		unary("trunc", math.Trunc),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		Sqrt(),
		Log(),
		Pow(),
		Min(),
		Max(),
		Sign(),
		Pi(),
	}
}

func unary(name string, f func(float64) float64) functions.NativeDef {
	return functions.NativeDef{
		Name:  name,
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			n, err := extutil.Number(name, args, 0)
			if err != nil {
				return nil, err
			}
			return types.Number(f(n)), nil
		},
	}
}

// Sqrt returns the definition for sqrt(n). n must not be negative.
func Sqrt() functions.NativeDef {
	return functions.NativeDef{
		Name:  "sqrt",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			n, err := extutil.Number("sqrt", args, 0)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, fmt.Errorf("sqrt: argument must not be negative")
			}
			return types.Number(math.Sqrt(n)), nil
		},
	}
}

// Log returns the definition for log(n), the natural logarithm.
func Log() functions.NativeDef {
	return functions.NativeDef{
		Name:  "log",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			n, err := extutil.Number("log", args, 0)
			if err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, fmt.Errorf("log: argument must be positive")
			}
			return types.Number(math.Log(n)), nil
		},
	}
}

// Pow returns the definition for pow(base, exp).
func Pow() functions.NativeDef {
	return binary("pow", math.Pow)
}

// Min returns the definition for min(a, b).
func Min() functions.NativeDef {
	return binary("min", math.Min)
}

// Max returns the definition for max(a, b).
func Max() functions.NativeDef {
	return binary("max", math.Max)
}

func binary(name string, f func(a, b float64) float64) functions.NativeDef {
	return functions.NativeDef{
		Name:  name,
		Arity: 2,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			a, err := extutil.Number(name, args, 0)
			if err != nil {
				return nil, err
			}
			b, err := extutil.Number(name, args, 1)
			if err != nil {
				return nil, err
			}
			return types.Number(f(a, b)), nil
		},
	}
}

// Sign returns the definition for sign(n): -1, 0 or 1.
func Sign() functions.NativeDef {
	return functions.NativeDef{
		Name:  "sign",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			n, err := extutil.Number("sign", args, 0)
			if err != nil {
				return nil, err
			}
			switch {
			case n < 0:
				return types.Number(-1), nil
			case n > 0:
				return types.Number(1), nil
			}
			return types.Number(0), nil
		},
	}
}

// Pi returns the definition for pi().
func Pi() functions.NativeDef {
	return functions.NativeDef{
		Name:  "pi",
		Arity: 0,
		Fn: func(context.Context, []types.Value) (types.Value, error) {
			return types.Number(math.Pi), nil
		},
	}
}
