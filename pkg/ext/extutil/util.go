// Package extutil provides shared helpers for the ext sub-packages.
package extutil

import (
	"fmt"
	"math"

	"github.com/sandrolain/golox/pkg/types"
)

// Number returns args[i] as a float64, or an error naming fn.
func Number(fn string, args []types.Value, i int) (float64, error) {
	n, ok := args[i].(types.Number)
	if !ok {
		return 0, fmt.Errorf("%s: argument %d must be a number, got %s", fn, i+1, kindOf(args[i]))
	}
	return float64(n), nil
}

// String returns args[i] as a Go string, or an error naming fn.
func String(fn string, args []types.Value, i int) (string, error) {
	s, ok := args[i].(types.String)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %s", fn, i+1, kindOf(args[i]))
	}
	return string(s), nil
}

// Int returns args[i] as an int. The number must be integral.
func Int(fn string, args []types.Value, i int) (int, error) {
	f, err := Number(fn, args, i)
	if err != nil {
		return 0, err
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%s: argument %d is out of range, got %v", fn, i+1, f)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%s: argument %d must be an integer, got %v", fn, i+1, f)
	}
	return int(f), nil
}

func kindOf(v types.Value) string {
	if v == nil {
		return types.KindNil.String()
	}
	return v.Kind().String()
}
