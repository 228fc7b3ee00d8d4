// Package extstring provides string functions for golox scripts.
//
// Lengths and indexes count runes, not bytes.
package extstring

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sandrolain/golox/pkg/ext/extutil"
	"github.com/sandrolain/golox/pkg/functions"
	"github.com/sandrolain/golox/pkg/types"
)

// All returns all string function definitions.
func All() []functions.NativeDef {
	return []functions.NativeDef{
		Len(),
		mapString("upper", strings.ToUpper),
		mapString("lower", strings.ToLower),
		mapString("trim", strings.TrimSpace),
		Substr(),
		IndexOf(),
		StartsWith(),
		EndsWith(),
		Repeat(),
		Str(),
		Num(),
	}
}

// Len returns the definition for len(str).
func Len() functions.NativeDef {
	return functions.NativeDef{
		Name:  "len",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String("len", args, 0)
			if err != nil {
				return nil, err
			}
			return types.Number(utf8.RuneCountInString(s)), nil
		},
	}
}

func mapString(name string, f func(string) string) functions.NativeDef {
	return functions.NativeDef{
		Name:  name,
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String(name, args, 0)
			if err != nil {
				return nil, err
			}
			return types.String(f(s)), nil
		},
	}
}

// Substr returns the definition for substr(str, start, length).
// Out of range bounds are clipped.
func Substr() functions.NativeDef {
	return functions.NativeDef{
		Name:  "substr",
		Arity: 3,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String("substr", args, 0)
			if err != nil {
				return nil, err
			}
			start, err := extutil.Int("substr", args, 1)
			if err != nil {
				return nil, err
			}
			length, err := extutil.Int("substr", args, 2)
			if err != nil {
				return nil, err
			}
			runes := []rune(s)
			start = clamp(start, 0, len(runes))
			length = clamp(length, 0, len(runes)-start)
			end := start + length
			return types.String(runes[start:end]), nil
		},
	}
}

// IndexOf returns the definition for indexOf(str, search).
// Returns -1 when not found.
func IndexOf() functions.NativeDef {
	return functions.NativeDef{
		Name:  "indexOf",
		Arity: 2,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String("indexOf", args, 0)
			if err != nil {
				return nil, err
			}
			search, err := extutil.String("indexOf", args, 1)
			if err != nil {
				return nil, err
			}
			idx := strings.Index(s, search)
			if idx < 0 {
				return types.Number(-1), nil
			}
			return types.Number(utf8.RuneCountInString(s[:idx])), nil
		},
	}
}

// StartsWith returns the definition for startsWith(str, prefix).
func StartsWith() functions.NativeDef {
	return predicate("startsWith", strings.HasPrefix)
}

// EndsWith returns the definition for endsWith(str, suffix).
func EndsWith() functions.NativeDef {
	return predicate("endsWith", strings.HasSuffix)
}

func predicate(name string, f func(s, t string) bool) functions.NativeDef {
	return functions.NativeDef{
		Name:  name,
		Arity: 2,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String(name, args, 0)
			if err != nil {
				return nil, err
			}
			t, err := extutil.String(name, args, 1)
			if err != nil {
				return nil, err
			}
			return types.Bool(f(s, t)), nil
		},
	}
}

// MaxRepeatBytes bounds the length of a string built by repeat.
const MaxRepeatBytes = 64 << 20

// Repeat returns the definition for repeat(str, count).
func Repeat() functions.NativeDef {
	return functions.NativeDef{
		Name:  "repeat",
		Arity: 2,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String("repeat", args, 0)
			if err != nil {
				return nil, err
			}
			n, err := extutil.Int("repeat", args, 1)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, fmt.Errorf("repeat: count must not be negative")
			}
			if n > 0 && len(s) > MaxRepeatBytes/n {
				return nil, fmt.Errorf("repeat: result longer than %d bytes", MaxRepeatBytes)
			}
			return types.String(strings.Repeat(s, n)), nil
		},
	}
}

// Str returns the definition for str(value): the printed form of any value.
func Str() functions.NativeDef {
	return functions.NativeDef{
		Name:  "str",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			return types.String(types.Stringify(args[0])), nil
		},
	}
}

// Num returns the definition for num(str). Unparseable input yields nil.
func Num() functions.NativeDef {
	return functions.NativeDef{
		Name:  "num",
		Arity: 1,
		Fn: func(_ context.Context, args []types.Value) (types.Value, error) {
			s, err := extutil.String("num", args, 0)
			if err != nil {
				return nil, err
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return types.NilValue, nil
			}
			return types.Number(f), nil
		},
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
