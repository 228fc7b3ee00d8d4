// Package ext provides optional native function libraries for golox.
//
// Scripts only see clock() by default. The libraries below are installed on
// request, grouped by category:
//   - math   – abs, floor, ceil, round, sqrt, pow, min, max, pi, …
//   - string – len, upper, lower, substr, indexOf, str, num, …
//   - types  – typeOf, isNil, isNumber, isString, …
//   - crypto – uuid, hash, hmac
//
// # Integration – all categories
//
//	interp := evaluator.New(ext.WithAll())
//
// # Integration – by name, as the command line does
//
//	opt, err := ext.WithCategories("math", "string")
package ext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/ext/extcrypto"
	"github.com/sandrolain/golox/pkg/ext/extnumeric"
	"github.com/sandrolain/golox/pkg/ext/extstring"
	"github.com/sandrolain/golox/pkg/ext/exttypes"
	"github.com/sandrolain/golox/pkg/functions"
)

var categories = map[string]func() []functions.NativeDef{
	"math":   extnumeric.All,
	"string": extstring.All,
	"types":  exttypes.All,
	"crypto": extcrypto.All,
}

// Categories returns the category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the definitions of the named categories, in the given order.
func Lookup(names ...string) ([]functions.NativeDef, error) {
	var defs []functions.NativeDef
	for _, name := range names {
		all, ok := categories[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown extension %q (available: %s)", name, strings.Join(Categories(), ", "))
		}
		defs = append(defs, all()...)
	}
	return defs, nil
}

// All returns the definitions of every category.
func All() []functions.NativeDef {
	defs, _ := Lookup(Categories()...)
	return defs
}

// With returns an EvalOption that installs defs as globals.
func With(defs []functions.NativeDef) evaluator.EvalOption {
	return func(opts *evaluator.EvalOptions) {
		opts.Natives = append(opts.Natives, defs...)
	}
}

// WithAll returns an EvalOption that installs every category.
func WithAll() evaluator.EvalOption {
	return With(All())
}

// WithCategories returns an EvalOption that installs the named categories.
func WithCategories(names ...string) (evaluator.EvalOption, error) {
	defs, err := Lookup(names...)
	if err != nil {
		return nil, err
	}
	return With(defs), nil
}

// WithMath returns an EvalOption for the math functions.
func WithMath() evaluator.EvalOption {
	return With(extnumeric.All())
}

// WithString returns an EvalOption for the string functions.
func WithString() evaluator.EvalOption {
	return With(extstring.All())
}

// WithTypes returns an EvalOption for the type functions.
func WithTypes() evaluator.EvalOption {
	return With(exttypes.All())
}

// WithCrypto returns an EvalOption for the crypto functions.
func WithCrypto() evaluator.EvalOption {
	return With(extcrypto.All())
}
