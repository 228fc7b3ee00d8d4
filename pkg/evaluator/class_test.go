package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/types"
)

func TestClassFindMethodWalksSuperclasses(t *testing.T) {
	prog := compile(t, "fun m() {} fun n() {}")
	m := evaluator.NewFunction(prog, prog.Statements()[0], nil, false)
	n := evaluator.NewFunction(prog, prog.Statements()[1], nil, false)

	base := evaluator.NewClass("Base", nil, map[string]*evaluator.Function{"m": m})
	derived := evaluator.NewClass("Derived", base, map[string]*evaluator.Function{"n": n})

	got, ok := derived.FindMethod("m")
	require.True(t, ok)
	assert.Same(t, m, got)

	got, ok = derived.FindMethod("n")
	require.True(t, ok)
	assert.Same(t, n, got)

	_, ok = base.FindMethod("n")
	assert.False(t, ok)

	assert.Same(t, base, derived.Superclass())
	assert.Equal(t, "Derived", derived.String())
	assert.Equal(t, 0, derived.Arity())
}

func TestInstanceFields(t *testing.T) {
	class := evaluator.NewClass("Thing", nil, nil)
	instance := evaluator.NewInstance(class)

	_, err := instance.Get(name("size"))
	require.Error(t, err)

	instance.Set(name("size"), types.Number(3))
	v, err := instance.Get(name("size"))
	require.NoError(t, err)
	assert.Equal(t, types.Number(3), v)

	assert.Equal(t, "Thing instance", instance.String())
	assert.Equal(t, types.KindInstance, instance.Kind())
	assert.Same(t, class, instance.Class())
}

func TestFunctionMetadata(t *testing.T) {
	prog := compile(t, "fun area(w, h) { return w * h; }")
	fn := evaluator.NewFunction(prog, prog.Statements()[0], nil, false)

	assert.Equal(t, "area", fn.Name())
	assert.Equal(t, 2, fn.Arity())
	assert.Equal(t, "<fn area>", fn.String())
	assert.Equal(t, types.KindCallable, fn.Kind())

	var _ evaluator.Callable = fn
	var _ evaluator.Callable = evaluator.NewClass("C", nil, nil)
}
