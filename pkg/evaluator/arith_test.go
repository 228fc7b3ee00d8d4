package evaluator_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golox/pkg/types"
)

// arith is a random arithmetic expression over Number literals.
type arith struct {
	op    byte // 0 for a literal
	left  *arith
	right *arith
	value float64
}

func randomArith(r *rand.Rand, depth int) *arith {
	if depth == 0 || r.Intn(4) == 0 {
		return &arith{value: float64(r.Intn(400)) / 4}
	}
	return &arith{
		op:    "+-*/"[r.Intn(4)],
		left:  randomArith(r, depth-1),
		right: randomArith(r, depth-1),
	}
}

func precedence(op byte) int {
	if op == '*' || op == '/' {
		return 2
	}
	return 1
}

// source renders e with only the parentheses that precedence and left
// associativity require.
func (e *arith) source(parent int, right bool) string {
	if e.op == 0 {
		return strconv.FormatFloat(e.value, 'f', -1, 64)
	}
	p := precedence(e.op)
	s := e.left.source(p, false) + " " + string(e.op) + " " + e.right.source(p, true)
	if p < parent || (right && p == parent) {
		return "(" + s + ")"
	}
	return s
}

func (e *arith) eval() float64 {
	if e.op == 0 {
		return e.value
	}
	l, r := e.left.eval(), e.right.eval()
	// Explicit conversions round every step, so no fused multiply-add.
	switch e.op {
	case '+':
		return float64(l + r)
	case '-':
		return float64(l - r)
	case '*':
		return float64(l * r)
	default:
		return float64(l / r)
	}
}

func TestArithmeticMatchesFloat64(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	for i := 0; i < 500; i++ {
		e := randomArith(r, 5)
		src := "print " + e.source(0, false) + ";"

		out, err := run(t, src)
		require.NoError(t, err, src)
		assert.Equal(t, types.Number(e.eval()).String()+"\n", out, src)
	}
}

func TestArithmeticSourceRendering(t *testing.T) {
	// a - (b - c) keeps its parentheses; (a - b) - c does not need them.
	lit := func(v float64) *arith { return &arith{value: v} }
	nested := &arith{op: '-', left: lit(1), right: &arith{op: '-', left: lit(2), right: lit(3)}}
	assert.Equal(t, "1 - (2 - 3)", nested.source(0, false))

	flat := &arith{op: '-', left: &arith{op: '-', left: lit(1), right: lit(2)}, right: lit(3)}
	assert.Equal(t, "1 - 2 - 3", flat.source(0, false))

	mixed := &arith{op: '*', left: &arith{op: '+', left: lit(1), right: lit(2)}, right: lit(0.25)}
	assert.Equal(t, "(1 + 2) * 0.25", mixed.source(0, false))
	assert.Equal(t, 0.75, mixed.eval())
}
