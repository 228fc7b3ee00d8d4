package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golox/pkg/types"
)

func TestArenaAllocAcrossChunks(t *testing.T) {
	a := types.NewArena()
	assert.Nil(t, a.Node(types.NoNode))
	assert.Equal(t, types.NodeInvalid, a.Kind(types.NoNode))

	var ids []types.NodeID
	for i := 0; i < 200; i++ {
		tok := types.Token{Kind: types.TokenNumber, Lexeme: fmt.Sprint(i)}
		ids = append(ids, a.Alloc(types.NodeLiteral, tok))
	}
	require.Equal(t, 200, a.Len())
	assert.Equal(t, types.NodeID(1), ids[0])

	// Pointers handed out earlier stay valid after new chunks are added.
	first := a.Node(ids[0])
	for i := 0; i < 100; i++ {
		a.Alloc(types.NodeVariable, types.Token{})
	}
	assert.Same(t, first, a.Node(ids[0]))

	for i, id := range ids {
		assert.Equal(t, fmt.Sprint(i), a.Node(id).Token.Lexeme)
		assert.Equal(t, types.NodeLiteral, a.Kind(id))
	}
}

func TestArenaNodeOutOfRangePanics(t *testing.T) {
	a := types.NewArena()
	assert.Panics(t, func() { a.Node(5) })
}

func TestArenaLists(t *testing.T) {
	a := types.NewArena()
	assert.Nil(t, a.IDs(0))
	assert.Equal(t, 0, a.Blocks())

	first := a.List([]types.NodeID{1, 2, 3})
	second := a.List([]types.NodeID{4, 5})
	assert.Equal(t, []types.NodeID{1, 2, 3}, first)
	assert.Equal(t, []types.NodeID{4, 5}, second)
	assert.Equal(t, 1, a.Blocks())
	assert.Equal(t, 8<<10, a.SlabBytes())

	// Appending to a list must not clobber its neighbour.
	grown := append(first, 99)
	assert.Equal(t, []types.NodeID{1, 2, 3, 99}, grown)
	assert.Equal(t, []types.NodeID{4, 5}, second)
	assert.Equal(t, 3, cap(first))
}

func TestArenaOversizedList(t *testing.T) {
	a := types.NewArena()
	big := a.IDs(5000)
	assert.Len(t, big, 5000)
	assert.Equal(t, 1, a.Blocks())
	// 2048 IDs per default block, doubled until 5000 fit: 8192 IDs.
	assert.Equal(t, 8192*4, a.SlabBytes())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    types.Value
		want bool
	}{
		{nil, false},
		{types.NilValue, false},
		{types.Bool(false), false},
		{types.Bool(true), true},
		{types.Number(0), true},
		{types.String(""), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.Truthy(tt.v), "Truthy(%v)", tt.v)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b types.Value
		want bool
	}{
		{nil, types.NilValue, true},
		{types.NilValue, types.NilValue, true},
		{types.NilValue, types.Bool(false), false},
		{types.Number(1), types.Number(1), true},
		{types.Number(1), types.String("1"), false},
		{types.String("a"), types.String("a"), true},
		{types.Bool(true), types.Bool(true), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.Equal(tt.a, tt.b), "Equal(%v, %v)", tt.a, tt.b)
	}
}

func TestNumberString(t *testing.T) {
	tests := map[types.Number]string{
		3:       "3",
		-0.5:    "-0.5",
		2.5e-7:  "0.00000025",
		1234567: "1234567",
		1e21:    "1000000000000000000000",
	}
	for n, want := range tests {
		assert.Equal(t, want, n.String())
	}
	assert.Equal(t, "nil", types.Stringify(nil))
}

func TestErrorFormatting(t *testing.T) {
	eof := types.Token{Kind: types.TokenEOF, Line: 4}
	ident := types.Token{Kind: types.TokenIdentifier, Lexeme: "x", Line: 2}

	assert.Equal(t, "[line 4] Error at end: Expect ';'.",
		types.NewTokenError(types.ErrExpectedToken, eof, "Expect ';'.").Error())
	assert.Equal(t, "[line 2] Error at 'x': Bad.",
		types.NewTokenError(types.ErrExpectedToken, ident, "Bad.").Error())
	assert.Equal(t, "[line 1] Error: Unexpected character.",
		types.NewError(types.ErrUnexpectedChar, "Unexpected character.", 1).Error())
}

func TestErrorList(t *testing.T) {
	var list types.ErrorList
	assert.NoError(t, list.Err())

	cause := errors.New("io")
	list.Add(types.NewError(types.ErrUnexpectedChar, "first", 1).WithCause(cause))
	list.Add(types.NewError(types.ErrStringNotClosed, "second", 2))

	err := list.Err()
	require.Error(t, err)
	assert.Equal(t, "[line 1] Error: first\n[line 2] Error: second", err.Error())

	var single *types.Error
	require.True(t, errors.As(err, &single))
	assert.Equal(t, types.ErrUnexpectedChar, single.Code)
	assert.ErrorIs(t, err, cause)
}
