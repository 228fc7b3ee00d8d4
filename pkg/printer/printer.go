// Package printer renders a golox AST as parenthesised prefix notation.
//
// The output is meant for debugging the parser: every node becomes a list
// whose head names the construct, so `1 + 2 * 3` prints as (+ 1 (* 2 3)).
package printer

import (
	"strings"

	"github.com/sandrolain/golox/pkg/types"
)

// Print renders every top-level statement of prog, one per line.
func Print(prog *types.Program) string {
	var sb strings.Builder
	for _, id := range prog.Statements() {
		write(&sb, prog.Arena(), id)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Node renders the subtree rooted at id.
func Node(arena *types.Arena, id types.NodeID) string {
	var sb strings.Builder
	write(&sb, arena, id)
	return sb.String()
}

func write(sb *strings.Builder, arena *types.Arena, id types.NodeID) {
	n := arena.Node(id)
	if n == nil {
		sb.WriteString("nil")
		return
	}

	switch n.Kind {
	case types.NodeLiteral:
		if n.Value == nil {
			sb.WriteString("nil")
			return
		}
		if s, ok := n.Value.(types.String); ok {
			sb.WriteString(n.Token.Lexeme[:1])
			sb.WriteString(string(s))
			sb.WriteString(n.Token.Lexeme[:1])
			return
		}
		sb.WriteString(n.Value.String())

	case types.NodeVariable, types.NodeThis:
		sb.WriteString(n.Token.Lexeme)

	case types.NodeUnary:
		parens(sb, arena, n.Token.Lexeme, n.Right)

	case types.NodeBinary, types.NodeLogical:
		parens(sb, arena, n.Token.Lexeme, n.Left, n.Right)

	case types.NodeGrouping:
		parens(sb, arena, "group", n.Left)

	case types.NodeAssign:
		sb.WriteString("(= ")
		sb.WriteString(n.Token.Lexeme)
		sb.WriteByte(' ')
		write(sb, arena, n.Right)
		sb.WriteByte(')')

	case types.NodeCall:
		parens(sb, arena, "call", append([]types.NodeID{n.Left}, n.List...)...)

	case types.NodeGet:
		sb.WriteString("(. ")
		write(sb, arena, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Token.Lexeme)
		sb.WriteByte(')')

	case types.NodeSet:
		sb.WriteString("(= (. ")
		write(sb, arena, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Token.Lexeme)
		sb.WriteString(") ")
		write(sb, arena, n.Right)
		sb.WriteByte(')')

	case types.NodeSuper:
		sb.WriteString("(super ")
		sb.WriteString(n.Name.Lexeme)
		sb.WriteByte(')')

	case types.NodeExprStmt:
		parens(sb, arena, ";", n.Left)

	case types.NodePrint:
		parens(sb, arena, "print", n.Left)

	case types.NodeVar:
		sb.WriteString("(var ")
		sb.WriteString(n.Token.Lexeme)
		if n.Left != types.NoNode {
			sb.WriteByte(' ')
			write(sb, arena, n.Left)
		}
		sb.WriteByte(')')

	case types.NodeBlock:
		parens(sb, arena, "block", n.List...)

	case types.NodeIf:
		if n.Right == types.NoNode {
			parens(sb, arena, "if", n.Cond, n.Left)
		} else {
			parens(sb, arena, "if", n.Cond, n.Left, n.Right)
		}

	case types.NodeWhile:
		parens(sb, arena, "while", n.Cond, n.Left)

	case types.NodeReturn:
		if n.Left == types.NoNode {
			sb.WriteString("(return)")
		} else {
			parens(sb, arena, "return", n.Left)
		}

	case types.NodeFunction:
		writeFunction(sb, arena, n)

	case types.NodeClass:
		sb.WriteString("(class ")
		sb.WriteString(n.Token.Lexeme)
		if n.Left != types.NoNode {
			sb.WriteString(" < ")
			write(sb, arena, n.Left)
		}
		for _, m := range n.List {
			sb.WriteByte(' ')
			write(sb, arena, m)
		}
		sb.WriteByte(')')

	default:
		sb.WriteString("(" + n.Kind.String() + ")")
	}
}

func writeFunction(sb *strings.Builder, arena *types.Arena, n *types.Node) {
	sb.WriteString("(fun ")
	sb.WriteString(n.Token.Lexeme)
	sb.WriteString(" (")
	for i, p := range n.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Lexeme)
	}
	sb.WriteByte(')')
	for _, stmt := range n.List {
		sb.WriteByte(' ')
		write(sb, arena, stmt)
	}
	sb.WriteByte(')')
}

func parens(sb *strings.Builder, arena *types.Arena, name string, ids ...types.NodeID) {
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, id := range ids {
		sb.WriteByte(' ')
		write(sb, arena, id)
	}
	sb.WriteByte(')')
}
