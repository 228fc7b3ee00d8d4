// Package types defines the core data model of golox.
//
// This package contains type definitions for:
//   - Token and TokenKind: lexical tokens produced by the lexer
//   - Value: the closed set of literal and runtime values
//   - Node and Arena: the arena-allocated AST addressed by NodeID
//   - Program: a compiled unit (arena, statements, resolved locals)
//   - Error and ErrorList: structured diagnostics with codes
package types

// Program represents a compiled program.
//
// A Program owns the Arena its nodes live in and the Locals table filled in
// by the resolver. Once resolved it is never modified and can be executed
// any number of times by independent interpreters.
type Program struct {
	arena      *Arena
	statements []NodeID
	source     string
	locals     *Locals
}

// NewProgram creates a new Program over the given arena and top-level
// statements.
func NewProgram(arena *Arena, statements []NodeID, source string) *Program {
	return &Program{
		arena:      arena,
		statements: statements,
		source:     source,
		locals:     NewLocals(),
	}
}

// Arena returns the arena holding the program's nodes.
func (p *Program) Arena() *Arena {
	return p.arena
}

// Statements returns the top-level statements in source order.
func (p *Program) Statements() []NodeID {
	return p.statements
}

// Node is a shorthand for p.Arena().Node(id).
func (p *Program) Node(id NodeID) *Node {
	return p.arena.Node(id)
}

// Locals returns the scope-distance table of the program.
func (p *Program) Locals() *Locals {
	return p.locals
}

// Source returns the original source code of the program.
func (p *Program) Source() string {
	return p.source
}

// String returns a string representation of the program.
func (p *Program) String() string {
	return p.source
}

// Locals maps variable-referencing nodes (Variable, Assign, This, Super) to
// the number of scopes between the reference and its declaration. A node
// without an entry refers to a global.
type Locals struct {
	depths map[NodeID]int
}

// NewLocals creates an empty table.
func NewLocals() *Locals {
	return &Locals{depths: make(map[NodeID]int)}
}

// Set records the scope distance of id.
func (l *Locals) Set(id NodeID, depth int) {
	l.depths[id] = depth
}

// Depth returns the scope distance of id, if the resolver recorded one.
func (l *Locals) Depth(id NodeID) (int, bool) {
	d, ok := l.depths[id]
	return d, ok
}

// Len returns the number of resolved references.
func (l *Locals) Len() int {
	return len(l.depths)
}
