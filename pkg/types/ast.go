package types

import "fmt"

// NodeID identifies a node inside an Arena. The zero value, NoNode, marks an
// absent child (a missing else branch, an initializer-less var, ...).
type NodeID uint32

// NoNode is the absent node.
const NoNode NodeID = 0

// NodeKind identifies the type of an AST node.
type NodeKind uint8

// AST node kinds. Expression kinds come first, statement kinds follow.
const (
	NodeInvalid NodeKind = iota

	// Expressions
	NodeLiteral  // Value
	NodeLogical  // Left Token Right (and, or)
	NodeUnary    // Token Right
	NodeBinary   // Left Token Right
	NodeCall     // Left(List); Token is the closing paren
	NodeGrouping // ( Left )
	NodeVariable // Token
	NodeAssign   // Token = Right
	NodeGet      // Left . Token
	NodeSet      // Left . Token = Right
	NodeSuper    // Token . Name
	NodeThis     // Token

	// Statements
	NodeExprStmt // Left ;
	NodeIf       // if (Cond) Left else Right
	NodeFunction // fun Token(Params) { List }
	NodePrint    // print Left ;
	NodeReturn   // Token Left ;
	NodeWhile    // while (Cond) Left
	NodeBlock    // { List }
	NodeClass    // class Token < Left { List }
	NodeVar      // var Token = Left ;
)

var nodeNames = [...]string{
	NodeInvalid:  "invalid",
	NodeLiteral:  "literal",
	NodeLogical:  "logical",
	NodeUnary:    "unary",
	NodeBinary:   "binary",
	NodeCall:     "call",
	NodeGrouping: "grouping",
	NodeVariable: "variable",
	NodeAssign:   "assign",
	NodeGet:      "get",
	NodeSet:      "set",
	NodeSuper:    "super",
	NodeThis:     "this",
	NodeExprStmt: "expression",
	NodeIf:       "if",
	NodeFunction: "function",
	NodePrint:    "print",
	NodeReturn:   "return",
	NodeWhile:    "while",
	NodeBlock:    "block",
	NodeClass:    "class",
	NodeVar:      "var",
}

// String returns the node kind name.
func (k NodeKind) String() string {
	if int(k) < len(nodeNames) {
		return nodeNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// IsExpr reports whether k belongs to the expression family.
func (k NodeKind) IsExpr() bool {
	return k >= NodeLiteral && k <= NodeThis
}

// IsStmt reports whether k belongs to the statement family.
func (k NodeKind) IsStmt() bool {
	return k >= NodeExprStmt && k <= NodeVar
}

// Node is a single AST node. The meaning of each field depends on Kind; the
// comments on the NodeKind constants describe the layout. Children are
// referenced by NodeID and List slices are carved from the owning Arena.
type Node struct {
	Kind  NodeKind
	Token Token // operator, name, keyword or closing paren
	Name  Token // method name of a super access
	Value Value // literal value

	Left  NodeID
	Right NodeID
	Cond  NodeID

	List   []NodeID // call arguments, block and function bodies, class methods
	Params []Token  // function parameters
}

// nodeChunkSize is the number of Node values pre-allocated per arena chunk.
const nodeChunkSize = 64

// slabBlockSize is the default size in bytes of a list slab block.
const slabBlockSize = 8 << 10

// idsPerBlock is how many NodeIDs fit in a default slab block.
const idsPerBlock = slabBlockSize / 4

// Arena is a bump-pointer allocator for AST nodes and child lists.
//
// Nodes are stored in fixed-size chunks and addressed by NodeID, so a chunk
// never moves once allocated. Child lists are carved out of 8 KiB slab
// blocks; a request that does not fit in a fresh block gets a block twice as
// large, doubling until it fits. Nothing is ever freed individually: every
// node and list lives exactly as long as the Arena.
//
// # Thread safety
//
// Arena is NOT thread-safe while it is being filled. Once parsing is done it
// is read-only and may be shared.
type Arena struct {
	chunks [][]Node
	count  int

	slab  []NodeID // current slab block
	used  int      // IDs handed out from slab
	slabs int      // number of slab blocks allocated
	bytes int      // total slab bytes allocated
}

// NewArena allocates an arena pre-warmed with one node chunk.
func NewArena() *Arena {
	return &Arena{
		chunks: [][]Node{make([]Node, nodeChunkSize)},
	}
}

// Alloc returns the ID of a fresh node of the given kind whose primary token
// is tok. All other fields are zero and must be filled by the caller through
// Node.
func (a *Arena) Alloc(kind NodeKind, tok Token) NodeID {
	if a.count == len(a.chunks)*nodeChunkSize {
		// Current chunk exhausted, allocate a new one.
		a.chunks = append(a.chunks, make([]Node, nodeChunkSize))
	}
	n := &a.chunks[a.count/nodeChunkSize][a.count%nodeChunkSize]
	a.count++
	n.Kind = kind
	n.Token = tok
	return NodeID(a.count)
}

// Node returns the node for id, or nil for NoNode. The pointer stays valid
// for the lifetime of the arena.
func (a *Arena) Node(id NodeID) *Node {
	if id == NoNode {
		return nil
	}
	i := int(id) - 1
	if i >= a.count {
		panic(fmt.Sprintf("types: node %d out of range (arena holds %d)", id, a.count))
	}
	return &a.chunks[i/nodeChunkSize][i%nodeChunkSize]
}

// Kind returns the kind of node id, NodeInvalid for NoNode.
func (a *Arena) Kind(id NodeID) NodeKind {
	if n := a.Node(id); n != nil {
		return n.Kind
	}
	return NodeInvalid
}

// IDs returns a zeroed list of n node IDs carved from the slab. The slice has
// its capacity clipped to n so appending to it reallocates instead of
// overwriting the neighbouring list.
func (a *Arena) IDs(n int) []NodeID {
	if n == 0 {
		return nil
	}
	// Keep every list 8-byte aligned (two 4-byte IDs).
	start := (a.used + 1) &^ 1
	if start+n > len(a.slab) {
		size := idsPerBlock
		for size < n {
			size *= 2
		}
		a.slab = make([]NodeID, size)
		a.slabs++
		a.bytes += size * 4
		start = 0
	}
	a.used = start + n
	return a.slab[start : start+n : start+n]
}

// List copies ids into arena storage.
func (a *Arena) List(ids []NodeID) []NodeID {
	out := a.IDs(len(ids))
	copy(out, ids)
	return out
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return a.count
}

// SlabBytes returns the number of bytes reserved for child lists.
func (a *Arena) SlabBytes() int {
	return a.bytes
}

// Blocks returns the number of slab blocks allocated so far.
func (a *Arena) Blocks() int {
	return a.slabs
}
