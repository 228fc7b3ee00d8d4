// Package resolver implements the static scope analysis pass.
//
// The resolver walks a parsed Program once, before it runs, and records for
// every local variable reference how many scopes separate it from its
// declaration. The interpreter uses that distance to reach the right
// environment frame directly. The pass also reports errors that can be found
// without running the program: misplaced this, super and return, duplicate
// local declarations, locals read in their own initializer and classes that
// inherit from themselves.
//
// # Example
//
//	prog, _ := parser.Parse(source)
//	if err := resolver.Resolve(prog); err != nil {
//	    log.Fatal(err)
//	}
package resolver

import (
	"log/slog"

	"github.com/sandrolain/golox/pkg/types"
)

type functionKind uint8

const (
	functionNone functionKind = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classKind uint8

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver computes scope distances for a Program.
type Resolver struct {
	opts Options

	arena  *types.Arena
	locals *types.Locals

	// scopes is the stack of local block scopes. A name maps to false while
	// it is declared but its initializer has not been resolved yet.
	scopes []map[string]bool

	currentFunction functionKind
	currentClass    classKind

	errs types.ErrorList
}

// Options configures a Resolver.
type Options struct {
	// Logger for structured logging.
	Logger *slog.Logger
	// Debug enables debug logging.
	Debug bool
}

// Option configures resolver behavior.
type Option func(*Options)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// New creates a new Resolver.
func New(opts ...Option) *Resolver {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Resolver{opts: options}
}

// Resolve is a convenience wrapper around New().Resolve.
func Resolve(prog *types.Program, opts ...Option) error {
	return New(opts...).Resolve(prog)
}

// Resolve walks every statement of prog and fills prog.Locals().
//
// Resolution does not stop at the first problem: the returned error is a
// types.ErrorList with every static error found, or nil.
func (r *Resolver) Resolve(prog *types.Program) error {
	r.arena = prog.Arena()
	r.locals = prog.Locals()
	r.scopes = r.scopes[:0]
	r.currentFunction = functionNone
	r.currentClass = classNone
	r.errs = nil

	r.resolveStmts(prog.Statements())

	if r.opts.Debug {
		r.opts.Logger.Debug("resolved program",
			"statements", len(prog.Statements()),
			"nodes", r.arena.Len(),
			"locals", r.locals.Len(),
			"errors", len(r.errs))
	}
	return r.errs.Err()
}

func (r *Resolver) resolveStmts(stmts []types.NodeID) {
	for _, id := range stmts {
		r.resolveStmt(id)
	}
}

func (r *Resolver) resolveStmt(id types.NodeID) {
	n := r.arena.Node(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case types.NodeBlock:
		r.beginScope()
		r.resolveStmts(n.List)
		r.endScope()

	case types.NodeClass:
		r.resolveClass(n)

	case types.NodeExprStmt, types.NodePrint:
		r.resolveExpr(n.Left)

	case types.NodeFunction:
		r.declare(n.Token)
		r.define(n.Token)
		r.resolveFunction(n, functionFunction)

	case types.NodeIf:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Left)
		r.resolveStmt(n.Right)

	case types.NodeReturn:
		if r.currentFunction == functionNone {
			r.error(types.ErrTopLevelReturn, n.Token, "Can't return from top-level code.")
		}
		if n.Left != types.NoNode {
			if r.currentFunction == functionInitializer {
				r.error(types.ErrInitializerReturn, n.Token, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Left)
		}

	case types.NodeVar:
		r.declare(n.Token)
		r.resolveExpr(n.Left)
		r.define(n.Token)

	case types.NodeWhile:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Left)
	}
}

func (r *Resolver) resolveClass(n *types.Node) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(n.Token)
	r.define(n.Token)

	if n.Left != types.NoNode {
		super := r.arena.Node(n.Left)
		if super.Token.Lexeme == n.Token.Lexeme {
			r.error(types.ErrSelfInheritance, super.Token, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(n.Left)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true
	for _, id := range n.List {
		method := r.arena.Node(id)
		kind := functionMethod
		if method.Token.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()
}

// resolveFunction resolves a function body in a new scope holding its
// parameters.
func (r *Resolver) resolveFunction(fn *types.Node, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.List)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) resolveExpr(id types.NodeID) {
	n := r.arena.Node(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case types.NodeVariable:
		if len(r.scopes) > 0 {
			if defined, ok := r.peekScope()[n.Token.Lexeme]; ok && !defined {
				r.error(types.ErrSelfInitializer, n.Token, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(id, n.Token.Lexeme)

	case types.NodeAssign:
		r.resolveExpr(n.Right)
		r.resolveLocal(id, n.Token.Lexeme)

	case types.NodeBinary, types.NodeLogical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case types.NodeCall:
		r.resolveExpr(n.Left)
		for _, arg := range n.List {
			r.resolveExpr(arg)
		}

	case types.NodeGet, types.NodeGrouping:
		r.resolveExpr(n.Left)

	case types.NodeSet:
		r.resolveExpr(n.Right)
		r.resolveExpr(n.Left)

	case types.NodeSuper:
		switch r.currentClass {
		case classNone:
			r.error(types.ErrSuperOutsideClass, n.Token, "Can't use 'super' outside of a class.")
		case classClass:
			r.error(types.ErrSuperNoSuperclass, n.Token, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(id, "super")

	case types.NodeThis:
		if r.currentClass == classNone {
			r.error(types.ErrThisOutsideClass, n.Token, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(id, "this")

	case types.NodeUnary:
		r.resolveExpr(n.Right)

	case types.NodeLiteral:
	}
}

// resolveLocal records the distance from the innermost scope to the scope
// declaring name. Names found in no scope are globals and get no entry.
func (r *Resolver) resolveLocal(id types.NodeID, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals.Set(id, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare adds name to the innermost scope as not yet initialized.
// Globals are not tracked.
func (r *Resolver) declare(name types.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.error(types.ErrDuplicateLocal, name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as initialized and ready for use.
func (r *Resolver) define(name types.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *Resolver) error(code types.ErrorCode, tok types.Token, message string) {
	r.errs.Add(types.NewTokenError(code, tok, message))
}
