package parser

// Package parser implements the golox lexer and recursive descent parser.
//
// # Architecture
//
// The parser consists of three main components:
//   - Lexer: Tokenizes the source into a stream of tokens
//   - Parser: Builds the arena-allocated AST from tokens, one method per
//     grammar rule
//   - Error Recovery: after a grammar error the parser skips to the next
//     statement boundary and carries on, so one broken statement yields one
//     diagnostic
//
// # Example
//
//	prog, err := parser.Parse("print 1 + 2;")
//	if err != nil {
//	    fmt.Println(err) // [line 1] Error at ...: ...
//	    return
//	}
//	for _, id := range prog.Statements() {
//	    fmt.Println(prog.Node(id).Kind)
//	}

import (
	"github.com/sandrolain/golox/pkg/types"
)

// Parse scans and parses source and returns the Program.
//
// The Program is returned even when err is non-nil: it holds every statement
// that parsed cleanly. err is a types.ErrorList with the scan errors
// followed by the parse errors.
//
// Example:
//
//	prog, err := parser.Parse("var a = 1;")
//	if err != nil {
//	    var list types.ErrorList
//	    errors.As(err, &list)
//	    fmt.Printf("%d errors\n", len(list))
//	}
func Parse(source string, opts ...CompileOption) (*types.Program, error) {
	lexer := NewLexer(source)
	tokens, _ := lexer.ScanTokens()

	p := NewParser(tokens, opts...)
	p.source = source
	prog, _ := p.Parse()

	var errs types.ErrorList
	errs.Append(lexer.Errors())
	errs.Append(p.Errors())
	return prog, errs.Err()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string, opts ...CompileOption) (*types.Program, error) {
	return Parse(source, opts...)
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits recursion depth to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
