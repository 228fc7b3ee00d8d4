// Package golox provides a tree-walking interpreter for the Lox language.
//
// Source text goes through four stages: the lexer turns it into tokens, the
// parser builds an arena-allocated AST, the resolver computes the scope
// distance of every local variable and the interpreter executes the result.
// Scan, parse and resolve errors are all collected before anything runs;
// a runtime error stops the run.
//
// # Quick Start
//
//	// Run a script once
//	err := golox.Run(ctx, `print "hello";`)
//
//	// Compile once, run many times
//	prog, err := golox.Compile(source)
//	interp := evaluator.New(evaluator.WithStdout(&buf))
//	err = interp.Interpret(ctx, prog)
//
//	// Keep definitions between calls, like a REPL
//	s := golox.NewSession()
//	_ = s.Exec(ctx, "var a = 1;")
//	_ = s.Exec(ctx, "print a;")
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/golox/pkg/parser
//   - Resolver: github.com/sandrolain/golox/pkg/resolver
//   - Evaluator: github.com/sandrolain/golox/pkg/evaluator
//   - Types: github.com/sandrolain/golox/pkg/types
package golox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/sandrolain/golox/pkg/cache"
	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/parser"
	"github.com/sandrolain/golox/pkg/resolver"
	"github.com/sandrolain/golox/pkg/types"
)

// Exit statuses reported by Status.
const (
	StatusOK      = 0
	StatusFailure = 1
	StatusUsage   = 64
	StatusData    = 65
	StatusRuntime = 70
)

// Version returns the current version of golox.
func Version() string {
	return "v0.1.0"
}

// Options configures Compile, Run and Session.
type Options struct {
	// Cache memoises compiled programs by source text when non-nil.
	Cache *cache.Cache
	// Parse holds parser options.
	Parse []parser.CompileOption
	// Eval holds interpreter options.
	Eval []evaluator.EvalOption
	// Logger for structured logging.
	Logger *slog.Logger
	// Debug enables debug logging in every stage.
	Debug bool
}

// Option configures the facade.
type Option func(*Options)

// WithCache memoises compiled programs in c.
func WithCache(c *cache.Cache) Option {
	return func(opts *Options) {
		opts.Cache = c
	}
}

// WithParseOptions adds parser options.
func WithParseOptions(popts ...parser.CompileOption) Option {
	return func(opts *Options) {
		opts.Parse = append(opts.Parse, popts...)
	}
}

// WithEvalOptions adds interpreter options.
func WithEvalOptions(eopts ...evaluator.EvalOption) Option {
	return func(opts *Options) {
		opts.Eval = append(opts.Eval, eopts...)
	}
}

// WithLogger sets a custom logger for every stage.
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

func buildOptions(opts []Option) Options {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return options
}

func (o Options) evalOptions() []evaluator.EvalOption {
	eopts := []evaluator.EvalOption{
		evaluator.WithLogger(o.Logger),
		evaluator.WithDebug(o.Debug),
	}
	return append(eopts, o.Eval...)
}

// Compile scans, parses and resolves source.
//
// On failure the error is a types.ErrorList holding every diagnostic and no
// Program is returned. The Program is immutable and safe to run from several
// interpreters.
//
// Example:
//
//	prog, err := golox.Compile("print 1 + 2;")
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    os.Exit(golox.Status(err))
//	}
func Compile(source string, opts ...Option) (*types.Program, error) {
	return compile(source, buildOptions(opts))
}

func compile(source string, options Options) (*types.Program, error) {
	build := func() (*types.Program, error) {
		if !utf8.ValidString(source) {
			var errs types.ErrorList
			errs.Add(types.NewError(types.ErrInvalidEncoding, "Source is not valid UTF-8.", 1))
			return nil, errs
		}

		prog, err := parser.Parse(source, options.Parse...)
		var errs types.ErrorList
		if err != nil {
			if !errors.As(err, &errs) {
				return nil, err
			}
		}

		r := resolver.New(resolver.WithLogger(options.Logger), resolver.WithDebug(options.Debug))
		if err := r.Resolve(prog); err != nil {
			var rerrs types.ErrorList
			if !errors.As(err, &rerrs) {
				return nil, err
			}
			errs.Append(rerrs)
		}

		if err := errs.Err(); err != nil {
			return nil, err
		}
		return prog, nil
	}

	if options.Cache != nil {
		return options.Cache.GetOrCompile(source, build)
	}
	return build()
}

// MustCompile is like Compile but panics if the source cannot be compiled.
func MustCompile(source string, opts ...Option) *types.Program {
	prog, err := Compile(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("golox: Compile(%q): %v", source, err))
	}
	return prog
}

// Run compiles source and executes it in a fresh interpreter.
func Run(ctx context.Context, source string, opts ...Option) error {
	options := buildOptions(opts)
	prog, err := compile(source, options)
	if err != nil {
		return err
	}
	return evaluator.New(options.evalOptions()...).Interpret(ctx, prog)
}

// Session is a long-lived interpreter whose globals persist from one Exec
// to the next.
type Session struct {
	opts   Options
	interp *evaluator.Interpreter
}

// NewSession creates a session with the builtins defined.
func NewSession(opts ...Option) *Session {
	options := buildOptions(opts)
	return &Session{
		opts:   options,
		interp: evaluator.New(options.evalOptions()...),
	}
}

// Exec compiles and runs source in the session. A failed Exec leaves the
// session usable; definitions made before a runtime error are kept.
func (s *Session) Exec(ctx context.Context, source string) error {
	prog, err := compile(source, s.opts)
	if err != nil {
		return err
	}
	return s.interp.Interpret(ctx, prog)
}

// Interpreter returns the underlying interpreter.
func (s *Session) Interpreter() *evaluator.Interpreter {
	return s.interp
}

// Status maps an error returned by Compile, Run or Exec to a process exit
// status: 65 for compile errors, 70 for runtime errors, 1 for anything else.
func Status(err error) int {
	if err == nil {
		return StatusOK
	}
	var list types.ErrorList
	if errors.As(err, &list) {
		return StatusData
	}
	var rerr *evaluator.RuntimeError
	if errors.As(err, &rerr) {
		return StatusRuntime
	}
	return StatusFailure
}
