package evaluator

// Package evaluator executes resolved golox programs.
//
// The evaluator walks the arena AST of a types.Program statement by
// statement. Variables live in a chain of Environments; references the
// resolver marked as local are read at a fixed distance up the chain, all
// others go to the globals. Functions, classes and instances form the
// runtime object model defined in this package.
//
// # Example
//
//	interp := evaluator.New(evaluator.WithStdout(os.Stdout))
//	if err := interp.Interpret(ctx, prog); err != nil {
//	    log.Fatal(err)
//	}
//
// An Interpreter keeps its globals between calls to Interpret, which is how
// the REPL carries definitions from one line to the next.

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sandrolain/golox/pkg/functions"
	"github.com/sandrolain/golox/pkg/types"
)

// Interpreter executes programs against a persistent global environment.
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	opts   EvalOptions
	logger *slog.Logger

	globals     *Environment
	environment *Environment

	// prog is the program whose nodes are being executed. It changes while
	// a function declared by another program runs.
	prog *types.Program

	depth int
}

// EvalOptions configures interpreter behavior.
type EvalOptions struct {
	// Stdout receives the output of print statements. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxCallDepth limits nested calls. Defaults to 10000.
	MaxCallDepth int
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// Natives are extra native functions installed as globals.
	Natives []functions.NativeDef
	// Now is the time source of the clock builtin.
	Now func() time.Time
}

// EvalOption configures interpreter behavior.
type EvalOption func(*EvalOptions)

// WithStdout redirects print output.
func WithStdout(w io.Writer) EvalOption {
	return func(opts *EvalOptions) {
		opts.Stdout = w
	}
}

// WithMaxDepth sets the maximum call depth.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxCallDepth = depth
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithNative registers a native function as a global.
func WithNative(name string, arity int, fn functions.NativeFunc) EvalOption {
	return func(opts *EvalOptions) {
		opts.Natives = append(opts.Natives, functions.NativeDef{Name: name, Arity: arity, Fn: fn})
	}
}

// WithClock sets the time source of the clock builtin.
func WithClock(now func() time.Time) EvalOption {
	return func(opts *EvalOptions) {
		opts.Now = now
	}
}

// New creates a new Interpreter with the builtins installed.
func New(opts ...EvalOption) *Interpreter {
	options := EvalOptions{
		MaxCallDepth: 10000,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}

	globals := NewEnvironment(nil)
	for _, def := range functions.Builtins(options.Now) {
		globals.Define(def.Name, NewNativeFunction(def))
	}
	for _, def := range options.Natives {
		globals.Define(def.Name, NewNativeFunction(def))
	}

	return &Interpreter{
		opts:        options,
		logger:      options.Logger,
		globals:     globals,
		environment: globals,
	}
}

// Globals returns the global environment.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// Interpret executes the statements of a resolved program in order.
//
// Execution stops at the first runtime error, which is returned as a
// *RuntimeError. Definitions made before the error stay in the globals.
func (i *Interpreter) Interpret(ctx context.Context, prog *types.Program) error {
	if prog == nil {
		return nil
	}

	i.prog = prog
	i.environment = i.globals
	i.depth = 0

	start := time.Now()
	for _, stmt := range prog.Statements() {
		if _, err := i.execute(ctx, stmt); err != nil {
			if i.opts.Debug {
				i.logger.Debug("execution aborted", "error", err)
			}
			i.environment = i.globals
			return err
		}
	}

	if i.opts.Debug {
		i.logger.Debug("program executed",
			"statements", len(prog.Statements()),
			"duration", time.Since(start))
	}
	return nil
}

// Evaluate evaluates a single expression node of the current program.
func (i *Interpreter) Evaluate(ctx context.Context, prog *types.Program, id types.NodeID) (types.Value, error) {
	i.prog = prog
	return i.evaluate(ctx, id)
}
