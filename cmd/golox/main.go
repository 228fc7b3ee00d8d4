// Command golox runs Lox scripts or an interactive prompt.
//
//	golox                  start the REPL
//	golox script.lox       run a file
//	golox --dump-ast f.lox print the AST, then run
//	golox --ext math f.lox run with the math library installed
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/cache"
	"github.com/sandrolain/golox/pkg/config"
	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/ext"
	"github.com/sandrolain/golox/pkg/parser"
	"github.com/sandrolain/golox/pkg/printer"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging on stderr",
	}
	dumpASTFlag = cli.BoolFlag{
		Name:  "dump-ast",
		Usage: "print the syntax tree before running",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable coloured output",
	}
	extFlag = cli.StringSliceFlag{
		Name:  "ext",
		Usage: "install an extension library (" + strings.Join(ext.Categories(), ", ") + ")",
	}
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(golox.StatusFailure)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "golox"
	app.Usage = "Lox tree-walking interpreter"
	app.UsageText = "golox [options] [script]"
	app.Version = golox.Version()
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{configFileFlag, debugFlag, dumpASTFlag, noColorFlag, extFlag}
	app.Action = func(ctx *cli.Context) error {
		d, err := newDriver(ctx, stdout, stderr)
		if err != nil {
			return cli.NewExitError(err.Error(), golox.StatusFailure)
		}

		switch ctx.NArg() {
		case 0:
			return exit(d.repl())
		case 1:
			return exit(d.runFile(ctx.Args().First()))
		default:
			fmt.Fprintln(stderr, "Usage: "+app.UsageText)
			return exit(golox.StatusUsage)
		}
	}
	return app
}

func exit(status int) error {
	if status == golox.StatusOK {
		return nil
	}
	return cli.NewExitError("", status)
}

// driver holds everything a run needs: configuration, output streams and the
// palette chosen for them.
type driver struct {
	cfg     *config.Config
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	cache   *cache.Cache
	natives evaluator.EvalOption
	paint   palette

	// interrupt yields the context for one unit of work. nil means
	// cancel on SIGINT.
	interrupt func() (context.Context, context.CancelFunc)
}

func newDriver(ctx *cli.Context, stdout, stderr io.Writer) (*driver, error) {
	cfg := config.Default()
	if path := ctx.String(configFileFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if ctx.Bool(debugFlag.Name) {
		cfg.Debug = true
	}
	if ctx.Bool(dumpASTFlag.Name) {
		cfg.DumpAST = true
	}
	if ctx.Bool(noColorFlag.Name) {
		cfg.Color = config.ColorNever
	}
	cfg.Extensions = append(cfg.Extensions, ctx.StringSlice(extFlag.Name)...)

	natives, err := ext.WithCategories(cfg.Extensions...)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return &driver{
		cfg:     cfg,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		cache:   cache.New(cfg.CacheSize),
		natives: natives,
		paint:   newPalette(useColor(cfg.Color, stderr)),
	}, nil
}

// useColor decides the colour mode. In auto mode colour is used only when w
// is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (d *driver) options() []golox.Option {
	return []golox.Option{
		golox.WithLogger(d.logger),
		golox.WithDebug(d.cfg.Debug),
		golox.WithCache(d.cache),
		golox.WithParseOptions(parser.WithMaxDepth(d.cfg.MaxParseDepth)),
		golox.WithEvalOptions(
			evaluator.WithStdout(d.stdout),
			evaluator.WithMaxDepth(d.cfg.MaxCallDepth),
			d.natives,
		),
	}
}

func (d *driver) runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(d.stderr, d.paint.err(fmt.Sprintf("Could not read file %q: %v", path, err)))
		return golox.StatusFailure
	}
	if d.cfg.Debug {
		fmt.Fprintln(d.stderr, d.paint.header("-- "+path))
	}

	return d.execInterruptible(golox.NewSession(d.options()...), string(source))
}

// execInterruptible runs source under a context that Ctrl-C cancels, so an
// interrupt stops the running code instead of the process.
func (d *driver) execInterruptible(s *golox.Session, source string) int {
	newContext := d.interrupt
	if newContext == nil {
		newContext = func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt)
		}
	}
	ctx, stop := newContext()
	defer stop()
	return d.exec(ctx, s, source)
}

// exec compiles and runs one unit of source and reports any error.
func (d *driver) exec(ctx context.Context, s *golox.Session, source string) int {
	if d.cfg.DumpAST {
		if prog, err := golox.Compile(source, d.options()...); err == nil {
			fmt.Fprint(d.stderr, printer.Print(prog))
		}
	}

	err := s.Exec(ctx, source)
	if err != nil {
		d.report(err)
	}
	return golox.Status(err)
}

func (d *driver) report(err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(d.stderr, d.paint.err("Interrupted."))
		return
	}
	fmt.Fprintln(d.stderr, d.paint.err(err.Error()))
}

// palette colours diagnostic and prompt text.
type palette struct {
	err    func(a ...interface{}) string
	header func(a ...interface{}) string
	prompt func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)
	for _, c := range []*color.Color{red, yellow, cyan} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return palette{
		err:    red.SprintFunc(),
		header: yellow.SprintFunc(),
		prompt: cyan.SprintFunc(),
	}
}
