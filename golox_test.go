package golox_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/cache"
	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/parser"
	"github.com/sandrolain/golox/pkg/types"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	err := golox.Run(context.Background(), `
fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }
print fib(10);
`, golox.WithEvalOptions(evaluator.WithStdout(&out)))
	require.NoError(t, err)
	assert.Equal(t, "55\n", out.String())
}

func TestCompileCollectsEveryError(t *testing.T) {
	prog, err := golox.Compile("var a = ;\nreturn 1;\n{ var b = b; }")
	assert.Nil(t, prog)

	var list types.ErrorList
	require.True(t, errors.As(err, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "[line 1] Error at ';': Expect expression.", list[0].Error())
	assert.Equal(t, "[line 2] Error at 'return': Can't return from top-level code.", list[1].Error())
	assert.Equal(t, "[line 3] Error at 'b': Can't read local variable in its own initializer.", list[2].Error())
}

func TestCompileRejectsInvalidUTF8(t *testing.T) {
	_, err := golox.Compile("print \"\xff\";")
	var list types.ErrorList
	require.True(t, errors.As(err, &list))
	assert.Equal(t, types.ErrInvalidEncoding, list[0].Code)
	assert.Equal(t, golox.StatusData, golox.Status(err))
}

func TestCompileParseOptions(t *testing.T) {
	_, err := golox.Compile("print ((((1))));", golox.WithParseOptions(parser.WithMaxDepth(2)))
	assert.Error(t, err)
}

func TestCompileUsesCache(t *testing.T) {
	c := cache.New(4)
	first, err := golox.Compile("print 1;", golox.WithCache(c))
	require.NoError(t, err)
	second, err := golox.Compile("print 1;", golox.WithCache(c))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())

	_, err = golox.Compile("print ;", golox.WithCache(c))
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len(), "failed compiles are not cached")
}

func TestMustCompile(t *testing.T) {
	assert.NotNil(t, golox.MustCompile("print 1;"))
	assert.Panics(t, func() { golox.MustCompile("print") })
}

func TestSessionKeepsGlobals(t *testing.T) {
	var out bytes.Buffer
	s := golox.NewSession(golox.WithEvalOptions(evaluator.WithStdout(&out)))
	ctx := context.Background()

	require.NoError(t, s.Exec(ctx, "var a = 1;"))
	require.NoError(t, s.Exec(ctx, "fun inc() { a = a + 1; return a; }"))
	require.NoError(t, s.Exec(ctx, "print inc();"))

	// Errors leave the session usable.
	assert.Error(t, s.Exec(ctx, "print ;"))
	assert.Error(t, s.Exec(ctx, "print -\"x\";"))
	require.NoError(t, s.Exec(ctx, "print inc();"))

	assert.Equal(t, "2\n3\n", out.String())
	assert.NotNil(t, s.Interpreter())
}

func TestSessionClosuresAcrossExecs(t *testing.T) {
	var out bytes.Buffer
	s := golox.NewSession(golox.WithEvalOptions(evaluator.WithStdout(&out)))
	ctx := context.Background()

	require.NoError(t, s.Exec(ctx, `
fun counter() { var n = 0; fun next() { n = n + 1; return n; } return next; }
var c = counter();
`))
	require.NoError(t, s.Exec(ctx, "{ var x = 10; print c() + x; }"))
	require.NoError(t, s.Exec(ctx, "print c();"))
	assert.Equal(t, "11\n2\n", out.String())
}

func TestStatus(t *testing.T) {
	_, compileErr := golox.Compile("print")
	runErr := golox.Run(context.Background(), "print nope;")

	assert.Equal(t, golox.StatusOK, golox.Status(nil))
	assert.Equal(t, golox.StatusData, golox.Status(compileErr))
	assert.Equal(t, golox.StatusRuntime, golox.Status(runErr))
	assert.Equal(t, golox.StatusFailure, golox.Status(errors.New("other")))
	assert.Equal(t, golox.StatusFailure, golox.Status(context.Canceled))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := golox.Run(ctx, "while (true) {}")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, golox.Version())
}
