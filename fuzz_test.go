package golox_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/evaluator"
)

func FuzzRun(f *testing.F) {
	seeds := []string{
		`print 1 + 2;`,
		`print "a" + 1;`,
		`fun f() { return f(); } f();`,
		`class A { m() { return this; } } print A().m();`,
		`var a = 1; { var b = a; print b; }`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = golox.Run(ctx, input, golox.WithEvalOptions(
			evaluator.WithStdout(io.Discard),
			evaluator.WithMaxDepth(200),
		))
	})
}
