package golox_test

import (
	"context"
	"io"
	"testing"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/cache"
	"github.com/sandrolain/golox/pkg/evaluator"
)

const fibSource = `
fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }
print fib(20);
`

const classSource = `
class Point {
  init(x, y) { this.x = x; this.y = y; }
  add(o) { return Point(this.x + o.x, this.y + o.y); }
}
var p = Point(0, 0);
for (var i = 0; i < 1000; i = i + 1) p = p.add(Point(1, 1));
print p.x;
`

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := golox.Compile(classSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileCached(b *testing.B) {
	c := cache.New(8)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := golox.Compile(classSource, golox.WithCache(c)); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkRun(b *testing.B, source string) {
	prog := golox.MustCompile(source)
	interp := evaluator.New(evaluator.WithStdout(io.Discard))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := interp.Interpret(ctx, prog); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunFib(b *testing.B)     { benchmarkRun(b, fibSource) }
func BenchmarkRunClasses(b *testing.B) { benchmarkRun(b, classSource) }
