//go:build js && wasm

// Command golox-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `golox` object:
//
//	golox.version()        → string
//	golox.run(source)      → { output, status, error }
//	golox.session()        → { exec(source) → { output, status, error } }
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o golox.wasm ./cmd/wasm/js/
package main

import (
	"bytes"
	"context"
	"syscall/js"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/ext"
)

func result(out *bytes.Buffer, err error) interface{} {
	r := map[string]interface{}{
		"output": out.String(),
		"status": golox.Status(err),
	}
	if err != nil {
		r["error"] = err.Error()
	}
	out.Reset()
	return js.ValueOf(r)
}

func sourceArg(args []js.Value) string {
	if len(args) < 1 {
		return ""
	}
	return args[0].String()
}

func jsRun(_ js.Value, args []js.Value) interface{} {
	var out bytes.Buffer
	err := golox.Run(context.Background(), sourceArg(args),
		golox.WithEvalOptions(evaluator.WithStdout(&out), ext.WithAll()))
	return result(&out, err)
}

func jsSession(_ js.Value, _ []js.Value) interface{} {
	var out bytes.Buffer
	s := golox.NewSession(golox.WithEvalOptions(evaluator.WithStdout(&out), ext.WithAll()))
	exec := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		return result(&out, s.Exec(context.Background(), sourceArg(args)))
	})
	return js.ValueOf(map[string]interface{}{"exec": exec})
}

func main() {
	api := map[string]interface{}{
		"run":     js.FuncOf(jsRun),
		"session": js.FuncOf(jsSession),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return golox.Version()
		}),
	}
	js.Global().Set("golox", js.ValueOf(api))

	// The JS event loop owns execution from here.
	select {}
}
