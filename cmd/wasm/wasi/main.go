//go:build wasip1

// Command golox-wasm-wasi is the WASI (wasip1) entrypoint for hosts that
// embed WebAssembly modules.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "source": "<lox program>", "extensions": ["math"] }
//	stdout: { "output": "<printed text>", "status": 0 }
//	        { "output": "...", "status": 70, "error": "<message>" }
//
// The process exits with the reported status.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o golox.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"source":"print 1 + 2;"}' | wasmtime golox.wasm
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/evaluator"
	"github.com/sandrolain/golox/pkg/ext"
)

type request struct {
	Source     string   `json:"source"`
	Extensions []string `json:"extensions,omitempty"`
}

type response struct {
	Output string `json:"output"`
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

func writeResponse(r response) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(r.Status)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Status: golox.StatusUsage, Error: "invalid request JSON: " + err.Error()})
	}

	natives, err := ext.WithCategories(req.Extensions...)
	if err != nil {
		writeResponse(response{Status: golox.StatusUsage, Error: err.Error()})
	}

	var out bytes.Buffer
	err = golox.Run(context.Background(), req.Source,
		golox.WithEvalOptions(evaluator.WithStdout(&out), natives))

	resp := response{Output: out.String(), Status: golox.Status(err)}
	if err != nil {
		resp.Error = err.Error()
	}
	writeResponse(resp)
}
