package golox_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/sandrolain/golox"
)

type wasiResponse struct {
	Output string `json:"output"`
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// buildWASI compiles cmd/wasm/wasi for wasip1 and returns the module bytes.
func buildWASI(t *testing.T) []byte {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping WASI build in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not on PATH")
	}

	out := filepath.Join(t.TempDir(), "golox.wasm")
	cmd := exec.Command(goBin, "build", "-o", out, "./cmd/wasm/wasi")
	cmd.Env = append(os.Environ(), "GOOS=wasip1", "GOARCH=wasm")
	if msg, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build wasip1 module: %v\n%s", err, msg)
	}

	wasm, err := os.ReadFile(out)
	require.NoError(t, err)
	return wasm
}

// runWASI runs the module once with request as stdin and reports the decoded
// response and the process exit code.
func runWASI(t *testing.T, r wazero.Runtime, compiled wazero.CompiledModule, request string) (wasiResponse, uint32) {
	t.Helper()
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs("golox").
		WithStdin(bytes.NewReader([]byte(request))).
		WithStdout(&stdout).
		WithStderr(&stderr)

	var code uint32
	mod, err := r.InstantiateModule(ctx, compiled, cfg)
	if mod != nil {
		_ = mod.Close(ctx)
	}
	var exitErr *sys.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case err != nil:
		t.Fatalf("instantiate: %v\nstderr: %s", err, stderr.String())
	}

	var resp wasiResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp), "stdout: %s", stdout.String())
	return resp, code
}

func TestWASIModule(t *testing.T) {
	wasm := buildWASI(t)
	ctx := context.Background()

	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	compiled, err := r.CompileModule(ctx, wasm)
	require.NoError(t, err)

	tests := []struct {
		name    string
		request string
		want    wasiResponse
	}{
		{
			name:    "ok",
			request: `{"source":"print 1 + 2;"}`,
			want:    wasiResponse{Output: "3\n", Status: golox.StatusOK},
		},
		{
			name:    "extensions",
			request: `{"source":"print sqrt(16);","extensions":["math"]}`,
			want:    wasiResponse{Output: "4\n", Status: golox.StatusOK},
		},
		{
			name:    "runtime error",
			request: `{"source":"print 1;\nprint -nil;"}`,
			want:    wasiResponse{Output: "1\n", Status: golox.StatusRuntime, Error: "Operand must be a number.\n[line 2]"},
		},
		{
			name:    "compile error",
			request: `{"source":"print ;"}`,
			want:    wasiResponse{Status: golox.StatusData, Error: "[line 1] Error at ';': Expect expression."},
		},
		{
			name:    "bad request",
			request: `{"source":`,
			want:    wasiResponse{Status: golox.StatusUsage},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, code := runWASI(t, r, compiled, tt.request)
			assert.Equal(t, uint32(tt.want.Status), code)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.Output, got.Output)
			if tt.want.Error != "" {
				assert.Equal(t, tt.want.Error, got.Error)
			} else if tt.want.Status == golox.StatusUsage {
				assert.Contains(t, got.Error, "invalid request JSON")
			}
		})
	}
}
