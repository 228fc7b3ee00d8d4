package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/golox"
	"github.com/sandrolain/golox/pkg/cache"
	"github.com/sandrolain/golox/pkg/config"
	"github.com/sandrolain/golox/pkg/ext"
)

func newTestDriver(t *testing.T, cfg *config.Config) (*driver, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	natives, err := ext.WithCategories(cfg.Extensions...)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	d := &driver{
		cfg:     cfg,
		stdout:  &stdout,
		stderr:  &stderr,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache:   cache.New(cfg.CacheSize),
		natives: natives,
		paint:   newPalette(false),
	}
	return d, &stdout, &stderr
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantStatus int
		wantOut    string
		wantErr    string
	}{
		{"ok", `print "hi";`, golox.StatusOK, "hi\n", ""},
		{"compile error", "print ;", golox.StatusData, "", "[line 1] Error at ';': Expect expression.\n"},
		{"runtime error", "print 1;\nprint nope;", golox.StatusRuntime, "1\n", "Undefined variable 'nope'.\n[line 2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, stdout, stderr := newTestDriver(t, config.Default())
			status := d.runFile(writeScript(t, tt.source))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantOut, stdout.String())
			assert.Equal(t, tt.wantErr, stderr.String())
		})
	}
}

func TestRunFileMissing(t *testing.T) {
	d, _, stderr := newTestDriver(t, config.Default())
	status := d.runFile(filepath.Join(t.TempDir(), "missing.lox"))
	assert.Equal(t, golox.StatusFailure, status)
	assert.Contains(t, stderr.String(), "Could not read file")
}

func TestRunFileWithExtensions(t *testing.T) {
	cfg := config.Default()
	cfg.Extensions = []string{"math", "string"}
	d, stdout, _ := newTestDriver(t, cfg)

	status := d.runFile(writeScript(t, `print upper("n") + str(sqrt(9));`))
	assert.Equal(t, golox.StatusOK, status)
	assert.Equal(t, "N3\n", stdout.String())
}

func TestExecDumpsAST(t *testing.T) {
	cfg := config.Default()
	cfg.DumpAST = true
	d, stdout, stderr := newTestDriver(t, cfg)

	status := d.exec(context.Background(), golox.NewSession(d.options()...), "print 1 + 2;")
	assert.Equal(t, golox.StatusOK, status)
	assert.Equal(t, "3\n", stdout.String())
	assert.Equal(t, "(print (+ 1 2))\n", stderr.String())
}

func TestExecSharesSession(t *testing.T) {
	d, stdout, _ := newTestDriver(t, config.Default())
	s := golox.NewSession(d.options()...)
	ctx := context.Background()

	assert.Equal(t, golox.StatusOK, d.exec(ctx, s, "var a = 2;"))
	assert.Equal(t, golox.StatusData, d.exec(ctx, s, "a ="))
	assert.Equal(t, golox.StatusOK, d.exec(ctx, s, "print a * a;"))
	assert.Equal(t, "4\n", stdout.String())
}

func TestReportInterrupted(t *testing.T) {
	d, _, stderr := newTestDriver(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := d.exec(ctx, golox.NewSession(d.options()...), "while (true) {}")
	assert.Equal(t, golox.StatusFailure, status)
	assert.Equal(t, "Interrupted.\n", stderr.String())
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, useColor(config.ColorAlways, &buf))
	assert.False(t, useColor(config.ColorNever, &buf))
	assert.False(t, useColor(config.ColorAuto, &buf), "buffers are never terminals")
}

func TestAppRunsScript(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	path := writeScript(t, "var a = 20; print a + 22;")

	err := app.Run([]string{"golox", "--no-color", path})
	require.NoError(t, err)
	assert.Equal(t, "42\n", stdout.String())
}

func TestExecInterruptibleKeepsSession(t *testing.T) {
	d, stdout, stderr := newTestDriver(t, config.Default())
	s := golox.NewSession(d.options()...)

	d.interrupt = func() (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx, cancel
	}
	assert.Equal(t, golox.StatusOK, d.execInterruptible(s, "var n = 0;"))
	assert.Equal(t, golox.StatusFailure, d.execInterruptible(s, "while (true) { n = n + 1; }"))
	assert.Equal(t, "Interrupted.\n", stderr.String())

	// The next line runs under a fresh signal context in the same session.
	d.interrupt = nil
	assert.Equal(t, golox.StatusOK, d.execInterruptible(s, "print n;"))
	assert.Equal(t, "0\n", stdout.String())
}
