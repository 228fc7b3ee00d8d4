package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/sandrolain/golox"
)

// repl reads lines until end of input and runs each one in the same
// session. Errors are reported and the loop goes on.
func (d *driver) repl() int {
	fmt.Fprintln(d.stdout, d.paint.prompt("golox "+golox.Version()))
	fmt.Fprintln(d.stdout, "Press Ctrl+D to exit")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if d.cfg.HistoryFile != "" {
		if f, err := os.Open(d.cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(d.cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := golox.NewSession(d.options()...)
	for {
		line, err := ln.Prompt(d.cfg.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(d.stdout)
			return golox.StatusOK
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			d.report(err)
			return golox.StatusFailure
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		// Each line reports its own status; a failed or interrupted line
		// does not end the session.
		d.execInterruptible(session, line)
	}
}
