package main

// implements the lox repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lox/eval"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lox_history")
}

func runREPL(stdin io.Reader, stdout, stderr io.Writer) error {
	fmt.Fprintln(stdout, strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1))
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          color.New(color.FgCyan).Sprint("> "),
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           io.NopCloser(stdin),
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return &exitError{code: exitIO, err: err}
	}
	defer rl.Close()

	rep := newReporter(stderr)
	value := color.New(color.FgGreen)
	session := eval.NewSession("<stdin>", stdout, slog.Default())
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err != nil {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, errs := session.Run(line)
		if len(errs) != 0 {
			rep.report(errs)
			continue
		}
		if v != nil {
			value.Fprintln(stdout, eval.Inspect(v))
		}
	}
}
