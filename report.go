package main

import (
	"errors"
	"fmt"
	"io"

	"lox/eval"

	"github.com/fatih/color"
)

// reporter writes diagnostics for the user. Static errors already
// carry their file:line:col prefix; runtime errors get a line
// marker.
type reporter struct {
	w      io.Writer
	label  *color.Color
	detail *color.Color
}

func newReporter(w io.Writer) *reporter {
	return &reporter{
		w:      w,
		label:  color.New(color.FgRed, color.Bold),
		detail: color.New(color.Faint),
	}
}

// report prints every error and returns the exit code they call
// for, or 0 if there were none.
func (r *reporter) report(errs []error) int {
	code := 0
	for _, err := range errs {
		var rerr *eval.RuntimeError
		if errors.As(err, &rerr) {
			r.runtimeError(rerr)
			code = exitRuntime
			continue
		}
		r.label.Fprint(r.w, "error: ")
		fmt.Fprintln(r.w, err)
		if code == 0 {
			code = exitStatic
		}
	}
	return code
}

func (r *reporter) runtimeError(err *eval.RuntimeError) {
	r.label.Fprint(r.w, "runtime error: ")
	fmt.Fprintln(r.w, err.Message)
	r.detail.Fprintf(r.w, "[line %d]\n", err.Token.Line)
}

func (r *reporter) ioError(err error) {
	r.label.Fprint(r.w, "error: ")
	fmt.Fprintln(r.w, err)
}
