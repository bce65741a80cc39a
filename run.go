package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"lox/eval"
	"lox/lexer"
	"lox/parser"

	"github.com/spf13/cobra"
)

func readSource(path string, rep *reporter) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		rep.ioError(err)
		return "", &exitError{code: exitIO, err: err}
	}
	return string(src), nil
}

// runFile runs the script at path to completion.
func runFile(path string, out io.Writer, rep *reporter) error {
	src, err := readSource(path, rep)
	if err != nil {
		return err
	}
	slog.Debug("running script", "path", path, "bytes", len(src))
	s := eval.NewSession(path, out, slog.Default())
	_, errs := s.Run(src)
	if code := rep.report(errs); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a Lox source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := newReporter(cmd.ErrOrStderr())
			src, err := readSource(args[0], rep)
			if err != nil {
				return err
			}
			l := lexer.New(args[0], src)
			l.ScanTokens()
			out := cmd.OutOrStdout()
			for _, tok := range l.Tokens {
				fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
			}
			errs := make([]error, len(l.Errors))
			for i := range l.Errors {
				errs[i] = &l.Errors[i]
			}
			if code := rep.report(errs); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a Lox source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := newReporter(cmd.ErrOrStderr())
			src, err := readSource(args[0], rep)
			if err != nil {
				return err
			}
			l := lexer.New(args[0], src)
			l.ScanTokens()
			errs := []error{}
			for i := range l.Errors {
				errs = append(errs, &l.Errors[i])
			}
			if len(errs) == 0 {
				p := parser.New(args[0], l.Tokens)
				module := p.Parse()
				for _, err := range p.Errors {
					errs = append(errs, err)
				}
				if len(errs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), module.String())
				}
			}
			if code := rep.report(errs); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}
