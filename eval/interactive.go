package eval

import (
	"io"
	"log/slog"
	"time"

	"lox/lexer"
	"lox/parser"
	"lox/resolver"
)

// Session runs source units against a single interpreter, so that
// globals persist from one Run to the next (as in the REPL).
type Session struct {
	Filename string
	interp   *Interpreter
	logger   *slog.Logger
}

func NewSession(filename string, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		Filename: filename,
		interp:   New(out),
		logger:   logger.With("file", filename),
	}
}

func (s *Session) Interpreter() *Interpreter { return s.interp }

// Run lexes, parses, resolves and executes the input. Static errors
// from any phase stop the pipeline before anything is executed. If
// the input is a single expression statement, its value is returned.
func (s *Session) Run(input string) (Value, []error) {
	start := time.Now()
	l := lexer.New(s.Filename, input)
	l.ScanTokens()
	s.logger.Debug("lexed", "tokens", len(l.Tokens), "errors", len(l.Errors))
	if len(l.Errors) != 0 {
		errs := make([]error, len(l.Errors))
		for i := range l.Errors {
			errs[i] = &l.Errors[i]
		}
		return nil, errs
	}

	p := parser.New(s.Filename, l.Tokens)
	module := p.Parse()
	s.logger.Debug("parsed", "statements", len(module.Stmts), "errors", len(p.Errors))
	if len(p.Errors) != 0 {
		errs := make([]error, len(p.Errors))
		for i, err := range p.Errors {
			errs[i] = err
		}
		return nil, errs
	}

	r := resolver.New(module, s.interp)
	r.Resolve()
	s.logger.Debug("resolved", "errors", len(r.Errors))
	if len(r.Errors) != 0 {
		return nil, r.Errors
	}

	// Still no errors? we can run it.
	defer func() {
		s.logger.Debug("executed", "elapsed", time.Since(start))
	}()
	if len(module.Stmts) == 1 {
		if stmt, ok := module.Stmts[0].(*parser.ExprStmt); ok {
			rv, err := s.interp.Evaluate(stmt.Expr)
			if err != nil {
				return nil, []error{err}
			}
			s.logger.Debug("evaluated", "type", rv.Type())
			return rv, nil
		}
	}
	if err := s.interp.Interpret(module.Stmts); err != nil {
		return nil, []error{err}
	}
	return nil, nil
}
