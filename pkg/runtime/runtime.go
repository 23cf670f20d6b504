// Package runtime wires the scanner, parser, and interpreter into the
// text → tokens → AST → effects pipeline. It owns no error policy: every
// diagnostic goes to the configured Reporter, and the caller decides what an
// error means for exit codes or REPL continuation.
package runtime

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/golox-lang/golox/pkg/ast"
	"github.com/golox-lang/golox/pkg/diagnostics"
	"github.com/golox-lang/golox/pkg/interp"
	"github.com/golox-lang/golox/pkg/parser"
	"github.com/golox-lang/golox/pkg/scanner"
)

// ErrStaticErrors is returned by Run when scanning or parsing reported
// errors; the diagnostics themselves went to the Reporter.
var ErrStaticErrors = errors.New("source has lexical or syntax errors")

// Runtime drives the pipeline. The interpreter's global environment persists
// across calls, which is what makes the REPL accumulate state line by line.
type Runtime struct {
	reporter diagnostics.Reporter
	interp   *interp.Interpreter
	logger   *slog.Logger
}

// Option is a functional option for configuring the Runtime.
type Option func(*config)

type config struct {
	reporter diagnostics.Reporter
	out      io.Writer
	logger   *slog.Logger
}

// WithReporter sets the diagnostic sink. Defaults to a discarding reporter.
func WithReporter(r diagnostics.Reporter) Option {
	return func(c *config) {
		c.reporter = r
	}
}

// WithOutput redirects interpreter output (print statements, REPL echo).
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithLogger sets the logger for pipeline phase tracing. Defaults to the
// slog default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New creates a Runtime with a fresh global environment.
func New(opts ...Option) *Runtime {
	cfg := &config{
		reporter: diagnostics.ReporterFunc(func(diagnostics.Diagnostic) {}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var interpOpts []interp.Option
	if cfg.out != nil {
		interpOpts = append(interpOpts, interp.WithOutput(cfg.out))
	}

	return &Runtime{
		reporter: cfg.reporter,
		interp:   interp.New(interpOpts...),
		logger:   cfg.logger,
	}
}

// Interpreter exposes the underlying interpreter, mainly for tests that want
// to inspect or seed the global environment.
func (rt *Runtime) Interpreter() *interp.Interpreter {
	return rt.interp
}

// Run executes a whole script. Scanning and parsing always complete (their
// errors are collected, not fatal); if either reported anything the program
// is not executed and ErrStaticErrors is returned. A runtime error stops the
// batch, is reported with its source line, and is returned.
func (rt *Runtime) Run(source string) error {
	statements, ok := rt.frontend(source, false)
	if !ok {
		return ErrStaticErrors
	}

	start := time.Now()
	err := rt.interp.Interpret(statements)
	rt.logger.Debug("eval done", "statements", len(statements), "elapsed", time.Since(start))

	return rt.reportRuntime(err)
}

// RunLine executes one interactive line. A line holding a single bare
// expression has its value echoed. Runtime errors are reported and returned,
// but the global environment survives for the next line.
func (rt *Runtime) RunLine(line string) error {
	statements, ok := rt.frontend(line, true)
	if !ok {
		return ErrStaticErrors
	}
	return rt.reportRuntime(rt.interp.InterpretREPL(statements))
}

// Check scans and parses without executing, returning the diagnostics.
func (rt *Runtime) Check(source string) []diagnostics.Diagnostic {
	var collector diagnostics.Collector
	tokens := scanner.Scan(source, &collector)
	parser.Parse(tokens, &collector)
	return collector.Diags
}

// frontend runs scan+parse, forwarding diagnostics to the configured
// reporter. ok is false if any static error was reported.
func (rt *Runtime) frontend(source string, repl bool) ([]ast.Stmt, bool) {
	var collector diagnostics.Collector
	tee := diagnostics.ReporterFunc(func(d diagnostics.Diagnostic) {
		collector.Report(d)
		rt.reporter.Report(d)
	})

	start := time.Now()
	tokens := scanner.Scan(source, tee)
	rt.logger.Debug("scan done", "tokens", len(tokens), "elapsed", time.Since(start))

	start = time.Now()
	var statements []ast.Stmt
	if repl {
		statements = parser.ParseREPL(tokens, tee)
	} else {
		statements = parser.Parse(tokens, tee)
	}
	rt.logger.Debug("parse done", "statements", len(statements), "elapsed", time.Since(start))

	return statements, !collector.HasErrors()
}

func (rt *Runtime) reportRuntime(err error) error {
	if err == nil {
		return nil
	}
	var rtErr *interp.RuntimeError
	if errors.As(err, &rtErr) {
		rt.reporter.Report(diagnostics.New(diagnostics.Runtime, rtErr.Token.Line, rtErr.Message))
	}
	return err
}
