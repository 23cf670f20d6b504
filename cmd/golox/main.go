// Command golox runs Lox scripts and an interactive prompt.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/urfave/cli.v1"

	"github.com/golox-lang/golox/pkg/ast"
	"github.com/golox-lang/golox/pkg/diagnostics"
	"github.com/golox-lang/golox/pkg/parser"
	"github.com/golox-lang/golox/pkg/runtime"
	"github.com/golox-lang/golox/pkg/scanner"
)

const (
	// Exit codes follow the sysexits convention used by lox: EX_DATAERR for
	// static errors, EX_SOFTWARE for runtime errors.
	exitStaticError  = 65
	exitRuntimeError = 70
)

var (
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging of pipeline phases",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "also write logs as JSON to `FILE`",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colorized diagnostics",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "emit machine-readable JSON",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "golox"
	app.Usage = "the Lox scripting language"
	app.Flags = []cli.Flag{debugFlag, logFileFlag, noColorFlag}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "execute a Lox script",
			ArgsUsage: "<file>",
			Action:    cmdRun,
		},
		{
			Name:   "repl",
			Usage:  "start an interactive session",
			Action: cmdREPL,
		},
		{
			Name:      "check",
			Usage:     "scan and parse a script without executing it",
			ArgsUsage: "<file>",
			Action:    cmdCheck,
		},
		{
			Name:      "tokens",
			Usage:     "dump the token stream of a script",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{jsonFlag},
			Action:    cmdTokens,
		},
		{
			Name:      "ast",
			Usage:     "dump the parsed syntax tree of a script",
			ArgsUsage: "<file>",
			Action:    cmdAST,
		},
	}

	// Bare `golox file.lox` runs the script; bare `golox` starts the REPL.
	app.Action = func(ctx *cli.Context) error {
		if ctx.Args().Present() {
			return cmdRun(ctx)
		}
		return cmdREPL(ctx)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup applies global flags and builds the logger shared by all commands.
func setup(ctx *cli.Context) *slog.Logger {
	if ctx.GlobalBool(noColorFlag.Name) {
		color.NoColor = true
	}

	level := slog.LevelWarn
	if ctx.GlobalBool(debugFlag.Name) {
		level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if path := ctx.GlobalString(logFileFlag.Name); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		} else {
			handler = slogmulti.Fanout(
				handler,
				slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
			)
		}
	}
	return slog.New(handler)
}

// stderrReporter prints each diagnostic as it is reported and keeps the
// counts the exit-code policy needs. The core never sees this state.
type stderrReporter struct {
	staticErrors  int
	runtimeErrors int
}

func (r *stderrReporter) Report(d diagnostics.Diagnostic) {
	fmt.Fprintln(os.Stderr, diagnostics.Format(d))
	if d.Kind == diagnostics.Runtime {
		r.runtimeErrors++
	} else {
		r.staticErrors++
	}
}

func readScript(ctx *cli.Context) (string, error) {
	file := ctx.Args().First()
	if file == "" {
		return "", cli.NewExitError("usage: golox "+ctx.Command.Name+" <file>", 1)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", cli.NewExitError(fmt.Sprintf("cannot read %s: %v", file, err), 1)
	}
	return string(data), nil
}

func cmdRun(ctx *cli.Context) error {
	logger := setup(ctx)
	source, err := readScript(ctx)
	if err != nil {
		return err
	}

	reporter := &stderrReporter{}
	rt := runtime.New(
		runtime.WithReporter(reporter),
		runtime.WithLogger(logger),
	)

	if runErr := rt.Run(source); runErr != nil {
		if reporter.runtimeErrors > 0 {
			return cli.NewExitError("", exitRuntimeError)
		}
		return cli.NewExitError("", exitStaticError)
	}
	return nil
}

func cmdREPL(ctx *cli.Context) error {
	logger := setup(ctx)

	reporter := &stderrReporter{}
	rt := runtime.New(
		runtime.WithReporter(reporter),
		runtime.WithLogger(logger),
	)

	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			prompt.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("golox interactive prompt (ctrl-D to exit)")
	for {
		input, err := prompt.Prompt("> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		prompt.AppendHistory(input)

		// Errors were already printed by the reporter; the session goes on.
		_ = rt.RunLine(input)
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			prompt.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".golox_history")
}

func cmdCheck(ctx *cli.Context) error {
	logger := setup(ctx)
	source, err := readScript(ctx)
	if err != nil {
		return err
	}

	rt := runtime.New(runtime.WithLogger(logger))
	if diags := rt.Check(source); len(diags) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(diags))
		return cli.NewExitError("", exitStaticError)
	}
	fmt.Println("No errors found.")
	return nil
}

func cmdTokens(ctx *cli.Context) error {
	setup(ctx)
	source, err := readScript(ctx)
	if err != nil {
		return err
	}

	reporter := &stderrReporter{}
	tokens := scanner.Scan(source, reporter)

	if ctx.Bool(jsonFlag.Name) {
		out, jsonErr := json.MarshalIndent(tokens, "", "  ")
		if jsonErr != nil {
			return cli.NewExitError(jsonErr.Error(), 1)
		}
		fmt.Println(string(out))
	} else {
		for _, tok := range tokens {
			fmt.Println(tok)
		}
	}

	if reporter.staticErrors > 0 {
		return cli.NewExitError("", exitStaticError)
	}
	return nil
}

func cmdAST(ctx *cli.Context) error {
	setup(ctx)
	source, err := readScript(ctx)
	if err != nil {
		return err
	}

	reporter := &stderrReporter{}
	tokens := scanner.Scan(source, reporter)
	statements := parser.Parse(tokens, reporter)

	fmt.Println(ast.PrintStmts(statements))

	if reporter.staticErrors > 0 {
		return cli.NewExitError("", exitStaticError)
	}
	return nil
}
