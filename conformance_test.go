package golox_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golox-lang/golox/internal/testutil"
	"github.com/golox-lang/golox/pkg/diagnostics"
	"github.com/golox-lang/golox/pkg/runtime"
)

// TestConformance runs every script under testdata/scripts and checks its
// output and error expectations, exercising the whole pipeline end to end.
func TestConformance(t *testing.T) {
	paths, err := testutil.ListScripts(testutil.ScriptsDir)
	if err != nil {
		t.Fatalf("failed to list scripts: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no scripts found under %s", testutil.ScriptsDir)
	}

	for _, path := range paths {
		path := path
		script, err := testutil.LoadScript(path)
		if err != nil {
			t.Fatalf("failed to load script %s: %v", path, err)
		}

		t.Run(script.Name, func(t *testing.T) {
			var out bytes.Buffer
			var collector diagnostics.Collector
			rt := runtime.New(
				runtime.WithOutput(&out),
				runtime.WithReporter(&collector),
			)

			runErr := rt.Run(script.Source)

			if script.StaticError {
				if !errors.Is(runErr, runtime.ErrStaticErrors) {
					t.Fatalf("expected static errors, got %v", runErr)
				}
				if out.Len() != 0 {
					t.Errorf("program with static errors produced output: %q", out.String())
				}
				return
			}

			if script.RuntimeError != "" {
				if runErr == nil {
					t.Fatalf("expected runtime error %q, program succeeded", script.RuntimeError)
				}
				if !collector.HasKind(diagnostics.Runtime) {
					t.Error("runtime error was not reported as a diagnostic")
				}
				if !strings.Contains(runErr.Error(), script.RuntimeError) {
					t.Errorf("expected runtime error %q, got %q", script.RuntimeError, runErr.Error())
				}
			} else if runErr != nil {
				t.Fatalf("unexpected error: %v\ndiagnostics: %s",
					runErr, diagnostics.FormatAll(collector.Diags))
			}

			checkOutput(t, out.String(), script.Output)
		})
	}
}

func checkOutput(t *testing.T, actual string, expected []string) {
	t.Helper()

	var got []string
	if actual != "" {
		got = strings.Split(strings.TrimSuffix(actual, "\n"), "\n")
	}

	if len(got) != len(expected) {
		t.Fatalf("expected %d output lines, got %d:\n%s", len(expected), len(got), actual)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("output line %d: expected %q, got %q", i+1, want, got[i])
		}
	}
}
