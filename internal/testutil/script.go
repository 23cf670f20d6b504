// Package testutil provides shared helpers for golox tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ScriptsDir is the relative path from the repository root to the
// conformance scripts.
const ScriptsDir = "testdata/scripts"

// Script is a Lox program with expectations parsed from its comments.
//
// Annotations, one per line:
//
//	// expect: TEXT            a line of expected stdout, in order
//	// expect runtime error: M the program fails at runtime with message M
//	// expect static error     scanning or parsing reports at least one error
type Script struct {
	Name         string
	Source       string
	Output       []string
	RuntimeError string
	StaticError  bool
}

const (
	outputMarker       = "// expect: "
	runtimeErrorMarker = "// expect runtime error: "
	staticErrorMarker  = "// expect static error"
)

// LoadScript reads a .lox file and parses its expectation annotations.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := &Script{
		Name:   strings.TrimSuffix(filepath.Base(path), ".lox"),
		Source: string(data),
	}

	for _, line := range strings.Split(s.Source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, outputMarker):
			idx := strings.Index(trimmed, outputMarker)
			s.Output = append(s.Output, trimmed[idx+len(outputMarker):])
		case strings.Contains(trimmed, runtimeErrorMarker):
			idx := strings.Index(trimmed, runtimeErrorMarker)
			s.RuntimeError = trimmed[idx+len(runtimeErrorMarker):]
		case strings.Contains(trimmed, staticErrorMarker):
			s.StaticError = true
		}
	}
	return s, nil
}

// ListScripts returns every .lox file under root, sorted by ReadDir order.
func ListScripts(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lox") {
			paths = append(paths, filepath.Join(root, e.Name()))
		}
	}
	return paths, nil
}
