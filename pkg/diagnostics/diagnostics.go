// Package diagnostics defines the error-reporting surface shared by the
// scanner, parser, and the CLI driver. The core packages only produce
// Diagnostic values and hand them to a Reporter; aggregation policy (had-error
// flags, exit codes) belongs to the driver.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// Lex covers unrecognized characters, unterminated strings, and
	// unterminated block comments.
	Lex Kind = iota
	// Parse covers grammar violations, including invalid assignment targets.
	Parse
	// Runtime covers evaluation failures: operator type mismatches, division
	// by zero, and undefined variable references.
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported error with its 1-based source line.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Where   string // optional context, e.g. " at 'foo'" or " at end"
	Message string
}

// New creates a Diagnostic without positional context.
func New(kind Kind, line int, message string) Diagnostic {
	return Diagnostic{Kind: kind, Line: line, Message: message}
}

// Reporter receives diagnostics as they are produced. Reporting is
// fire-and-forget: a Reporter sets no state inside the reporting pass.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Collector is a Reporter that records every diagnostic in order.
type Collector struct {
	Diags []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diags = append(c.Diags, d)
}

// HasErrors reports whether anything was collected.
func (c *Collector) HasErrors() bool { return len(c.Diags) > 0 }

// HasKind reports whether any collected diagnostic has the given kind.
func (c *Collector) HasKind(kind Kind) bool {
	for _, d := range c.Diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Reset discards all collected diagnostics.
func (c *Collector) Reset() { c.Diags = nil }

var errorLabel = color.New(color.FgRed, color.Bold)

// Format renders a diagnostic for terminal display. Colorized unless color
// output has been globally disabled (color.NoColor).
func Format(d Diagnostic) string {
	label := errorLabel.Sprintf("%s error", d.Kind)
	return fmt.Sprintf("[line %d] %s%s: %s", d.Line, label, d.Where, d.Message)
}

// FormatAll renders a slice of diagnostics, one per line.
func FormatAll(diags []Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = Format(d)
	}
	return strings.Join(parts, "\n")
}
