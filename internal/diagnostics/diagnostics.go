// Package diagnostics renders structured errors for a terminal, in the
// teacher's cmd/ailang/main.go convention: color.New(...).SprintFunc()
// severity labels, position in cyan, the offending name in bold, falling
// back to plain text automatically when fatih/color detects a non-tty or
// NO_COLOR (color.NoColor handles that already — nothing extra is needed
// here).
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sunholo/juno/internal/types"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Severity distinguishes a fatal AnalysisError from an advisory note. The
// core only ever produces errors (§7 — every Kind is fatal); Warning exists
// for driver-level advice (e.g. cmd/juno's "no main function defined")
// layered on top.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) label() string {
	if s == SeverityWarning {
		return yellow("Warning")
	}
	return red("Error")
}

// Print writes a single AnalysisError to w as "<Label>: <pos>: <message>
// (<name>)", followed by indented "expected:"/"got:" lines when both types
// are set and an indented "hint:" line when a suggestion is set. The
// position and name parts are omitted when empty.
func Print(w io.Writer, err *types.AnalysisError) {
	PrintSeverity(w, SeverityError, err)
}

// PrintSeverity is Print with an explicit severity, for driver-level
// warnings that never originate from the core itself.
func PrintSeverity(w io.Writer, sev Severity, err *types.AnalysisError) {
	var b strings.Builder
	b.WriteString(sev.label())
	b.WriteString(": ")
	if err.Pos.Line != 0 || err.Pos.File != "" {
		b.WriteString(cyan(err.Pos.String()))
		b.WriteString(": ")
	}
	b.WriteString(err.Message)
	if err.Name != "" {
		fmt.Fprintf(&b, " (%s)", bold(err.Name))
	}
	if err.Expected != nil && err.Actual != nil {
		fmt.Fprintf(&b, "\n  expected: %s\n  got:      %s", err.Expected, err.Actual)
	}
	if err.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s %s", cyan("hint:"), err.Suggestion)
	}
	fmt.Fprintln(w, b.String())
}

// PrintList prints every error in a list in order, separated by a blank line.
func PrintList(w io.Writer, errs types.ErrorList) {
	for i, err := range errs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		Print(w, err)
	}
}

// PrintErr type-switches err into the right rendering: a single
// *AnalysisError, an ErrorList, or — for anything else the driver might
// surface (a manifest or JSON decoding failure) — a plain red "Error" line
// with no position.
func PrintErr(w io.Writer, err error) {
	switch e := err.(type) {
	case *types.AnalysisError:
		Print(w, e)
	case types.ErrorList:
		PrintList(w, e)
	default:
		fmt.Fprintf(w, "%s: %v\n", red("Error"), err)
	}
}
