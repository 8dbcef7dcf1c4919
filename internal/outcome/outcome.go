// Package outcome classifies a checked run against a script's expectation.
package outcome

import (
	"strings"

	"grimm.is/conform/internal/annotation"
	"grimm.is/conform/internal/executor"
)

// Outcome is the verdict for a single test case.
type Outcome int

const (
	Pass Outcome = iota
	MemoryFault
	WrongExitCode
	WrongOutput
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case MemoryFault:
		return "memory-fault"
	case WrongExitCode:
		return "wrong-exit-code"
	case WrongOutput:
		return "wrong-output"
	}
	return "unknown"
}

// Passed reports whether o is Pass.
func (o Outcome) Passed() bool {
	return o == Pass
}

// Classify returns the first matching verdict in order: a memory fault
// (exit code equals sentinel), a wrong exit code, wrong output, pass.
//
// Output is compared after trimming leading and trailing whitespace from the
// whole text. Whitespace inside the text, including blank lines, is significant.
func Classify(exp *annotation.Expectation, act *executor.Result, sentinel int) Outcome {
	switch {
	case act.ExitCode == sentinel:
		return MemoryFault
	case act.ExitCode != exp.ExitCode:
		return WrongExitCode
	case strings.TrimSpace(act.Stdout) != strings.TrimSpace(exp.Stdout):
		return WrongOutput
	}
	return Pass
}
