package report

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// Diff returns a unified diff from expected to actual, or "" if they are equal.
func Diff(expected, actual string) string {
	diff := difflib.UnifiedDiff{
		A:        splitLines(expected),
		B:        splitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  DiffContext,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// Only reachable through a failing writer; a strings.Builder never fails.
		return ""
	}
	return text
}

// splitLines cuts s at every newline and terminates each piece with one,
// so a missing final newline shows up as an extra empty line rather than
// a "no newline" marker.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] += "\n"
	}
	return lines
}
