package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"grimm.is/conform/internal/annotation"
	"grimm.is/conform/internal/executor"
	"grimm.is/conform/internal/outcome"
)

func newTestReporter() (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, message.NewPrinter(language.English)), &buf
}

func TestReporter_Pass(t *testing.T) {
	r, buf := newTestReporter()
	r.Label("bin/funlisp", "tests/add.lisp")
	r.Outcome(outcome.Pass, &annotation.Expectation{}, &executor.Result{})

	assert.Equal(t, "[bin/funlisp] tests/add.lisp: PASS\n", buf.String())
}

func TestReporter_WrongExitCode(t *testing.T) {
	r, buf := newTestReporter()
	r.Label("bin/funlisp", "t.lisp")
	r.Outcome(outcome.WrongExitCode,
		&annotation.Expectation{ExitCode: 0},
		&executor.Result{ExitCode: 3, Stdout: "partial", Stderr: "boom"})

	want := "[bin/funlisp] t.lisp: FAIL (returned 3, expected 0)\n" +
		"## STDOUT\npartial\n" +
		"## STDERR\nboom\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_MemoryFault(t *testing.T) {
	r, buf := newTestReporter()
	r.Outcome(outcome.MemoryFault,
		&annotation.Expectation{ExitCode: 0},
		&executor.Result{ExitCode: 211, Stdout: "out\n", Stderr: "==1== Invalid read\n"})

	want := "MEM ERROR\n" +
		"## STDOUT\nout\n\n" +
		"## STDERR\n==1== Invalid read\n\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_WrongOutput(t *testing.T) {
	r, buf := newTestReporter()
	r.Outcome(outcome.WrongOutput,
		&annotation.Expectation{Stdout: "hello\nworld\n"},
		&executor.Result{Stdout: "hello\nthere\n"})

	want := "FAIL (incorrect output)\n" +
		"--- expected\n" +
		"+++ actual\n" +
		"@@ -1,3 +1,3 @@\n" +
		" hello\n" +
		"-world\n" +
		"+there\n" +
		" \n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_DiffKeepsTabs(t *testing.T) {
	r, buf := newTestReporter()
	r.Outcome(outcome.WrongOutput,
		&annotation.Expectation{Stdout: "a\tb"},
		&executor.Result{Stdout: "a\tc"})

	assert.Contains(t, buf.String(), "-a\tb\n+a\tc\n")
}

func TestReporter_Timeout(t *testing.T) {
	r, buf := newTestReporter()
	r.Label("bin/funlisp", "loop.lisp")
	r.Timeout(1500 * time.Millisecond)

	assert.Equal(t, "[bin/funlisp] loop.lisp: TIMEOUT (1.5s)\n", buf.String())
}

func TestReporter_Aborted(t *testing.T) {
	r, buf := newTestReporter()
	r.Label("bin/funlisp", "bad.lisp")
	r.Aborted()

	assert.Equal(t, "[bin/funlisp] bad.lisp: ERROR\n", buf.String())
}

func TestReporter_ExitCodesHaveNoDigitGrouping(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, message.NewPrinter(language.German))
	r.Label("bin/funlisp", "t.lisp")
	r.Outcome(outcome.WrongExitCode,
		&annotation.Expectation{ExitCode: 1000},
		&executor.Result{ExitCode: 1234})

	assert.Contains(t, buf.String(), "FAIL (returned 1234, expected 1000)\n")
}
