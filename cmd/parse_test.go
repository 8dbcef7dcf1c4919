package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"grimm.is/conform/internal/annotation"
	"grimm.is/conform/internal/testutil"
)

func TestRunParse(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "hello.lisp",
		"; setup comment\n; OUTPUT(2)\n; hello\n;\n; world\n(print \"hello\")\n")

	var out bytes.Buffer
	require.NoError(t, RunParse([]string{path}, &out, &bytes.Buffer{}))
	assert.Equal(t,
		"Script: "+path+"\n"+
			"Marker line: 2\n"+
			"Exit code: 2\n"+
			"Lines without delimiter: 4, 6\n"+
			"Expected stdout:\n"+
			"hello\n\nworld\n\n",
		out.String())
}

func TestRunParse_NoMarker(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "bare.lisp", "(print 1)\n")
	err := RunParse([]string{path}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, annotation.ErrNoMarker)
}

func TestRunParse_ReservedExitCode(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "r.lisp", "; OUTPUT(7)\n")

	require.NoError(t, RunParse([]string{path}, &bytes.Buffer{}, &bytes.Buffer{}))
	err := RunParse([]string{"-sentinel", "7", path}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, annotation.ErrReservedExitCode)
}

func TestRunParse_Usage(t *testing.T) {
	err := RunParse(nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	RunVersion(&out)
	assert.Contains(t, out.String(), "conform dev")
	assert.Contains(t, out.String(), "Go: go")
}

func TestRunParse_NumbersHaveNoDigitGrouping(t *testing.T) {
	prev := Printer
	Printer = message.NewPrinter(language.German)
	t.Cleanup(func() { Printer = prev })

	text := strings.Repeat("(print 1)\n", 1233) + "; OUTPUT(0)\n; ok\n"
	path := testutil.WriteFile(t, t.TempDir(), "long.lisp", text)

	var out bytes.Buffer
	require.NoError(t, RunParse([]string{path}, &out, &bytes.Buffer{}))
	assert.Contains(t, out.String(), "Marker line: 1234\n")
	assert.Contains(t, out.String(), "Exit code: 0\n")
}
