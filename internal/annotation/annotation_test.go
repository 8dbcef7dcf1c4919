package annotation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SetupCommentThenOutput(t *testing.T) {
	exp, err := ParseString("; setup comment\n; OUTPUT(0)\n; hello\n; world\n")
	require.NoError(t, err)

	assert.Equal(t, 0, exp.ExitCode)
	assert.Equal(t, "hello\nworld\n", exp.Stdout)
	assert.Equal(t, 2, exp.MarkerLine)
	assert.Empty(t, exp.MalformedLines)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		code     int
		stdout   string
		marker   int
		badLines []int
	}{
		{
			name:   "code only",
			text:   "(print 1)\n; OUTPUT(3)\n",
			code:   3,
			stdout: "",
			marker: 2,
		},
		{
			name:   "code after program text",
			text:   "(define x 1)\n(print x)\n; OUTPUT(0)\n; 1\n",
			code:   0,
			stdout: "1\n",
			marker: 3,
		},
		{
			name:   "multi digit code",
			text:   "; OUTPUT(127)\n; oops\n",
			code:   127,
			stdout: "oops\n",
			marker: 1,
		},
		{
			name:   "last line without newline",
			text:   "; OUTPUT(0)\n; a\n; b",
			code:   0,
			stdout: "a\nb\n",
			marker: 1,
		},
		{
			name:   "text after first delimiter kept verbatim",
			text:   "; OUTPUT(0)\n;  indented; with ; delimiters \n",
			code:   0,
			stdout: " indented; with ; delimiters \n",
			marker: 1,
		},
		{
			name:   "delimiter not at line start",
			text:   "; OUTPUT(0)\n  ;; value\n",
			code:   0,
			stdout: "value\n",
			marker: 1,
		},
		{
			name:   "blank expected lines",
			text:   "; OUTPUT(0)\n; a\n; \n; b\n",
			code:   0,
			stdout: "a\n\nb\n",
			marker: 1,
		},
		{
			name:   "first marker wins",
			text:   "; OUTPUT(1)\n; OUTPUT(2)\n; x\n",
			code:   1,
			stdout: "OUTPUT(2)\nx\n",
			marker: 1,
		},
		{
			name:     "line without delimiter contributes empty line",
			text:     "; OUTPUT(0)\n; a\n\n;b\n; c\n",
			code:     0,
			stdout:   "a\n\n\nc\n",
			marker:   1,
			badLines: []int{3, 4},
		},
		{
			name:   "indented marker is not a marker",
			text:   "  ; OUTPUT(9)\n; OUTPUT(4)\n; y\n",
			code:   4,
			stdout: "y\n",
			marker: 2,
		},
		{
			name:   "crlf line endings",
			text:   "; OUTPUT(0)\r\n; hi\r\n",
			code:   0,
			stdout: "hi\n",
			marker: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := ParseString(tt.text)
			require.NoError(t, err)
			want := &Expectation{
				ExitCode:       tt.code,
				Stdout:         tt.stdout,
				MarkerLine:     tt.marker,
				MalformedLines: tt.badLines,
			}
			if d := cmp.Diff(want, exp); d != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestParse_NoMarker(t *testing.T) {
	for _, text := range []string{
		"",
		"(print 1)\n",
		"; OUTPUT()\n; x\n",
		"; OUTPUT(-1)\n",
		"; output(0)\n",
	} {
		_, err := ParseString(text)
		assert.ErrorIs(t, err, ErrNoMarker, "text %q", text)
	}
}

func TestParse_CodeOverflow(t *testing.T) {
	_, err := ParseString("; OUTPUT(99999999999999999999999)\n")
	assert.ErrorIs(t, err, ErrBadMarker)
}

func TestParse_Idempotent(t *testing.T) {
	text := "; header\n; more header\n; OUTPUT(2)\n; first\n;second\n; third\n"

	first, err := ParseString(text)
	require.NoError(t, err)
	second, err := ParseString(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, first.Stdout, "header")
}

func TestParse_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	exp, err := ParseString("; OUTPUT(0)\n; " + long + "\n")
	require.NoError(t, err)
	assert.Equal(t, long+"\n", exp.Stdout)
}

func TestExpectation_Validate(t *testing.T) {
	exp, err := ParseString("; OUTPUT(211)\n")
	require.NoError(t, err)

	err = exp.Validate(211)
	assert.ErrorIs(t, err, ErrReservedExitCode)
	assert.Contains(t, err.Error(), "line 1")

	assert.NoError(t, exp.Validate(99))
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lisp")
	require.NoError(t, os.WriteFile(path, []byte("; OUTPUT(0)\n; hello\n"), 0644))

	s, err := ReadScript(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path)

	exp, err := s.Expectation()
	require.NoError(t, err)
	assert.Equal(t, "hello\n", exp.Stdout)

	_, err = ReadScript(filepath.Join(dir, "missing.lisp"))
	assert.Error(t, err)
}

func TestScript_ExpectationErrorNamesPath(t *testing.T) {
	s := &Script{Path: "tests/empty.lisp", Text: "(print 1)\n"}
	_, err := s.Expectation()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMarker)
	assert.True(t, strings.HasPrefix(err.Error(), "tests/empty.lisp: "))
}
