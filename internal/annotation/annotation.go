// Package annotation extracts the expected result embedded in a test script.
//
// A script declares its expectation with a marker line followed by the
// expected standard output, one line per comment line:
//
//	; OUTPUT(0)
//	; hello
//	; world
//
// Everything before the marker is ignored. From the line after the marker
// to the end of the file, the text after the first "; " on each line is one
// line of expected output.
package annotation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Delimiter separates the comment prefix from expected output text.
const Delimiter = "; "

var markerRe = regexp.MustCompile(`^; OUTPUT\((\d+)\)`)

var (
	// ErrNoMarker means the script has no "; OUTPUT(N)" line.
	ErrNoMarker = errors.New("no OUTPUT marker")
	// ErrBadMarker means the marker's exit code is not a usable integer.
	ErrBadMarker = errors.New("invalid OUTPUT marker")
	// ErrReservedExitCode means the script declares the checker's sentinel exit code.
	ErrReservedExitCode = errors.New("expected exit code is reserved for memory errors")
)

// Script is a test script path and its full text.
type Script struct {
	Path string
	Text string
}

// ReadScript loads a script from disk.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return &Script{Path: path, Text: string(data)}, nil
}

// Expectation is the result a script declares for itself.
type Expectation struct {
	ExitCode int
	Stdout   string

	// MarkerLine is the 1-based line number of the OUTPUT marker.
	MarkerLine int
	// MalformedLines lists 1-based line numbers after the marker that had no
	// delimiter. Each contributed an empty line to Stdout.
	MalformedLines []int
}

// Validate rejects an expectation that collides with the sentinel exit code.
// Such a script can never be told apart from a memory error.
func (e *Expectation) Validate(sentinel int) error {
	if e.ExitCode == sentinel {
		return fmt.Errorf("%w: OUTPUT(%d) on line %d", ErrReservedExitCode, e.ExitCode, e.MarkerLine)
	}
	return nil
}

// Parse scans r and returns the declared expectation.
func Parse(r io.Reader) (*Expectation, error) {
	var (
		exp        Expectation
		collecting bool
		out        strings.Builder
		lineNo     int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if collecting {
			if i := strings.Index(line, Delimiter); i >= 0 {
				out.WriteString(line[i+len(Delimiter):])
			} else {
				exp.MalformedLines = append(exp.MalformedLines, lineNo)
			}
			out.WriteByte('\n')
			continue
		}

		m := markerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w on line %d: %v", ErrBadMarker, lineNo, err)
		}
		exp.ExitCode = code
		exp.MarkerLine = lineNo
		collecting = true
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !collecting {
		return nil, ErrNoMarker
	}

	exp.Stdout = out.String()
	return &exp, nil
}

// ParseString is Parse over an in-memory script text.
func ParseString(text string) (*Expectation, error) {
	return Parse(strings.NewReader(text))
}

// Expectation parses the script's text. Errors carry the script path.
func (s *Script) Expectation() (*Expectation, error) {
	exp, err := ParseString(s.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return exp, nil
}
