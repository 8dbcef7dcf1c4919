package cmd

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"grimm.is/conform/internal/annotation"
	"grimm.is/conform/internal/brand"
)

// RunParse prints the expectation a script declares without running it.
func RunParse(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sentinel := fs.Int("sentinel", brand.SentinelExitCode, "Exit code reserved for memory errors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: %s parse [-sentinel N] <script>", ErrUsage, brand.BinaryName)
	}

	script, err := annotation.ReadScript(fs.Arg(0))
	if err != nil {
		return err
	}
	exp, err := script.Expectation()
	if err != nil {
		return err
	}

	Printer.Fprintf(stdout, "Script: %s\n", script.Path)
	// Numbers are formatted without locale grouping so the output stays greppable.
	Printer.Fprintf(stdout, "Marker line: %s\n", strconv.Itoa(exp.MarkerLine))
	Printer.Fprintf(stdout, "Exit code: %s\n", strconv.Itoa(exp.ExitCode))
	if len(exp.MalformedLines) > 0 {
		lines := make([]string, len(exp.MalformedLines))
		for i, n := range exp.MalformedLines {
			lines[i] = strconv.Itoa(n)
		}
		Printer.Fprintf(stdout, "Lines without delimiter: %s\n", strings.Join(lines, ", "))
	}
	Printer.Fprintf(stdout, "Expected stdout:\n")
	io.WriteString(stdout, exp.Stdout)

	if err := exp.Validate(*sentinel); err != nil {
		return fmt.Errorf("%s: %w", script.Path, err)
	}
	return nil
}
