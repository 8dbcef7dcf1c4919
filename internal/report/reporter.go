// Package report writes case results to the console.
//
// Every case prints a label, "[<runner>] <script>: ", followed by its verdict
// on the same line. Failures follow the verdict with the captured streams or
// an output diff.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"grimm.is/conform/internal/annotation"
	"grimm.is/conform/internal/executor"
	"grimm.is/conform/internal/outcome"
)

// Reporter renders the console contract to a writer.
type Reporter struct {
	out    io.Writer
	p      *message.Printer
	styles Styles
}

// New creates a Reporter writing to w. Colour is used only when w is a terminal.
func New(w io.Writer, p *message.Printer) *Reporter {
	return &Reporter{
		out:    w,
		p:      p,
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

// Label announces a case before it runs.
func (r *Reporter) Label(runner, script string) {
	r.p.Fprintf(r.out, "[%s] %s: ", runner, script)
}

// Outcome prints the verdict for a classified case.
func (r *Reporter) Outcome(o outcome.Outcome, exp *annotation.Expectation, res *executor.Result) {
	switch o {
	case outcome.Pass:
		r.line(r.styles.Pass.Render("PASS"))
	case outcome.MemoryFault:
		r.line(r.styles.Warn.Render("MEM ERROR"))
		r.streams(res)
	case outcome.WrongExitCode:
		// Exit codes are printed without locale digit grouping.
		verdict := r.p.Sprintf("FAIL (returned %s, expected %s)", strconv.Itoa(res.ExitCode), strconv.Itoa(exp.ExitCode))
		r.line(r.styles.Fail.Render(verdict))
		r.streams(res)
	case outcome.WrongOutput:
		r.line(r.styles.Fail.Render("FAIL (incorrect output)"))
		r.diff(Diff(exp.Stdout, res.Stdout))
	default:
		r.line(r.styles.Fail.Render(fmt.Sprintf("FAIL (%s)", o)))
	}
}

// Timeout prints the verdict for a case that was killed.
func (r *Reporter) Timeout(limit time.Duration) {
	r.line(r.styles.Warn.Render(r.p.Sprintf("TIMEOUT (%s)", limit)))
}

// Aborted terminates a pending label when the case could not be evaluated.
func (r *Reporter) Aborted() {
	r.line(r.styles.Fail.Render("ERROR"))
}

func (r *Reporter) streams(res *executor.Result) {
	r.line(r.styles.Section.Render("## STDOUT"))
	io.WriteString(r.out, res.Stdout+"\n")
	r.line(r.styles.Section.Render("## STDERR"))
	io.WriteString(r.out, res.Stderr+"\n")
}

func (r *Reporter) diff(text string) {
	for _, l := range strings.SplitAfter(text, "\n") {
		if l == "" {
			continue
		}
		body := strings.TrimSuffix(l, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			io.WriteString(r.out, body)
		case strings.HasPrefix(body, "@@"):
			io.WriteString(r.out, r.styles.Hunk.Render(body))
		case strings.HasPrefix(body, "+"):
			io.WriteString(r.out, r.styles.Added.Render(body))
		case strings.HasPrefix(body, "-"):
			io.WriteString(r.out, r.styles.Removed.Render(body))
		default:
			io.WriteString(r.out, body)
		}
		io.WriteString(r.out, "\n")
	}
}

func (r *Reporter) line(s string) {
	io.WriteString(r.out, s+"\n")
}
