// Package suite drives a conformance run: each script is parsed, executed
// under the checker and classified, in order, stopping at the first case
// that does not pass.
package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"grimm.is/conform/internal/annotation"
	"grimm.is/conform/internal/executor"
	"grimm.is/conform/internal/logging"
	"grimm.is/conform/internal/outcome"
	"grimm.is/conform/internal/report"
)

// ErrMalformedScript wraps parse and validation failures of a test script.
var ErrMalformedScript = errors.New("malformed test script")

// Process exit statuses for a completed run.
const (
	StatusPass = 0
	StatusFail = 1
)

// Executor runs one script and returns what happened.
type Executor interface {
	Execute(ctx context.Context, script string) (*executor.Result, error)
}

// CaseResult is the verdict for one script.
type CaseResult struct {
	Script   string
	Outcome  outcome.Outcome
	TimedOut bool
	Duration time.Duration
}

// Passed reports whether the case passed.
func (c *CaseResult) Passed() bool {
	return !c.TimedOut && c.Outcome.Passed()
}

// Summary describes a finished run.
type Summary struct {
	RunID  string
	Total  int
	Passed int
	// Failure is the case that stopped the run, nil if every case passed.
	Failure *CaseResult
}

// Status returns the process exit status for the run.
func (s *Summary) Status() int {
	if s.Failure != nil {
		return StatusFail
	}
	return StatusPass
}

// Driver evaluates scripts one at a time.
type Driver struct {
	// Runner is the interpreter path shown in each case label.
	Runner   string
	Sentinel int

	Exec     Executor
	Reporter *report.Reporter
	Logger   *logging.Logger
	RunID    string
}

// New creates a Driver with a fresh run id.
func New(exec Executor, rep *report.Reporter, runner string, sentinel int) *Driver {
	id := uuid.New().String()
	return &Driver{
		Runner:   runner,
		Sentinel: sentinel,
		Exec:     exec,
		Reporter: rep,
		Logger:   logging.WithComponent("suite").WithFields(map[string]any{"run": id}),
		RunID:    id,
	}
}

// Run evaluates scripts in order and stops at the first case that does not
// pass. A returned error means the run was aborted without a verdict
// (environment problem, malformed script, cancellation); the summary then
// covers the cases completed before it.
func (d *Driver) Run(ctx context.Context, scripts []string) (*Summary, error) {
	sum := &Summary{RunID: d.RunID, Total: len(scripts)}

	for _, script := range scripts {
		cr, err := d.RunCase(ctx, script)
		if err != nil {
			d.logger().Error("run aborted", "script", script, "passed", sum.Passed, "error", err)
			return sum, err
		}
		if !cr.Passed() {
			sum.Failure = cr
			d.logger().Info("run failed", "script", script, "outcome", cr.Outcome, "timed_out", cr.TimedOut, "passed", sum.Passed, "total", sum.Total)
			return sum, nil
		}
		sum.Passed++
	}

	d.logger().Info("run passed", "passed", sum.Passed, "total", sum.Total)
	return sum, nil
}

// RunCase labels, parses, executes and classifies a single script.
func (d *Driver) RunCase(ctx context.Context, path string) (*CaseResult, error) {
	log := d.logger().WithFields(map[string]any{"script": path})
	d.Reporter.Label(d.Runner, path)

	exp, err := d.expectation(path)
	if err != nil {
		d.Reporter.Aborted()
		return nil, err
	}
	if len(exp.MalformedLines) > 0 {
		log.Warn("expected-output lines without delimiter", "lines", fmt.Sprint(exp.MalformedLines))
	}

	res, err := d.Exec.Execute(ctx, path)
	if err != nil {
		var te *executor.TimeoutError
		if errors.As(err, &te) {
			d.Reporter.Timeout(te.Limit)
			return &CaseResult{Script: path, TimedOut: true, Duration: te.Limit}, nil
		}
		d.Reporter.Aborted()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	o := outcome.Classify(exp, res, d.Sentinel)
	d.Reporter.Outcome(o, exp, res)
	log.Debug("case finished", "outcome", o, "exit", res.ExitCode, "duration", res.Duration)

	return &CaseResult{Script: path, Outcome: o, Duration: res.Duration}, nil
}

func (d *Driver) expectation(path string) (*annotation.Expectation, error) {
	script, err := annotation.ReadScript(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	exp, err := script.Expectation()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}
	if err := exp.Validate(d.Sentinel); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedScript, path, err)
	}
	return exp, nil
}

func (d *Driver) logger() *logging.Logger {
	if d.Logger == nil {
		return logging.WithComponent("suite")
	}
	return d.Logger
}
