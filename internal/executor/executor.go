// Package executor runs the interpreter under the memory checker and
// captures what it did.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"grimm.is/conform/internal/clock"
	"grimm.is/conform/internal/logging"
)

var (
	// ErrEnvironment means the checker or the runner could not be executed.
	// No case result can be trusted when this happens.
	ErrEnvironment = errors.New("environment error")
	// ErrTimeout means the case exceeded its time limit and was killed.
	ErrTimeout = errors.New("timed out")
)

// TimeoutError reports the limit a killed case exceeded. It matches ErrTimeout.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return ErrTimeout.Error() + " after " + e.Limit.String()
}

// Is lets errors.Is(err, ErrTimeout) match.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Result is what one checked run of the interpreter produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Executor invokes `<checker> -q --error-exitcode=<sentinel> <runner> <script>`.
type Executor struct {
	// Checker is the memory checker binary (name on PATH or a path).
	Checker string
	// Runner is the interpreter binary handed to the checker.
	Runner string
	// Sentinel is the exit code the checker reports on a memory error.
	Sentinel int
	// Timeout bounds a single case. Zero means no limit.
	Timeout time.Duration

	Clock  clock.Clock
	Logger *logging.Logger
}

// New creates an Executor with the real clock and the default logger.
func New(checker, runner string, sentinel int) *Executor {
	return &Executor{
		Checker:  checker,
		Runner:   runner,
		Sentinel: sentinel,
		Clock:    clock.RealClock{},
		Logger:   logging.WithComponent("executor"),
	}
}

// Args returns the checker's argument list for script.
func (e *Executor) Args(script string) []string {
	return []string{
		"-q",
		"--error-exitcode=" + strconv.Itoa(e.Sentinel),
		e.Runner,
		script,
	}
}

// Preflight verifies that both the checker and the runner can be executed.
func (e *Executor) Preflight() error {
	if _, err := exec.LookPath(e.Checker); err != nil {
		return fmt.Errorf("%w: checker %q: %v", ErrEnvironment, e.Checker, err)
	}
	if _, err := exec.LookPath(e.Runner); err != nil {
		return fmt.Errorf("%w: runner %q: %v", ErrEnvironment, e.Runner, err)
	}
	return nil
}

// Execute runs script under the checker and blocks until the process has
// exited and both output streams are fully drained.
//
// A non-zero exit is not an error; it is reported in Result.ExitCode.
// Errors are ErrEnvironment, ErrTimeout or the context's error.
func (e *Executor) Execute(ctx context.Context, script string) (*Result, error) {
	if err := e.Preflight(); err != nil {
		return nil, err
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.Checker, e.Args(script)...)

	// os/exec copies each non-file writer on its own goroutine, so both
	// pipes drain while Wait blocks.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	isolate(cmd)

	log := e.logger()
	log.Debug("exec", "cmd", cmd.String())

	start := e.clock().Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvironment, err)
	}
	waitErr := cmd.Wait()
	elapsed := e.clock().Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && e.Timeout > 0 {
			log.Debug("killed", "script", script, "after", elapsed)
			return nil, &TimeoutError{Limit: e.Timeout}
		}
		return nil, ctxErr
	}

	code := 0
	switch {
	case waitErr == nil:
	case errors.Is(waitErr, exec.ErrWaitDelay):
		// The checker exited 0 but something it started kept the output
		// pipes open. The captured output is complete up to the exit.
		log.Warn("output still open after exit, killing leftovers", "script", script)
		reap(cmd)
	default:
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrEnvironment, waitErr)
		}
		code = exitCode(exitErr)
	}

	log.Debug("exited", "script", script, "code", code, "duration", elapsed)

	return &Result{
		ExitCode: code,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}, nil
}

func (e *Executor) clock() clock.Clock {
	if e.Clock == nil {
		return clock.Default
	}
	return e.Clock
}

func (e *Executor) logger() *logging.Logger {
	if e.Logger == nil {
		return logging.WithComponent("executor")
	}
	return e.Logger
}
