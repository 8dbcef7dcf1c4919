//go:build !unix

package executor

import (
	"os/exec"
	"time"
)

func isolate(cmd *exec.Cmd) {
	cmd.WaitDelay = 2 * time.Second
}

func reap(*exec.Cmd) {}

func exitCode(err *exec.ExitError) int {
	return err.ExitCode()
}
