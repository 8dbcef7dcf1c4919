// Package testutil builds throwaway checker and runner binaries for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// FakeCheckerScript accepts the real checker's invocation shape
// (-q --error-exitcode=N runner script), runs the runner, and exits with N
// when the script contains a line "; @invalid-read". It rejects any other
// argument shape with exit code 97.
const FakeCheckerScript = `#!/bin/sh
[ "$1" = "-q" ] || exit 97
case "$2" in
--error-exitcode=*) code=${2#--error-exitcode=} ;;
*) exit 97 ;;
esac
shift 2
"$@"
rc=$?
if grep -q '^; @invalid-read' "$2"; then
	echo "==1== Invalid read of size 8" >&2
	exit "$code"
fi
exit $rc
`

// FakeRunnerScript interprets a test script as shell after dropping every
// line that starts with ';'.
const FakeRunnerScript = `#!/bin/sh
sed '/^;/d' "$1" | /bin/sh
`

// RequireShell skips the test unless /bin/sh and the tools the fake
// binaries rely on are available.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test: requires a POSIX shell")
	}
	for _, tool := range []string{"/bin/sh", "sed", "grep"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("Skipping test: %s not available", tool)
		}
	}
}

// WriteExecutable writes body to dir/name with mode 0755 and returns the path.
func WriteExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// WriteFile writes body to dir/name with mode 0644 and returns the path.
func WriteFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Toolchain installs the fake checker and runner in a temp dir and returns
// their paths.
func Toolchain(t *testing.T) (checker, runner string) {
	t.Helper()
	RequireShell(t)
	dir := t.TempDir()
	checker = WriteExecutable(t, dir, "fakegrind", FakeCheckerScript)
	runner = WriteExecutable(t, dir, "fakelisp", FakeRunnerScript)
	return checker, runner
}
