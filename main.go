package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"grimm.is/conform/cmd"
	"grimm.is/conform/internal/brand"
	"grimm.is/conform/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return cmd.ExitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "run":
		return runSuite(ctx, args[1:])

	case "parse":
		if err := cmd.RunParse(args[1:], os.Stdout, os.Stderr); err != nil {
			return fail(err)
		}
		return cmd.ExitPass

	case "version":
		cmd.RunVersion(os.Stdout)
		return cmd.ExitPass

	case "help", "-h", "--help":
		printUsage()
		return cmd.ExitPass

	default:
		// Bare flags or a directory mean "run".
		return runSuite(ctx, args)
	}
}

func runSuite(ctx context.Context, args []string) int {
	status, err := cmd.RunSuite(ctx, args, os.Stdout, os.Stderr)
	if err != nil {
		return fail(err)
	}
	return status
}

func fail(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return cmd.ExitPass
	}
	printer.Fprintf(os.Stderr, "%s: %v\n", brand.BinaryName, err)
	return cmd.ExitError
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s [run] [flags] <directory>   Run every %s script in directory, stopping at the first failure
  %s parse [-sentinel N] <script> Show the expectation a script declares
  %s version                     Show build information

Run flags:
  -runner, -r <path>   Interpreter under test (default %s)
  -checker <path>      Memory checker (default %s)
  -config, -c <file>   Configuration file (.hcl, .json, .yaml); ./%s is used when present
  -match <glob>        Only run scripts whose name matches
  -timeout <duration>  Per-case time limit, e.g. 10s (default none)
  -log-format <fmt>    Diagnostic log format on stderr: text or json
  -verbose, -v         Debug logging on stderr

Exit status: 0 all passed, 1 a case failed, 2 the run could not be completed.
`,
		brand.Name, brand.Description,
		brand.LowerName, brand.ScriptExtension,
		brand.LowerName, brand.LowerName,
		brand.DefaultRunner, brand.DefaultChecker, brand.ConfigFileName)
}
