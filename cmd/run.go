package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"grimm.is/conform/internal/brand"
	"grimm.is/conform/internal/config"
	"grimm.is/conform/internal/executor"
	"grimm.is/conform/internal/logging"
	"grimm.is/conform/internal/report"
	"grimm.is/conform/internal/suite"
)

// runFlags holds the run command's flag values. Only flags the user set
// override the loaded configuration.
type runFlags struct {
	configFile string
	runner     string
	checker    string
	match      string
	timeout    time.Duration
	logFormat  string
	verbose    bool
	set        map[string]bool
}

func parseRunFlags(args []string, stderr io.Writer) (*runFlags, []string, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &runFlags{set: make(map[string]bool)}
	fs.StringVar(&f.configFile, "config", "", "Configuration file (.hcl, .json, .yaml)")
	fs.StringVar(&f.configFile, "c", "", "Alias for -config")

	fs.StringVar(&f.runner, "runner", brand.DefaultRunner, "Interpreter binary under test")
	fs.StringVar(&f.runner, "r", brand.DefaultRunner, "Alias for -runner")

	fs.StringVar(&f.checker, "checker", brand.DefaultChecker, "Memory checker binary")
	fs.StringVar(&f.match, "match", "", "Only run scripts whose name matches this glob")
	fs.DurationVar(&f.timeout, "timeout", 0, "Per-case time limit (0 disables)")
	fs.StringVar(&f.logFormat, "log-format", "text", "Diagnostic log format: text or json")

	fs.BoolVar(&f.verbose, "verbose", false, "Log each invocation to stderr")
	fs.BoolVar(&f.verbose, "v", false, "Alias for -verbose")

	fs.Usage = func() {
		Printer.Fprintf(stderr, "Usage: %s [run] [flags] <directory>\n\nFlags:\n", brand.BinaryName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	aliases := map[string]string{"c": "config", "r": "runner", "v": "verbose"}
	fs.Visit(func(fl *flag.Flag) {
		name := fl.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		f.set[name] = true
	})
	return f, fs.Args(), nil
}

// loadRunConfig layers defaults, the config file, the environment and the
// flags, then validates the result. Without -config, ./conform.hcl is used
// when present.
func loadRunConfig(f *runFlags) (*config.Config, error) {
	path := f.configFile
	if path == "" {
		path = brand.Getenv("CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(brand.ConfigFileName); err == nil {
			path = brand.ConfigFileName
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f.set["runner"] {
		cfg.Runner = f.runner
	}
	if f.set["checker"] {
		cfg.Checker = f.checker
	}
	if f.set["match"] {
		cfg.Match = f.match
	}
	if f.set["timeout"] {
		cfg.Timeout = f.timeout
	}
	if f.set["log-format"] {
		cfg.LogFormat = f.logFormat
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunSuite runs every script in a test directory and returns the process
// exit status. An error means no verdict was reached; the caller reports it
// and exits with ExitError.
func RunSuite(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	f, rest, err := parseRunFlags(args, stderr)
	if err != nil {
		return ExitError, err
	}
	if len(rest) != 1 {
		return ExitError, fmt.Errorf("%w: %s [run] [flags] <directory>", ErrUsage, brand.BinaryName)
	}
	dir := rest[0]

	cfg, err := loadRunConfig(f)
	if err != nil {
		return ExitError, err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	asJSON, _ := logging.ParseFormat(cfg.LogFormat)
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.JSON = asJSON
	logCfg.Output = stderr
	logger := logging.New(logCfg)
	logging.SetDefault(logger)

	scripts, err := suite.Discover(dir, cfg.Extension, cfg.Match)
	if err != nil {
		return ExitError, err
	}
	logger.Debug("discovered scripts", "dir", dir, "count", len(scripts), "match", cfg.Match)

	exec := executor.New(cfg.Checker, cfg.Runner, cfg.Sentinel)
	exec.Timeout = cfg.Timeout
	exec.Logger = logger.WithComponent("executor")
	if len(scripts) > 0 {
		if err := exec.Preflight(); err != nil {
			return ExitError, err
		}
	}

	driver := suite.New(exec, report.New(stdout, Printer), cfg.Runner, cfg.Sentinel)
	sum, err := driver.Run(ctx, scripts)
	if err != nil {
		return ExitError, err
	}
	return sum.Status(), nil
}
