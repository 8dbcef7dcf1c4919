// Package config holds the runner configuration.
//
// Values are layered: built-in defaults, then an optional config file,
// then CONFORM_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"grimm.is/conform/internal/brand"
	"grimm.is/conform/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the effective runner configuration.
type Config struct {
	// Runner is the interpreter binary under test.
	Runner string
	// Checker is the memory checker binary.
	Checker string
	// Sentinel is the exit code the checker uses to report a memory error.
	Sentinel int
	// Extension selects test scripts in the test directory.
	Extension string
	// Match optionally filters scripts by base name (glob syntax).
	Match string
	// Timeout bounds each case; zero disables it.
	Timeout time.Duration
	// LogLevel is the diagnostic log level.
	LogLevel string
	// LogFormat selects the diagnostic log handler: text or json.
	LogFormat string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Runner:    brand.DefaultRunner,
		Checker:   brand.DefaultChecker,
		Sentinel:  brand.SentinelExitCode,
		Extension: brand.ScriptExtension,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Validate checks the configuration for values the runner cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Runner) == "" {
		return fmt.Errorf("%w: runner is empty", ErrInvalid)
	}
	if strings.TrimSpace(c.Checker) == "" {
		return fmt.Errorf("%w: checker is empty", ErrInvalid)
	}
	if c.Sentinel < 1 || c.Sentinel > 255 {
		return fmt.Errorf("%w: sentinel %d outside 1..255", ErrInvalid, c.Sentinel)
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("%w: extension %q must look like .lisp", ErrInvalid, c.Extension)
	}
	if c.Match != "" {
		if _, err := glob.Compile(c.Match); err != nil {
			return fmt.Errorf("%w: match %q: %v", ErrInvalid, c.Match, err)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalid, c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// MergeEnv applies CONFORM_* environment overrides read through getenv.
func (c *Config) MergeEnv(getenv func(string) string) error {
	if v := getenv(brand.EnvVar("RUNNER")); v != "" {
		c.Runner = v
	}
	if v := getenv(brand.EnvVar("CHECKER")); v != "" {
		c.Checker = v
	}
	if v := getenv(brand.EnvVar("SENTINEL")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, brand.EnvVar("SENTINEL"), v, err)
		}
		c.Sentinel = n
	}
	if v := getenv(brand.EnvVar("EXTENSION")); v != "" {
		c.Extension = v
	}
	if v := getenv(brand.EnvVar("MATCH")); v != "" {
		c.Match = v
	}
	if v := getenv(brand.EnvVar("TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, brand.EnvVar("TIMEOUT"), v, err)
		}
		c.Timeout = d
	}
	if v := getenv(brand.EnvVar("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := getenv(brand.EnvVar("LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
	return nil
}
