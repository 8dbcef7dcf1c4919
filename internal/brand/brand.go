// Package brand provides centralized naming and default constants for the runner.
//
// The identity is loaded from brand.json at compile time via go:embed so that
// wrapper scripts and CI definitions can read the same defaults.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
)

//go:embed brand.json
var brandJSON []byte

// identity is the shape of brand.json.
type identity struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Description      string `json:"description"`
	ConfigEnvPrefix  string `json:"configEnvPrefix"`
	ConfigFileName   string `json:"configFileName"`
	BinaryName       string `json:"binaryName"`
	DefaultRunner    string `json:"defaultRunner"`
	DefaultChecker   string `json:"defaultChecker"`
	ScriptExtension  string `json:"scriptExtension"`
	SentinelExitCode int    `json:"sentinelExitCode"`
}

func init() {
	var b identity
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	ConfigEnvPrefix = b.ConfigEnvPrefix
	ConfigFileName = b.ConfigFileName
	BinaryName = b.BinaryName
	DefaultRunner = b.DefaultRunner
	DefaultChecker = b.DefaultChecker
	ScriptExtension = b.ScriptExtension
	SentinelExitCode = b.SentinelExitCode
}

var (
	Name             string
	LowerName        string
	Description      string
	ConfigEnvPrefix  string
	ConfigFileName   string
	BinaryName       string
	DefaultRunner    string
	DefaultChecker   string
	ScriptExtension  string
	SentinelExitCode int

	// Version is set at build time via -ldflags
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// EnvVar returns the prefixed environment variable name for key,
// e.g. EnvVar("RUNNER") -> CONFORM_RUNNER.
func EnvVar(key string) string {
	return ConfigEnvPrefix + "_" + key
}

// Getenv reads a prefixed environment variable.
func Getenv(key string) string {
	return os.Getenv(EnvVar(key))
}

// VersionString returns a one-line description of the build.
func VersionString() string {
	return BinaryName + " " + Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
