package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v2"
)

// fileConfig is the on-disk shape. Unset fields leave the layer below alone.
type fileConfig struct {
	Runner    *string `hcl:"runner,optional" yaml:"runner"`
	Checker   *string `hcl:"checker,optional" yaml:"checker"`
	Sentinel  *int    `hcl:"sentinel,optional" yaml:"sentinel"`
	Extension *string `hcl:"extension,optional" yaml:"extension"`
	Match     *string `hcl:"match,optional" yaml:"match"`
	Timeout   *string `hcl:"timeout,optional" yaml:"timeout"`
	LogLevel  *string `hcl:"log_level,optional" yaml:"log_level"`
	LogFormat *string `hcl:"log_format,optional" yaml:"log_format"`
}

// MergeFile loads the config file at path and applies the values it sets.
// The format is chosen by extension: .hcl, .json (HCL's JSON syntax),
// .yaml or .yml. Anything else is tried as HCL.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc *fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fc, err = parseYAML(data)
	case ".json":
		fc, err = parseHCL(data, path, true)
	default:
		fc, err = parseHCL(data, path, false)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.apply(fc)
}

// Load returns the defaults overlaid with the file at path (if non-empty)
// and the process environment. The result is not validated; callers apply
// flags first.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.MergeEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseHCL(data []byte, filename string, isJSON bool) (*fileConfig, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if isJSON {
		file, diags = parser.ParseJSON(data, filename)
	} else {
		file, diags = parser.ParseHCL(data, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse error: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(os.Environ()), &fc); diags.HasErrors() {
		return nil, fmt.Errorf("HCL decode error: %s", diags.Error())
	}
	return &fc, nil
}

func parseYAML(data []byte) (*fileConfig, error) {
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	return &fc, nil
}

// evalContext exposes the process environment to HCL expressions as the
// "env" object, e.g. runner = env.FUNLISP_BIN.
func evalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (c *Config) apply(fc *fileConfig) error {
	if fc.Runner != nil {
		c.Runner = *fc.Runner
	}
	if fc.Checker != nil {
		c.Checker = *fc.Checker
	}
	if fc.Sentinel != nil {
		c.Sentinel = *fc.Sentinel
	}
	if fc.Extension != nil {
		c.Extension = *fc.Extension
	}
	if fc.Match != nil {
		c.Match = *fc.Match
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalid, *fc.Timeout, err)
		}
		c.Timeout = d
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		c.LogFormat = *fc.LogFormat
	}
	return nil
}
