// Package config loads and validates the worker configuration file.
// The configuration is read once at startup and treated as immutable.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unprompted/unprompted/internal/scope"
)

// Environment variables checked after config load. Boolean-valued; they
// force verbose/debug mode regardless of what the file says.
const (
	EnvVerbose   = "UNPROMPTED_VERBOSE"
	EnvDebugMode = "UNPROMPTED_DEBUG_MODE"
)

// UIA is the provider block: which windows to inspect and the optional
// per-target regex overrides.
type UIA struct {
	Enabled          bool     `yaml:"enabled"`
	WindowTitleRegex string   `yaml:"window_title_regex"`
	TargetRegexes    []string `yaml:"target_regexes"`
}

// Config is the full worker configuration.
type Config struct {
	Targets                 []string     `yaml:"targets"`
	IntervalSeconds         float64      `yaml:"interval_seconds"`
	Verbose                 bool         `yaml:"verbose"`
	DebugMode               bool         `yaml:"debug_mode"`
	IgnoreKeyboardInterrupt bool         `yaml:"ignore_keyboard_interrupt"`
	ContinueOnError         bool         `yaml:"continue_on_error"`
	JournalPath             string       `yaml:"journal_path"`
	UIA                     UIA          `yaml:"uia"`
	Scope                   scope.Config `yaml:"scope"`
}

// Default returns the configuration applied before the file is decoded,
// so absent keys keep their documented defaults.
func Default() Config {
	return Config{
		Targets:         []string{"accept all", "run"},
		IntervalSeconds: 2.0,
		ContinueOnError: true,
		UIA:             UIA{Enabled: true},
		Scope:           scope.Default(),
	}
}

var (
	knownTopKeys = keySet(
		"targets", "interval_seconds", "verbose", "debug_mode",
		"ignore_keyboard_interrupt", "continue_on_error", "journal_path",
		"uia", "scope")
	knownUIAKeys = keySet("enabled", "window_title_regex", "target_regexes")
	knownScopeKeys = keySet(
		"enabled", "relative_to_window", "preset", "inset_percent",
		"left_fraction", "top_fraction", "width_fraction", "height_fraction")
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// Load reads the YAML file at path. It returns the decoded configuration
// and a warning per unknown key (typo detection); unknown keys are never
// fatal.
func Load(path string) (Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read config: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Config{}, nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if len(root.Content) > 0 {
		if err := root.Content[0].Decode(&cfg); err != nil {
			return Config{}, nil, fmt.Errorf("decode config: %w", err)
		}
	}

	warnings := unknownKeyWarnings(&root)
	return cfg, warnings, nil
}

// unknownKeyWarnings walks the top, uia and scope mappings and reports
// keys outside the known sets.
func unknownKeyWarnings(root *yaml.Node) []string {
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil
	}
	var warnings []string
	top := root.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if !knownTopKeys[key.Value] {
			warnings = append(warnings, fmt.Sprintf("unknown config key %q — will be ignored", key.Value))
			continue
		}
		switch key.Value {
		case "uia":
			warnings = append(warnings, nestedWarnings("uia", value, knownUIAKeys)...)
		case "scope":
			warnings = append(warnings, nestedWarnings("scope", value, knownScopeKeys)...)
		}
	}
	return warnings
}

func nestedWarnings(prefix string, node *yaml.Node, known map[string]bool) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	var warnings []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !known[key.Value] {
			warnings = append(warnings, fmt.Sprintf("unknown config key %q — will be ignored", prefix+"."+key.Value))
		}
	}
	return warnings
}

// Validate enforces the required fields. Configuration errors are fatal
// at startup, before the poll loop begins.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UIA.WindowTitleRegex) == "" {
		return fmt.Errorf("config uia.window_title_regex is required and must be non-empty")
	}
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("config interval_seconds must be positive, got %v", c.IntervalSeconds)
	}
	return nil
}

// CompileTitleRegex compiles the window title pattern, case-insensitive.
func (c *Config) CompileTitleRegex() (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + strings.TrimSpace(c.UIA.WindowTitleRegex))
	if err != nil {
		return nil, fmt.Errorf("invalid uia.window_title_regex %q: %w", c.UIA.WindowTitleRegex, err)
	}
	return re, nil
}

// Overrides records which environment overrides were applied, for the
// startup banner.
type Overrides struct {
	Verbose   *bool
	DebugMode *bool
}

// Applied reports whether any override was present.
func (o Overrides) Applied() bool { return o.Verbose != nil || o.DebugMode != nil }

// ApplyEnv folds the boolean environment overrides into the config.
func (c *Config) ApplyEnv() Overrides {
	var o Overrides
	if v, ok := ParseBoolEnv(EnvVerbose); ok {
		c.Verbose = v
		o.Verbose = &v
	}
	if v, ok := ParseBoolEnv(EnvDebugMode); ok {
		c.DebugMode = v
		o.DebugMode = &v
	}
	return o
}

// ParseBoolEnv reads an environment variable with a permissive boolean
// grammar: 1/true/yes/on and 0/false/no/off. Anything else (or an unset
// variable) reports ok=false.
func ParseBoolEnv(name string) (value, ok bool) {
	raw, present := os.LookupEnv(name)
	if !present {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
