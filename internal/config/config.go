package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/spigot/internal/rules"
)

// Config holds the global spigot configuration.
type Config struct {
	Compile   CompileConfig             `yaml:"compile"`
	Trace     TraceConfig               `yaml:"trace"`
	Rules     rules.Config              `yaml:"rules"`
	Pipelines map[string]PipelineConfig `yaml:"pipelines"`
}

// CompileConfig controls composition behavior.
type CompileConfig struct {
	// AllowPropagation: nil = allow (the default), false = reject =>?
	// stages, whose value would otherwise escape to a caller that cannot
	// receive it.
	AllowPropagation *bool `yaml:"allow_propagation"`
}

// PropagationAllowed reports whether =>? stages may propagate out of the
// pipeline.
func (c *CompileConfig) PropagationAllowed() bool {
	return c.AllowPropagation == nil || *c.AllowPropagation
}

// TraceConfig controls the compile trace log.
type TraceConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// PipelineConfig is a named pipeline that can be run with --run.
type PipelineConfig struct {
	Pipe string `yaml:"pipe"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Trace: TraceConfig{
			Path:      filepath.Join(home, ".local", "share", "spigot", "trace.jsonl"),
			MaxSizeMB: 100,
		},
	}
}

// Load reads the config from the standard location
// (~/.config/spigot/config.yaml). If the file doesn't exist, returns the
// default config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(filepath.Join(home, ".config", "spigot", "config.yaml"))
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Expand ~ in the trace path.
	if cfg.Trace.Path != "" && cfg.Trace.Path[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.Trace.Path = filepath.Join(home, cfg.Trace.Path[1:])
	}

	return cfg, nil
}

// BuildRuleSet compiles the configured rules on top of the hardcoded ones.
func (c *Config) BuildRuleSet() (*rules.RuleSet, error) {
	rs := rules.NewRuleSet(rules.Hardcoded()...)
	fns, err := rules.Compile(c.Rules)
	if err != nil {
		return nil, err
	}
	for _, fn := range fns {
		rs.AddConfig(fn)
	}
	return rs, nil
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spigot", "config.yaml")
}
