package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Compile.PropagationAllowed() {
		t.Error("propagation should be allowed by default")
	}
	if cfg.Trace.Enabled {
		t.Error("trace should be off by default")
	}
	if cfg.Trace.MaxSizeMB != 100 {
		t.Errorf("default trace max size: got %d", cfg.Trace.MaxSizeMB)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
compile:
  allow_propagation: false
trace:
  enabled: true
  path: /tmp/spigot-trace.jsonl
rules:
  max_stages: 8
  forbid_operators: [unwrap]
pipelines:
  answer:
    pipe: "21 => double"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Compile.PropagationAllowed() {
		t.Error("allow_propagation: false not honored")
	}
	if !cfg.Trace.Enabled || cfg.Trace.Path != "/tmp/spigot-trace.jsonl" {
		t.Errorf("trace config: %+v", cfg.Trace)
	}
	if cfg.Rules.MaxStages != 8 {
		t.Errorf("rules.max_stages: got %d", cfg.Rules.MaxStages)
	}
	if got := cfg.Pipelines["answer"].Pipe; got != "21 => double" {
		t.Errorf("pipelines.answer: %q", got)
	}
}

func TestLoadFromExpandsTracePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("trace:\n  path: ~/t.jsonl\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if cfg.Trace.Path != filepath.Join(home, "t.jsonl") {
		t.Errorf("~ not expanded: %q", cfg.Trace.Path)
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestBuildRuleSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules.ForbidOperators = []string{"bogus"}
	if _, err := cfg.BuildRuleSet(); err == nil {
		t.Error("expected unknown operator error")
	}

	cfg.Rules.ForbidOperators = []string{"apply_mut"}
	rs, err := cfg.BuildRuleSet()
	if err != nil {
		t.Fatal(err)
	}
	if rs == nil {
		t.Fatal("nil rule set")
	}
}
