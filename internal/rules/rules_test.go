package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/marcelocantos/spigot/internal/stage"
)

func stagesOf(ops ...stage.Operator) []stage.Stage {
	out := make([]stage.Stage, len(ops))
	for i, op := range ops {
		out[i] = stage.Stage{Op: op, Operand: "f", Span: stage.Span{Line: 1, Col: i + 1}}
	}
	return out
}

func TestHardcodedAlwaysRuns(t *testing.T) {
	rs := NewRuleSet(Hardcoded()...)
	big := stage.Stage{Op: stage.Basic, Operand: strings.Repeat("x", hardMaxOperandBytes+1)}
	if err := rs.Check([]stage.Stage{big}, true); err == nil {
		t.Error("force must not bypass hardcoded limits")
	}
	if err := rs.Check(stagesOf(stage.Basic), false); err != nil {
		t.Errorf("plain pipeline rejected: %v", err)
	}
}

func TestForceSkipsConfigRules(t *testing.T) {
	blocked := errors.New("blocked")
	rs := NewRuleSet()
	rs.AddConfig(func([]stage.Stage) error { return blocked })

	if err := rs.Check(stagesOf(stage.Basic), false); !errors.Is(err, blocked) {
		t.Errorf("expected config rule to fire, got %v", err)
	}
	if err := rs.Check(stagesOf(stage.Basic), true); err != nil {
		t.Errorf("force should skip config rules, got %v", err)
	}
}

func TestCompileMaxStages(t *testing.T) {
	fns, err := Compile(Config{MaxStages: 2})
	if err != nil {
		t.Fatal(err)
	}
	rs := NewRuleSet()
	for _, fn := range fns {
		rs.AddConfig(fn)
	}
	if err := rs.Check(stagesOf(stage.Basic, stage.Basic), false); err != nil {
		t.Errorf("two stages within limit: %v", err)
	}
	err = rs.Check(stagesOf(stage.Basic, stage.Basic, stage.Basic), false)
	if err == nil || !strings.Contains(err.Error(), "3 stages") {
		t.Errorf("expected stage count violation, got %v", err)
	}
}

func TestCompileForbidOperators(t *testing.T) {
	fns, err := Compile(Config{ForbidOperators: []string{"unwrap", "apply_mut"}})
	if err != nil {
		t.Fatal(err)
	}
	rs := NewRuleSet()
	for _, fn := range fns {
		rs.AddConfig(fn)
	}

	if err := rs.Check(stagesOf(stage.Basic, stage.Map), false); err != nil {
		t.Errorf("allowed operators rejected: %v", err)
	}
	err = rs.Check(stagesOf(stage.Basic, stage.Unwrap), false)
	if err == nil || !strings.Contains(err.Error(), "=>*") {
		t.Errorf("expected unwrap violation naming the token, got %v", err)
	}
	err = rs.Check(stagesOf(stage.ApplyMut), false)
	if err == nil || !strings.Contains(err.Error(), "=>$") {
		t.Errorf("expected apply_mut violation naming the token, got %v", err)
	}
}

func TestCompileUnknownOperator(t *testing.T) {
	_, err := Compile(Config{ForbidOperators: []string{"bogus"}})
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected unknown operator error, got %v", err)
	}
}

func TestViolationCarriesSpan(t *testing.T) {
	fns, err := Compile(Config{ForbidOperators: []string{"clone"}})
	if err != nil {
		t.Fatal(err)
	}
	stages := []stage.Stage{
		{Op: stage.Basic, Operand: "f", Span: stage.Span{Line: 1, Col: 1}},
		{Op: stage.Clone, Operand: "...", Span: stage.Span{Line: 3, Col: 9}},
	}
	err = fns[0](stages)
	if err == nil || !strings.Contains(err.Error(), "3:9") {
		t.Errorf("expected span 3:9 in violation, got %v", err)
	}
}
