// Package rules validates scanned pipelines before composition.
// Hardcoded limits always run; config-driven rules sit on top and can
// be bypassed for an explicitly approved run.
package rules

import "github.com/marcelocantos/spigot/internal/stage"

// CheckFunc inspects a scanned stage list.
// Returns a non-nil error to block compilation.
type CheckFunc func(stages []stage.Stage) error

// RuleSet holds an ordered list of validation rules. Hardcoded rules run first
// and cannot be removed. Config rules are appended after.
type RuleSet struct {
	hardcoded []CheckFunc
	config    []CheckFunc
}

// NewRuleSet creates a RuleSet with the given hardcoded rules.
func NewRuleSet(hardcoded ...CheckFunc) *RuleSet {
	return &RuleSet{hardcoded: hardcoded}
}

// AddConfig appends a config-driven rule.
func (rs *RuleSet) AddConfig(fn CheckFunc) {
	rs.config = append(rs.config, fn)
}

// Check runs all rules against the scanned stages. Hardcoded rules always run
// first. When force is true, config rules are skipped (the user has explicitly
// approved the pipeline).
func (rs *RuleSet) Check(stages []stage.Stage, force bool) error {
	for _, fn := range rs.hardcoded {
		if err := fn(stages); err != nil {
			return err
		}
	}
	if force {
		return nil
	}
	for _, fn := range rs.config {
		if err := fn(stages); err != nil {
			return err
		}
	}
	return nil
}
