package rules

import (
	"fmt"

	"github.com/marcelocantos/spigot/internal/stage"
)

// Config holds the rule settings read from YAML config.
type Config struct {
	// MaxStages rejects pipelines longer than this. Zero means no limit.
	MaxStages int `yaml:"max_stages"`

	// ForbidOperators lists operator names (basic, and_then, map, try,
	// unwrap, clone, apply, apply_mut) whose stages are rejected.
	ForbidOperators []string `yaml:"forbid_operators"`
}

// Compile turns the config into CheckFuncs. Unknown operator names are an
// error; a typo that silently forbade nothing would be worse.
func Compile(cfg Config) ([]CheckFunc, error) {
	var fns []CheckFunc

	if cfg.MaxStages > 0 {
		limit := cfg.MaxStages
		fns = append(fns, func(stages []stage.Stage) error {
			if len(stages) > limit {
				return fmt.Errorf("pipeline has %d stages; config allows %d. Rerun with --force to bypass", len(stages), limit)
			}
			return nil
		})
	}

	if len(cfg.ForbidOperators) > 0 {
		forbidden := make(map[stage.Operator]bool, len(cfg.ForbidOperators))
		for _, name := range cfg.ForbidOperators {
			op, err := stage.ParseOperator(name)
			if err != nil {
				return nil, fmt.Errorf("forbid_operators: %w", err)
			}
			forbidden[op] = true
		}
		fns = append(fns, func(stages []stage.Stage) error {
			for _, st := range stages {
				if forbidden[st.Op] {
					return fmt.Errorf("%s: operator %s is forbidden by config. Rerun with --force to bypass",
						st.Span, st.Op.Token())
				}
			}
			return nil
		})
	}

	return fns, nil
}
