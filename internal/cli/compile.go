// Package cli implements the spigot command surface: compiling,
// evaluating and inspecting pipelines.
package cli

import (
	"fmt"
	"io"

	"github.com/apex/log"

	"github.com/marcelocantos/spigot/internal/compose"
	"github.com/marcelocantos/spigot/internal/config"
	"github.com/marcelocantos/spigot/internal/expr"
	"github.com/marcelocantos/spigot/internal/stage"
	"github.com/marcelocantos/spigot/internal/trace"
)

// Exit codes shared by the run functions.
const (
	ExitOK      = 0
	ExitCompile = 1 // scan, rule or composition failure
	ExitRuntime = 2 // evaluation fault
)

// compileSource scans, lint-checks and composes a pipeline. When a trace
// writer is supplied, one entry per stage records the expression composed
// so far.
func compileSource(cfg *config.Config, tracer *trace.Writer, src string, force bool) (expr.Expr, error) {
	initial, stages, err := stage.Scan(src)
	if err != nil {
		return nil, err
	}

	rs, err := cfg.BuildRuleSet()
	if err != nil {
		return nil, err
	}
	if err := rs.Check(stages, force); err != nil {
		return nil, err
	}

	opts := compose.Options{AllowPropagation: cfg.Compile.PropagationAllowed()}
	e, err := compose.Compose(expr.Raw{Text: initial}, stages, opts)
	if err != nil {
		return nil, err
	}

	if tracer != nil {
		for i := range stages {
			prefix, err := compose.Compose(expr.Raw{Text: initial}, stages[:i+1], opts)
			if err != nil {
				break
			}
			// Best-effort tracing. A broken trace log must not fail the
			// compile.
			if err := tracer.Stage(src, i+1, stages[i], expr.Render(prefix)); err != nil {
				log.WithError(err).Warn("trace stage entry")
				break
			}
		}
	}

	return e, nil
}

// RunCompile compiles a pipeline and prints the composed expression.
func RunCompile(cfg *config.Config, tracer *trace.Writer, w io.Writer, src string, force bool) int {
	e, err := compileSource(cfg, tracer, src, force)
	if err != nil {
		log.WithError(err).Error("compile failed")
		return ExitCompile
	}
	fmt.Fprintln(w, expr.Render(e))
	return ExitOK
}
