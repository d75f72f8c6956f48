package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/apex/log"

	"github.com/marcelocantos/spigot/internal/config"
	"github.com/marcelocantos/spigot/internal/eval"
	"github.com/marcelocantos/spigot/internal/trace"
)

// RunEval compiles and evaluates a pipeline, printing the final value.
// Error-carrying results (Err, None) are still successful evaluations;
// only faults exit non-zero.
func RunEval(ctx context.Context, env *eval.Env, cfg *config.Config, tracer *trace.Writer, src string, force bool, w io.Writer) int {
	e, err := compileSource(cfg, tracer, src, force)
	if err != nil {
		log.WithError(err).Error("compile failed")
		return ExitCompile
	}

	start := time.Now()
	v, err := eval.Run(ctx, e, env)
	duration := time.Since(start)

	if err != nil {
		logResult(tracer, src, "", err.Error(), duration)
		log.WithError(err).Error("evaluation failed")
		return ExitRuntime
	}

	out := eval.Format(v)
	logResult(tracer, src, out, "", duration)
	fmt.Fprintln(w, out)
	return ExitOK
}

// RunNamed evaluates a pipeline configured under pipelines.<name>.
func RunNamed(ctx context.Context, env *eval.Env, cfg *config.Config, tracer *trace.Writer, name string, force bool, w io.Writer) int {
	p, ok := cfg.Pipelines[name]
	if !ok {
		log.Errorf("unknown pipeline %q; configure it under pipelines.%s", name, name)
		return ExitCompile
	}
	log.Debugf("running pipeline %q", name)
	return RunEval(ctx, env, cfg, tracer, p.Pipe, force, w)
}

func logResult(tracer *trace.Writer, src, result, errMsg string, duration time.Duration) {
	if tracer == nil {
		return
	}
	// Best-effort tracing.
	if err := tracer.Result(src, result, errMsg, duration); err != nil {
		log.WithError(err).Warn("trace result entry")
	}
}
