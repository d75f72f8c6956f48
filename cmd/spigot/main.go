package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"

	"github.com/marcelocantos/spigot/internal/cli"
	"github.com/marcelocantos/spigot/internal/config"
	"github.com/marcelocantos/spigot/internal/eval"
	"github.com/marcelocantos/spigot/internal/eval/builtin"
	"github.com/marcelocantos/spigot/internal/trace"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	log.SetHandler(logcli.Default)

	args := os.Args[1:]

	// Global flags may precede the command.
	configPath := ""
	force := false
flags:
	for len(args) > 0 {
		switch args[0] {
		case "--config":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "spigot: --config needs a path")
				return cli.ExitCompile
			}
			configPath = args[1]
			args = args[2:]
		case "--force":
			force = true
			args = args[1:]
		case "--verbose":
			log.SetLevel(log.DebugLevel)
			log.Debugf("spigot version %s", version)
			args = args[1:]
		default:
			break flags
		}
	}

	if len(args) == 0 {
		cli.RunHelp(os.Stderr)
		return cli.ExitCompile
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.WithError(err).Error("config")
		return cli.ExitCompile
	}

	var tracer *trace.Writer
	if cfg.Trace.Enabled {
		tracer, err = trace.NewWriter(cfg.Trace.Path)
		if err != nil {
			// Continue without tracing.
			log.WithError(err).Warn("trace log unavailable")
			tracer = nil
		}
	}

	env := eval.NewEnv()
	builtin.RegisterAll(env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch args[0] {
	case "--compile":
		src, err := cli.Source(os.Stdin, args[1:])
		if err != nil {
			log.WithError(err).Error("read pipeline")
			return cli.ExitCompile
		}
		return cli.RunCompile(cfg, tracer, os.Stdout, src, force)
	case "--eval":
		src, err := cli.Source(os.Stdin, args[1:])
		if err != nil {
			log.WithError(err).Error("read pipeline")
			return cli.ExitCompile
		}
		return cli.RunEval(ctx, env, cfg, tracer, src, force, os.Stdout)
	case "--run":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "spigot: --run needs a pipeline name")
			return cli.ExitCompile
		}
		return cli.RunNamed(ctx, env, cfg, tracer, args[1], force, os.Stdout)
	case "--list":
		return cli.RunList(env, os.Stdout)
	case "--trace":
		return cli.RunTrace(os.Stdout, cfg.Trace.Path, args[1:])
	case "--help":
		return cli.RunHelp(os.Stdout)
	case "--version":
		fmt.Printf("spigot %s\n", version)
		return cli.ExitOK
	default:
		// Bare arguments are a pipeline to evaluate.
		src, err := cli.Source(os.Stdin, args)
		if err != nil {
			log.WithError(err).Error("read pipeline")
			return cli.ExitCompile
		}
		return cli.RunEval(ctx, env, cfg, tracer, src, force, os.Stdout)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
