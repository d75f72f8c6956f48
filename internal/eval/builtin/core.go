package builtin

import (
	"context"
	"fmt"

	"github.com/marcelocantos/spigot/internal/eval"
)

// registerCore adds container constructors and side-effect helpers.
func registerCore(env *eval.Env) {
	env.RegisterFunc("Ok", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("Ok", args, 1); err != nil {
			return nil, err
		}
		return eval.Ok(eval.Deref(args[0])), nil
	})
	env.RegisterFunc("Err", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("Err", args, 1); err != nil {
			return nil, err
		}
		return eval.Err(eval.Deref(args[0])), nil
	})
	env.RegisterFunc("Some", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("Some", args, 1); err != nil {
			return nil, err
		}
		return eval.Some(eval.Deref(args[0])), nil
	})
	env.RegisterFunc("None", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("None", args, 0); err != nil {
			return nil, err
		}
		return eval.None(), nil
	})

	// print writes the value in display form; the threaded value is
	// unaffected when used under =>#.
	env.RegisterFunc("print", func(_ context.Context, env *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("print", args, 1); err != nil {
			return nil, err
		}
		fmt.Fprintln(env.Stdout, eval.Display(args[0]))
		return nil, nil
	})

	// debug writes the value in constructor notation to stderr.
	env.RegisterFunc("debug", func(_ context.Context, env *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("debug", args, 1); err != nil {
			return nil, err
		}
		fmt.Fprintln(env.Stderr, eval.Format(eval.Deref(args[0])))
		return nil, nil
	})

	env.RegisterFunc("ident", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("ident", args, 1); err != nil {
			return nil, err
		}
		return eval.Deref(args[0]), nil
	})
}

func arity(name string, args []eval.Value, want int) error {
	if len(args) != want {
		return fmt.Errorf("%s takes %d argument(s), got %d", name, want, len(args))
	}
	return nil
}
