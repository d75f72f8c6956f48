package builtin

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/marcelocantos/spigot/internal/eval"
)

// registerNumbers adds numeric functions and methods. Integer inputs
// stay integers; floats stay floats.
func registerNumbers(env *eval.Env) {
	env.RegisterFunc("double", numericFunc("double",
		func(n int64) int64 { return n * 2 },
		func(f float64) float64 { return f * 2 }))
	env.RegisterFunc("neg", numericFunc("neg",
		func(n int64) int64 { return -n },
		func(f float64) float64 { return -f }))

	env.RegisterFunc("add", binaryFunc("add",
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b }))
	env.RegisterFunc("mul", binaryFunc("mul",
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b }))

	// inc adds one, in place when handed a mutable reference; it is
	// the conventional =>$ companion for numbers.
	env.RegisterFunc("inc", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("inc", args, 1); err != nil {
			return nil, err
		}
		if ref, ok := args[0].(*eval.Ref); ok && ref.Mut {
			n, err := bump(*ref.Slot)
			if err != nil {
				return nil, err
			}
			*ref.Slot = n
			return nil, nil
		}
		return bump(eval.Deref(args[0]))
	})

	env.RegisterMethod("abs", func(_ context.Context, _ *eval.Env, recv eval.Value, args []eval.Value) (eval.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("abs takes no arguments")
		}
		switch n := eval.Deref(recv).(type) {
		case int64:
			if n < 0 {
				return -n, nil
			}
			return n, nil
		case float64:
			return math.Abs(n), nil
		default:
			return nil, fmt.Errorf("abs on non-numeric value %s", eval.Format(recv))
		}
	})

	env.RegisterMethod("to_string", func(_ context.Context, _ *eval.Env, recv eval.Value, args []eval.Value) (eval.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("to_string takes no arguments")
		}
		return cast.ToStringE(eval.Deref(recv))
	})
}

func bump(v eval.Value) (eval.Value, error) {
	switch n := v.(type) {
	case int64:
		return n + 1, nil
	case float64:
		return n + 1, nil
	default:
		return nil, fmt.Errorf("inc on non-numeric value %s", eval.Format(v))
	}
}

func numericFunc(name string, ints func(int64) int64, floats func(float64) float64) eval.Func {
	return func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		switch n := eval.Deref(args[0]).(type) {
		case int64:
			return ints(n), nil
		case float64:
			return floats(n), nil
		default:
			return nil, fmt.Errorf("%s on non-numeric value %s", name, eval.Format(args[0]))
		}
	}
}

func binaryFunc(name string, ints func(a, b int64) int64, floats func(a, b float64) float64) eval.Func {
	return func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		a := eval.Deref(args[0])
		b := eval.Deref(args[1])
		ai, aok := a.(int64)
		bi, bok := b.(int64)
		if aok && bok {
			return ints(ai, bi), nil
		}
		af, err := cast.ToFloat64E(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		bf, err := cast.ToFloat64E(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return floats(af, bf), nil
	}
}
