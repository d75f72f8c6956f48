package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/marcelocantos/spigot/internal/eval"
)

// registerStrings adds string functions and methods.
func registerStrings(env *eval.Env) {
	env.RegisterFunc("upper", stringFunc("upper", strings.ToUpper))
	env.RegisterFunc("lower", stringFunc("lower", strings.ToLower))
	env.RegisterFunc("trim", stringFunc("trim", strings.TrimSpace))

	// parse_number turns text into a result holding an integer, or an
	// error value describing the failure.
	env.RegisterFunc("parse_number", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("parse_number", args, 1); err != nil {
			return nil, err
		}
		s, err := cast.ToStringE(eval.Deref(args[0]))
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return eval.Err(fmt.Sprintf("not a number: %q", s)), nil
		}
		return eval.Ok(n), nil
	})

	// wrap concatenates its arguments; with a placeholder the threaded
	// value lands between the others: wrap("[", (), "]").
	env.RegisterFunc("wrap", concatFunc("wrap"))
	env.RegisterFunc("wrap_with_brackets", concatFunc("wrap_with_brackets"))
	env.RegisterFunc("concat", concatFunc("concat"))

	env.RegisterFunc("repeat", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("repeat", args, 2); err != nil {
			return nil, err
		}
		s, err := cast.ToStringE(eval.Deref(args[0]))
		if err != nil {
			return nil, err
		}
		n, err := cast.ToIntE(eval.Deref(args[1]))
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative repeat count %d", n)
		}
		return strings.Repeat(s, n), nil
	})

	env.RegisterFunc("len", func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity("len", args, 1); err != nil {
			return nil, err
		}
		s, err := cast.ToStringE(eval.Deref(args[0]))
		if err != nil {
			return nil, err
		}
		return int64(len(s)), nil
	})

	env.RegisterMethod("to_uppercase", stringMethod("to_uppercase", strings.ToUpper))
	env.RegisterMethod("to_lowercase", stringMethod("to_lowercase", strings.ToLower))
	env.RegisterMethod("trim", stringMethod("trim", strings.TrimSpace))

	env.RegisterMethod("len", func(_ context.Context, _ *eval.Env, recv eval.Value, args []eval.Value) (eval.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("len takes no arguments")
		}
		s, err := cast.ToStringE(eval.Deref(recv))
		if err != nil {
			return nil, err
		}
		return int64(len(s)), nil
	})

	env.RegisterMethod("replace", func(_ context.Context, _ *eval.Env, recv eval.Value, args []eval.Value) (eval.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("replace takes 2 arguments, got %d", len(args))
		}
		s, err := cast.ToStringE(eval.Deref(recv))
		if err != nil {
			return nil, err
		}
		from, err := cast.ToStringE(eval.Deref(args[0]))
		if err != nil {
			return nil, err
		}
		to, err := cast.ToStringE(eval.Deref(args[1]))
		if err != nil {
			return nil, err
		}
		return strings.ReplaceAll(s, from, to), nil
	})

	// push_str appends in place through a mutable reference; it is the
	// conventional =>$ companion for strings.
	env.RegisterMethod("push_str", func(_ context.Context, _ *eval.Env, recv eval.Value, args []eval.Value) (eval.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("push_str takes 1 argument, got %d", len(args))
		}
		ref, err := mutableRef("push_str", recv)
		if err != nil {
			return nil, err
		}
		s, err := cast.ToStringE(*ref.Slot)
		if err != nil {
			return nil, err
		}
		suffix, err := cast.ToStringE(eval.Deref(args[0]))
		if err != nil {
			return nil, err
		}
		*ref.Slot = s + suffix
		return nil, nil
	})
}

func stringFunc(name string, f func(string) string) eval.Func {
	return func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		s, err := cast.ToStringE(eval.Deref(args[0]))
		if err != nil {
			return nil, err
		}
		return f(s), nil
	}
}

func stringMethod(name string, f func(string) string) eval.MethodFunc {
	return func(_ context.Context, _ *eval.Env, recv eval.Value, args []eval.Value) (eval.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments", name)
		}
		s, err := cast.ToStringE(eval.Deref(recv))
		if err != nil {
			return nil, err
		}
		return f(s), nil
	}
}

func concatFunc(name string) eval.Func {
	return func(_ context.Context, _ *eval.Env, args []eval.Value) (eval.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s takes at least one argument", name)
		}
		var b strings.Builder
		for _, a := range args {
			s, err := cast.ToStringE(eval.Deref(a))
			if err != nil {
				return nil, err
			}
			b.WriteString(s)
		}
		return b.String(), nil
	}
}

func mutableRef(name string, v eval.Value) (*eval.Ref, error) {
	ref, ok := v.(*eval.Ref)
	if !ok {
		return nil, fmt.Errorf("%s needs a mutable reference; use =>$", name)
	}
	if !ref.Mut {
		return nil, fmt.Errorf("%s cannot mutate through a shared reference; use =>$ instead of =>#", name)
	}
	return ref, nil
}
