// Package eval is the eager host for composed pipeline expressions: it
// walks the expression tree against an Env of registered callables and
// produces the final threaded value.
package eval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcelocantos/spigot/internal/expr"
)

// UnwrapFaultError is the runtime fault raised by unwrap on an absent
// or error container. It is fatal to the pipeline run, never defaulted.
type UnwrapFaultError struct {
	Val Value
}

func (e *UnwrapFaultError) Error() string {
	return fmt.Sprintf("unwrap on %s", Format(e.Val))
}

// propagation unwinds a try stage's early return. Run converts it back
// into the pipeline's overall result.
type propagation struct {
	val Value
}

func (p *propagation) Error() string {
	return "pipeline propagation"
}

// frame holds the temporaries introduced by blocks and synthesized
// closures, innermost first.
type frame struct {
	name   string
	slot   *Value
	parent *frame
}

func (f *frame) bind(name string, slot *Value) *frame {
	return &frame{name: name, slot: slot, parent: f}
}

func (f *frame) lookup(name string) (*Value, bool) {
	for fr := f; fr != nil; fr = fr.parent {
		if fr.name == name {
			return fr.slot, true
		}
	}
	return nil, false
}

// Run evaluates a composed expression. A try stage that fires does not
// surface as an error: the absent/error container becomes the result,
// exactly as an early return would hand it to the pipeline's caller.
func Run(ctx context.Context, e expr.Expr, env *Env) (Value, error) {
	v, err := evaluate(ctx, e, env, nil)
	var p *propagation
	if errors.As(err, &p) {
		return p.val, nil
	}
	return v, err
}

func evaluate(ctx context.Context, e expr.Expr, env *Env, fr *frame) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch n := e.(type) {
	case expr.Raw:
		return evalOpaque(ctx, n.Text, env, fr)

	case expr.Ident:
		if v, ok := env.LookupConst(n.Name); ok {
			return v, nil
		}
		return nil, fmt.Errorf("unknown identifier: %q", n.Name)

	case expr.VarRef:
		slot, ok := fr.lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("unbound variable: %q", n.Name)
		}
		return *slot, nil

	case expr.RefOf:
		vr, ok := n.Inner.(expr.VarRef)
		if !ok {
			return nil, fmt.Errorf("cannot take a reference to %T", n.Inner)
		}
		slot, found := fr.lookup(vr.Name)
		if !found {
			return nil, fmt.Errorf("unbound variable: %q", vr.Name)
		}
		return &Ref{Slot: slot, Mut: n.Mut}, nil

	case expr.Call:
		return evalCall(ctx, n, env, fr)

	case expr.Method:
		return evalMethod(ctx, n, env, fr)

	case expr.Try:
		v, err := evaluate(ctx, n.Inner, env, fr)
		if err != nil {
			return nil, err
		}
		if !isContainer(v) {
			return nil, fmt.Errorf("cannot propagate non-container value %s", Format(v))
		}
		if containerAbsent(v) {
			return nil, &propagation{val: v}
		}
		return containerInner(v), nil

	case expr.Conv:
		return evalConv(ctx, n, env, fr)

	case expr.Cast:
		v, err := evaluate(ctx, n.Inner, env, fr)
		if err != nil {
			return nil, err
		}
		out, err := convert(v, n.Type)
		if err != nil {
			return nil, fmt.Errorf("cast as %s: %w", n.Type, err)
		}
		return out, nil

	case expr.Block:
		bound, err := evaluate(ctx, n.Bind, env, fr)
		if err != nil {
			return nil, err
		}
		slot := &bound
		inner := fr.bind(n.Var, slot)
		if _, err := evaluate(ctx, n.Effect, env, inner); err != nil {
			return nil, err
		}
		return *slot, nil

	case expr.SynthClosure, expr.ClosureLit:
		return nil, fmt.Errorf("closure is not a value in this position")

	default:
		return nil, fmt.Errorf("unsupported expression node %T", e)
	}
}

func evalCall(ctx context.Context, n expr.Call, env *Env, fr *frame) (Value, error) {
	switch fn := n.Fn.(type) {
	case expr.Ident:
		f, err := env.LookupFunc(fn.Name)
		if err != nil {
			return nil, err
		}
		args, err := evalArgs(ctx, n.Args, env, fr)
		if err != nil {
			return nil, err
		}
		v, err := f(ctx, env, args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name, err)
		}
		return v, nil

	case expr.ClosureLit:
		if len(n.Args) != 1 {
			return nil, fmt.Errorf("closure takes exactly one argument, got %d", len(n.Args))
		}
		arg, err := evaluate(ctx, n.Args[0], env, fr)
		if err != nil {
			return nil, err
		}
		return callUserClosure(ctx, env, fr, fn.Text, arg)

	default:
		return nil, fmt.Errorf("cannot call %T", n.Fn)
	}
}

func evalMethod(ctx context.Context, n expr.Method, env *Env, fr *frame) (Value, error) {
	recv, err := evaluate(ctx, n.Recv, env, fr)
	if err != nil {
		return nil, err
	}

	switch n.Name {
	case "map", "and_then":
		if len(n.Args) != 1 {
			return nil, fmt.Errorf("%s takes exactly one closure", n.Name)
		}
		if !isContainer(recv) {
			return nil, fmt.Errorf("%s on non-container value %s", n.Name, Format(recv))
		}
		if containerAbsent(recv) {
			// Absence/error propagates unchanged; the closure never runs.
			return recv, nil
		}
		out, err := callStageClosure(ctx, env, fr, n.Args[0], containerInner(recv))
		if err != nil {
			return nil, err
		}
		if n.Name == "map" {
			return rewrap(recv, out), nil
		}
		if !isContainer(out) {
			return nil, fmt.Errorf("and_then operand returned non-container value %s", Format(out))
		}
		return out, nil

	case "unwrap":
		if len(n.Args) != 0 {
			return nil, fmt.Errorf("unwrap takes no arguments")
		}
		if !isContainer(recv) {
			return nil, fmt.Errorf("unwrap on non-container value %s", Format(recv))
		}
		if containerAbsent(recv) {
			return nil, &UnwrapFaultError{Val: recv}
		}
		return containerInner(recv), nil

	case "clone":
		if len(n.Args) != 0 {
			return nil, fmt.Errorf("clone takes no arguments")
		}
		return Clone(recv), nil

	default:
		m, err := env.LookupMethod(n.Name)
		if err != nil {
			return nil, err
		}
		args, err := evalArgs(ctx, n.Args, env, fr)
		if err != nil {
			return nil, err
		}
		v, err := m(ctx, env, recv, args)
		if err != nil {
			return nil, fmt.Errorf(".%s: %w", n.Name, err)
		}
		return v, nil
	}
}

// callStageClosure invokes a closure argument of map/and_then with the
// unwrapped container value. A raw argument whose text is a closure
// literal also qualifies, so ".map(|x| ...)" behaves like "=>@".
func callStageClosure(ctx context.Context, env *Env, fr *frame, c expr.Expr, arg Value) (Value, error) {
	switch cl := c.(type) {
	case expr.SynthClosure:
		inner := fr.bind(cl.Param, &arg)
		return evaluate(ctx, cl.Body, env, inner)
	case expr.ClosureLit:
		return callUserClosure(ctx, env, fr, cl.Text, arg)
	case expr.Raw:
		if t := strings.TrimSpace(cl.Text); strings.HasPrefix(t, "|") {
			return callUserClosure(ctx, env, fr, t, arg)
		}
		return nil, fmt.Errorf("expected a closure, got %q", cl.Text)
	default:
		return nil, fmt.Errorf("expected a closure, got %T", c)
	}
}

func evalArgs(ctx context.Context, in []expr.Expr, env *Env, fr *frame) ([]Value, error) {
	if len(in) == 0 {
		return nil, nil
	}
	args := make([]Value, len(in))
	for i, a := range in {
		v, err := evaluate(ctx, a, env, fr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
