package eval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
)

// evalOpaque evaluates an opaque expression fragment: the initial
// expression, a call argument, or a closure body. Literals are tried
// first, then named constants and enclosing temporaries, then the
// fragment is handed to Starlark with the environment's functions and
// the temporaries in scope.
func evalOpaque(ctx context.Context, text string, env *Env, fr *frame) (Value, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, fmt.Errorf("empty expression")
	}

	if v, ok, err := parseLiteral(t); ok {
		return v, err
	}
	if v, ok := env.LookupConst(t); ok {
		return v, nil
	}
	if slot, ok := fr.lookup(t); ok {
		return *slot, nil
	}
	return evalStarlark(ctx, t, env, fr)
}

// parseLiteral recognizes Go-style scalar literals.
func parseLiteral(t string) (Value, bool, error) {
	if strings.HasPrefix(t, `"`) {
		s, err := strconv.Unquote(t)
		if err != nil {
			return nil, true, fmt.Errorf("bad string literal %s: %w", t, err)
		}
		return s, true, nil
	}
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n, true, nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f, true, nil
	}
	switch t {
	case "true":
		return true, true, nil
	case "false":
		return false, true, nil
	}
	return nil, false, nil
}

// evalStarlark evaluates the fragment as a Starlark expression. The
// environment's registered functions appear as Starlark builtins, so a
// closure body may call the same names a stage operand can.
func evalStarlark(ctx context.Context, text string, env *Env, fr *frame) (Value, error) {
	globals := starlark.StringDict{}
	for _, name := range env.Funcs() {
		f, err := env.LookupFunc(name)
		if err != nil {
			continue
		}
		globals[name] = starlark.NewBuiltin(name, bridgeFunc(ctx, env, f))
	}
	for _, name := range env.Consts() {
		v, _ := env.LookupConst(name)
		globals[name] = toStarlark(v)
	}
	for f := fr; f != nil; f = f.parent {
		if _, bound := globals[f.name]; bound {
			continue
		}
		globals[f.name] = toStarlark(*f.slot)
	}

	thread := &starlark.Thread{Name: "operand"}
	out, err := starlark.Eval(thread, "<operand>", text, globals)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", text, err)
	}
	return fromStarlark(out)
}

// bridgeFunc adapts a registered Func to a Starlark builtin.
func bridgeFunc(ctx context.Context, env *Env, f Func) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s does not accept keyword arguments", b.Name())
		}
		vals := make([]Value, len(args))
		for i, a := range args {
			v, err := fromStarlark(a)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		out, err := f(ctx, env, vals)
		if err != nil {
			return nil, err
		}
		return toStarlark(out), nil
	}
}

// callUserClosure applies a verbatim closure operand to the threaded
// value. The parameter head is parsed here; the body is an opaque
// expression with the parameter bound.
func callUserClosure(ctx context.Context, env *Env, fr *frame, text string, arg Value) (Value, error) {
	if len(text) < 2 || text[0] != '|' {
		return nil, fmt.Errorf("bad closure %q", text)
	}
	pipe := strings.IndexByte(text[1:], '|')
	if pipe < 0 {
		return nil, fmt.Errorf("bad closure %q", text)
	}
	head := strings.TrimSpace(text[1 : pipe+1])
	body := strings.TrimSpace(text[pipe+2:])

	params := strings.Split(head, ",")
	if head == "" || len(params) != 1 {
		return nil, fmt.Errorf("closure must take exactly one parameter: %q", text)
	}
	param := strings.TrimSpace(params[0])
	if i := strings.IndexByte(param, ':'); i >= 0 {
		param = strings.TrimSpace(param[:i]) // drop a type ascription
	}
	if param == "" {
		return nil, fmt.Errorf("closure has an empty parameter: %q", text)
	}

	bound := Deref(arg)
	inner := fr.bind(param, &bound)
	return evalOpaque(ctx, body, env, inner)
}

// opaqueValue carries a pipeline value that has no native Starlark
// representation (containers, refs) through an expression untouched.
type opaqueValue struct {
	v Value
}

func (o opaqueValue) String() string        { return Format(o.v) }
func (o opaqueValue) Type() string          { return "pipeline" }
func (o opaqueValue) Freeze()               {}
func (o opaqueValue) Truth() starlark.Bool  { return starlark.True }
func (o opaqueValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: pipeline value") }

func toStarlark(v Value) starlark.Value {
	switch t := v.(type) {
	case nil:
		return starlark.None
	case string:
		return starlark.String(t)
	case int64:
		return starlark.MakeInt64(t)
	case float64:
		return starlark.Float(t)
	case bool:
		return starlark.Bool(t)
	default:
		return opaqueValue{v: v}
	}
}

func fromStarlark(v starlark.Value) (Value, error) {
	switch t := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return string(t), nil
	case starlark.Int:
		n, ok := t.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of range: %s", t)
		}
		return n, nil
	case starlark.Float:
		return float64(t), nil
	case starlark.Bool:
		return bool(t), nil
	case opaqueValue:
		return t.v, nil
	default:
		return nil, fmt.Errorf("unsupported expression result of type %s", v.Type())
	}
}
