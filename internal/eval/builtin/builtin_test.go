package builtin

import (
	"context"
	"strings"
	"testing"

	"github.com/marcelocantos/spigot/internal/eval"
)

func newEnv() *eval.Env {
	env := eval.NewEnv()
	RegisterAll(env)
	return env
}

func call(t *testing.T, env *eval.Env, name string, args ...eval.Value) (eval.Value, error) {
	t.Helper()
	f, err := env.LookupFunc(name)
	if err != nil {
		t.Fatal(err)
	}
	return f(context.Background(), env, args)
}

func callMethod(t *testing.T, env *eval.Env, name string, recv eval.Value, args ...eval.Value) (eval.Value, error) {
	t.Helper()
	m, err := env.LookupMethod(name)
	if err != nil {
		t.Fatal(err)
	}
	return m(context.Background(), env, recv, args)
}

func TestRegisterAll(t *testing.T) {
	env := newEnv()
	for _, name := range []string{"Ok", "Err", "Some", "None", "print", "ident",
		"upper", "parse_number", "concat", "double", "add", "inc"} {
		if _, err := env.LookupFunc(name); err != nil {
			t.Errorf("missing function %s: %v", name, err)
		}
	}
	for _, name := range []string{"to_uppercase", "replace", "push_str", "abs", "to_string"} {
		if _, err := env.LookupMethod(name); err != nil {
			t.Errorf("missing method %s: %v", name, err)
		}
	}
}

func TestParseNumber(t *testing.T) {
	env := newEnv()
	v, err := call(t, env, "parse_number", " 42 ")
	if err != nil {
		t.Fatal(err)
	}
	r := v.(*eval.Result)
	if !r.OK || r.Val != int64(42) {
		t.Errorf("expected Ok(42), got %s", eval.Format(v))
	}

	v, err = call(t, env, "parse_number", "nope")
	if err != nil {
		t.Fatal(err)
	}
	r = v.(*eval.Result)
	if r.OK || !strings.Contains(r.ErrV.(string), "nope") {
		t.Errorf("expected Err naming the input, got %s", eval.Format(v))
	}
}

func TestNumericFunctionsPreserveKind(t *testing.T) {
	env := newEnv()
	if v, _ := call(t, env, "double", int64(21)); v != int64(42) {
		t.Errorf("double int: %s", eval.Format(v))
	}
	if v, _ := call(t, env, "double", float64(1.5)); v != float64(3) {
		t.Errorf("double float: %s", eval.Format(v))
	}
	if _, err := call(t, env, "double", "x"); err == nil {
		t.Error("double on a string should fail")
	}
}

func TestAddMixesToFloat(t *testing.T) {
	env := newEnv()
	if v, _ := call(t, env, "add", int64(1), int64(2)); v != int64(3) {
		t.Errorf("add ints: %s", eval.Format(v))
	}
	if v, _ := call(t, env, "add", int64(1), float64(2.5)); v != float64(3.5) {
		t.Errorf("add mixed: %s", eval.Format(v))
	}
}

func TestIncThroughMutableRef(t *testing.T) {
	env := newEnv()
	var slot eval.Value = int64(5)
	if _, err := call(t, env, "inc", &eval.Ref{Slot: &slot, Mut: true}); err != nil {
		t.Fatal(err)
	}
	if slot != int64(6) {
		t.Errorf("expected the slot to become 6, got %s", eval.Format(slot))
	}

	// Without a ref, inc returns the bumped value.
	if v, _ := call(t, env, "inc", int64(5)); v != int64(6) {
		t.Errorf("inc by value: %s", eval.Format(v))
	}
}

func TestPushStrRequiresMutableRef(t *testing.T) {
	env := newEnv()
	_, err := callMethod(t, env, "push_str", "ab", "!")
	if err == nil || !strings.Contains(err.Error(), "=>$") {
		t.Fatalf("expected a mutability error, got %v", err)
	}

	var slot eval.Value = "ab"
	shared := &eval.Ref{Slot: &slot, Mut: false}
	if _, err := callMethod(t, env, "push_str", shared, "!"); err == nil {
		t.Error("shared ref should not permit mutation")
	}

	mut := &eval.Ref{Slot: &slot, Mut: true}
	if _, err := callMethod(t, env, "push_str", mut, "!"); err != nil {
		t.Fatal(err)
	}
	if slot != "ab!" {
		t.Errorf("expected %q, got %s", "ab!", eval.Format(slot))
	}
}

func TestRepeat(t *testing.T) {
	env := newEnv()
	if v, _ := call(t, env, "repeat", "ab", int64(3)); v != "ababab" {
		t.Errorf("repeat: %s", eval.Format(v))
	}
	if _, err := call(t, env, "repeat", "ab", int64(-1)); err == nil {
		t.Error("negative repeat count should fail")
	}
}

func TestAbsAndToString(t *testing.T) {
	env := newEnv()
	if v, _ := callMethod(t, env, "abs", int64(-4)); v != int64(4) {
		t.Errorf("abs int: %s", eval.Format(v))
	}
	if v, _ := callMethod(t, env, "abs", float64(-1.5)); v != float64(1.5) {
		t.Errorf("abs float: %s", eval.Format(v))
	}
	if v, _ := callMethod(t, env, "to_string", int64(7)); v != "7" {
		t.Errorf("to_string: %s", eval.Format(v))
	}
}

func TestConstructorsAndArity(t *testing.T) {
	env := newEnv()
	v, _ := call(t, env, "Some", int64(1))
	if o, ok := v.(*eval.Option); !ok || !o.Set {
		t.Errorf("Some: %s", eval.Format(v))
	}
	v, _ = call(t, env, "None")
	if o, ok := v.(*eval.Option); !ok || o.Set {
		t.Errorf("None: %s", eval.Format(v))
	}
	if _, err := call(t, env, "Ok"); err == nil {
		t.Error("Ok with no argument should fail")
	}
}
