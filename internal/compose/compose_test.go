package compose

import (
	"errors"
	"testing"

	"github.com/marcelocantos/spigot/internal/expr"
	"github.com/marcelocantos/spigot/internal/stage"
)

func composeText(t *testing.T, src string, opts Options) (expr.Expr, error) {
	t.Helper()
	initial, stages, err := stage.Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	return Compose(expr.Raw{Text: initial}, stages, opts)
}

func TestComposeRendering(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"basic identity",
			`x => f`,
			"f(x)",
		},
		{
			"basic with explicit args prepends",
			`x => f(1, 2)`,
			"f(x, 1, 2)",
		},
		{
			"placeholder substitution",
			`"core" => wrap_with_brackets("[", (), "]")`,
			`wrap_with_brackets("[", "core", "]")`,
		},
		{
			"every placeholder receives the value",
			`x => add((), ())`,
			"add(x, x)",
		},
		{
			"method receiver",
			`s => .to_uppercase`,
			"s.to_uppercase()",
		},
		{
			"method args pass through",
			`s => .replace("a", "b")`,
			`s.replace("a", "b")`,
		},
		{
			"map",
			`r =>@ double`,
			"r.map(|__map_var| double(__map_var))",
		},
		{
			"and then",
			`r =>& Ok`,
			"r.and_then(|__map_var| Ok(__map_var))",
		},
		{
			"try then cast",
			`r =>? (as f64)`,
			"r? as f64",
		},
		{
			"unwrap",
			`r =>* ...`,
			"r.unwrap()",
		},
		{
			"clone",
			`v =>+ ...`,
			"v.clone()",
		},
		{
			"apply",
			`v =># print`,
			"{ let __var_1 = v; print(&__var_1); __var_1 }",
		},
		{
			"apply mut",
			`v =>$ inc`,
			"{ let mut __var_1 = v; inc(&mut __var_1); __var_1 }",
		},
		{
			"closure",
			`v => |x| x * 2`,
			"(|x| x * 2)(v)",
		},
		{
			"conversions",
			`v => (Float) => (Int?)`,
			"Int::try_from(Float::from(v))",
		},
		{
			"noop",
			`v => ... => f`,
			"f(v)",
		},
		{
			"full operator tour",
			`"42" => parse_number =>& Ok =>@ double =>? (as f64) =># print`,
			`{ let __var_1 = parse_number("42").and_then(|__map_var| Ok(__map_var)).map(|__map_var| double(__map_var))? as f64; print(&__var_1); __var_1 }`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := composeText(t, tt.src, Options{AllowPropagation: true})
			if err != nil {
				t.Fatal(err)
			}
			if got := expr.Render(e); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestComposeApplyCountersAreDistinct(t *testing.T) {
	e, err := composeText(t, `v =># print =>$ inc`, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := "{ let mut __var_2 = { let __var_1 = v; print(&__var_1); __var_1 }; inc(&mut __var_2); __var_2 }"
	if got := expr.Render(e); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestComposeTryNeedsPropagationContext(t *testing.T) {
	_, err := composeText(t, "r =>? ...", Options{AllowPropagation: false})
	var perr *PropagationContextError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PropagationContextError, got %v", err)
	}
	if perr.Span.Line != 1 {
		t.Errorf("span: %s", perr.Span)
	}
}

func TestComposeCloneRejectsOperand(t *testing.T) {
	_, err := composeText(t, "v =>+ double", Options{})
	var merr *MalformedOperandError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedOperandError, got %v", err)
	}
}

func TestComposeMalformedOperandCarriesSpan(t *testing.T) {
	_, err := composeText(t, "v\n  => f\n  => .", Options{})
	var merr *MalformedOperandError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedOperandError, got %v", err)
	}
	if merr.Span.Line != 3 {
		t.Errorf("expected error on line 3, got %s", merr.Span)
	}
}

func TestComposeNoStages(t *testing.T) {
	e, err := Compose(expr.Raw{Text: "x"}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := expr.Render(e); got != "x" {
		t.Errorf("expected passthrough, got %q", got)
	}
}
