package stage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanSingleLine(t *testing.T) {
	initial, stages, err := Scan(`"42" => parse_number`)
	if err != nil {
		t.Fatal(err)
	}
	if initial != `"42"` {
		t.Errorf("initial: expected %q, got %q", `"42"`, initial)
	}
	want := []Stage{{Op: Basic, Operand: "parse_number", Span: Span{1, 6}}}
	if diff := cmp.Diff(want, stages); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestScanAllOperators(t *testing.T) {
	src := `"42"
    =>  parse_number
    =>& Ok
    =>@ double
    =>? (as Float)
    =>* ...
    =>+ ...
    =># print
    =>$ inc`
	initial, stages, err := Scan(src)
	if err != nil {
		t.Fatal(err)
	}
	if initial != `"42"` {
		t.Errorf("initial: got %q", initial)
	}
	wantOps := []Operator{Basic, AndThen, Map, Try, Unwrap, Clone, Apply, ApplyMut}
	if len(stages) != len(wantOps) {
		t.Fatalf("expected %d stages, got %d", len(wantOps), len(stages))
	}
	for i, op := range wantOps {
		if stages[i].Op != op {
			t.Errorf("stage %d: expected %s, got %s", i, op, stages[i].Op)
		}
	}
	wantOperands := []string{"parse_number", "Ok", "double", "(as Float)", "...", "...", "print", "inc"}
	for i, want := range wantOperands {
		if stages[i].Operand != want {
			t.Errorf("stage %d: expected operand %q, got %q", i, want, stages[i].Operand)
		}
	}
	// Each stage starts on its own line, column 5.
	for i, st := range stages {
		if st.Span.Line != i+2 || st.Span.Col != 5 {
			t.Errorf("stage %d: span %s", i, st.Span)
		}
	}
}

func TestScanArrowInsideParens(t *testing.T) {
	// The => inside the argument list must not split the stage.
	_, stages, err := Scan(`1 => f(g(2 => 3), ())`)
	if err != nil {
		t.Fatal(err)
	}
	if len(stages) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(stages))
	}
	if stages[0].Operand != "f(g(2 => 3), ())" {
		t.Errorf("operand: got %q", stages[0].Operand)
	}
}

func TestScanArrowInsideString(t *testing.T) {
	_, stages, err := Scan(`"a => b" => upper`)
	if err != nil {
		t.Fatal(err)
	}
	if len(stages) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(stages))
	}
	if stages[0].Operand != "upper" {
		t.Errorf("operand: got %q", stages[0].Operand)
	}
}

func TestScanSigilNeedsNoSpace(t *testing.T) {
	_, stages, err := Scan(`x =>@double`)
	if err != nil {
		t.Fatal(err)
	}
	if stages[0].Op != Map {
		t.Errorf("expected map, got %s", stages[0].Op)
	}
	if stages[0].Operand != "double" {
		t.Errorf("operand: got %q", stages[0].Operand)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "   \n  "},
		{"missing initial", "=> f"},
		{"missing operand", "x => f =>"},
		{"unterminated string", `"abc => f`},
		{"unbalanced close", "x) => f"},
		{"unbalanced open", "x => f("},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Scan(tt.src); err == nil {
				t.Fatalf("expected error for %q", tt.src)
			}
		})
	}
}

func TestOperatorTokens(t *testing.T) {
	for _, o := range []Operator{Basic, AndThen, Map, Try, Unwrap, Clone, Apply, ApplyMut} {
		parsed, err := ParseOperator(o.String())
		if err != nil {
			t.Fatalf("%s: %v", o, err)
		}
		if parsed != o {
			t.Errorf("round trip: %s became %s", o, parsed)
		}
	}
	if Basic.Token() != "=>" || ApplyMut.Token() != "=>$" {
		t.Errorf("token rendering: %q %q", Basic.Token(), ApplyMut.Token())
	}
	if _, err := ParseOperator("bogus"); err == nil {
		t.Error("expected error for unknown operator name")
	}
}
