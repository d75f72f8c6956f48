package eval

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{nil, "()"},
		{"ab", `"ab"`},
		{int64(42), "42"},
		{float64(84), "84"},
		{true, "true"},
		{Some(int64(5)), "Some(5)"},
		{None(), "None"},
		{Ok("x"), `Ok("x")`},
		{Err("boom"), `Err("boom")`},
	}
	for _, tt := range tests {
		if got := Format(tt.v); got != tt.want {
			t.Errorf("Format(%v): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Some(int64(5))
	dup := Clone(orig).(*Option)
	if dup == orig {
		t.Fatal("clone returned the same container")
	}
	dup.Val = int64(6)
	if orig.Val != int64(5) {
		t.Error("mutating the clone changed the original")
	}
}

func TestDeref(t *testing.T) {
	var v Value = "x"
	ref := &Ref{Slot: &v, Mut: true}
	if Deref(ref) != "x" {
		t.Error("deref through ref")
	}
	if Deref("y") != "y" {
		t.Error("deref of plain value")
	}
}

func TestRewrap(t *testing.T) {
	if r := rewrap(Ok(int64(1)), int64(2)); !r.(*Result).OK || r.(*Result).Val != int64(2) {
		t.Error("rewrap result")
	}
	if o := rewrap(Some(int64(1)), int64(2)); !o.(*Option).Set || o.(*Option).Val != int64(2) {
		t.Error("rewrap option")
	}
}
