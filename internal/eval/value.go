package eval

import (
	"fmt"
	"strconv"
)

// Value is any value threaded through a pipeline: Go scalars (string,
// int64, float64, bool), *Option, *Result, *Ref, or nil for unit.
type Value any

// Option wraps a value that may be absent.
type Option struct {
	Val Value
	Set bool
}

// Some wraps a present value.
func Some(v Value) *Option { return &Option{Val: v, Set: true} }

// None is the absent option.
func None() *Option { return &Option{} }

// Result wraps a value or an error value.
type Result struct {
	Val  Value
	ErrV Value
	OK   bool
}

// Ok wraps a success value.
func Ok(v Value) *Result { return &Result{Val: v, OK: true} }

// Err wraps an error value.
func Err(e Value) *Result { return &Result{ErrV: e} }

// Ref is a mutable handle to a pipeline temporary, as handed to apply
// and apply_mut operands. Mutation through a read-only Ref is refused
// by the builtins, not by the type.
type Ref struct {
	Slot *Value
	Mut  bool
}

// Deref unwraps a Ref to the referenced value; other values pass
// through.
func Deref(v Value) Value {
	if r, ok := v.(*Ref); ok {
		return *r.Slot
	}
	return v
}

// Clone produces an independent duplicate. Containers are duplicated
// shell and inner value; scalars copy by value.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Option:
		if !t.Set {
			return None()
		}
		return Some(Clone(t.Val))
	case *Result:
		if !t.OK {
			return Err(Clone(t.ErrV))
		}
		return Ok(Clone(t.Val))
	case *Ref:
		return Clone(*t.Slot)
	default:
		return v
	}
}

// Format renders a value for print output and traces: scalars in their
// literal form, containers in constructor notation.
func Format(v Value) string {
	switch t := v.(type) {
	case nil:
		return "()"
	case string:
		return strconv.Quote(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case *Option:
		if !t.Set {
			return "None"
		}
		return "Some(" + Format(t.Val) + ")"
	case *Result:
		if !t.OK {
			return "Err(" + Format(t.ErrV) + ")"
		}
		return "Ok(" + Format(t.Val) + ")"
	case *Ref:
		return "&" + Format(*t.Slot)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Display is Format without quoting top-level strings; print uses it.
func Display(v Value) string {
	if s, ok := Deref(v).(string); ok {
		return s
	}
	return Format(Deref(v))
}

// isContainer reports whether v is an optional/result-like value.
func isContainer(v Value) bool {
	switch v.(type) {
	case *Option, *Result:
		return true
	default:
		return false
	}
}

// containerAbsent reports whether a container signals absence/error.
func containerAbsent(v Value) bool {
	switch t := v.(type) {
	case *Option:
		return !t.Set
	case *Result:
		return !t.OK
	default:
		return false
	}
}

// containerInner yields the wrapped value of a present container.
func containerInner(v Value) Value {
	switch t := v.(type) {
	case *Option:
		return t.Val
	case *Result:
		return t.Val
	default:
		return v
	}
}

// rewrap wraps a plain value in the same container kind as the sample.
func rewrap(sample, inner Value) Value {
	switch sample.(type) {
	case *Option:
		return Some(inner)
	case *Result:
		return Ok(inner)
	default:
		return inner
	}
}
