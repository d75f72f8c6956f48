package compose

import (
	"fmt"

	"github.com/marcelocantos/spigot/internal/expr"
	"github.com/marcelocantos/spigot/internal/operand"
	"github.com/marcelocantos/spigot/internal/stage"
)

// mapVar is the parameter name of closures synthesized for map and
// and_then stages. Nesting shadows correctly, so one name suffices.
const mapVar = "__map_var"

// composer carries fold state: the temporary counter for apply blocks
// and whether try stages may propagate.
type composer struct {
	varCount  int
	allowProp bool
}

// applyOperator wraps the operator's semantics around the placed
// operand, turning the accumulated expression into the next one.
func (c *composer) applyOperator(st stage.Stage, sh operand.Shape, acc expr.Expr) (expr.Expr, error) {
	switch st.Op {
	case stage.Basic:
		return Place(sh, acc), nil

	case stage.AndThen:
		return c.containerCall(sh, acc, "and_then"), nil

	case stage.Map:
		return c.containerCall(sh, acc, "map"), nil

	case stage.Try:
		if !c.allowProp {
			return nil, &PropagationContextError{Span: st.Span}
		}
		return Place(sh, expr.Try{Inner: acc}), nil

	case stage.Unwrap:
		return Place(sh, expr.Method{Recv: acc, Name: "unwrap"}), nil

	case stage.Clone:
		// The duplicate continues the pipeline; the operand has no
		// role and anything but ... is rejected rather than dropped.
		if sh.Kind != operand.KindNoOp {
			return nil, &MalformedOperandError{
				Span: st.Span,
				Op:   st.Op,
				Err:  fmt.Errorf("clone stage takes no operand; write %s ...", st.Op.Token()),
			}
		}
		return expr.Method{Recv: acc, Name: "clone"}, nil

	case stage.Apply, stage.ApplyMut:
		mut := st.Op == stage.ApplyMut
		c.varCount++
		v := fmt.Sprintf("__var_%d", c.varCount)
		effect := Place(sh, expr.RefOf{Inner: expr.VarRef{Name: v}, Mut: mut})
		return expr.Block{Var: v, Mut: mut, Bind: acc, Effect: effect}, nil

	default:
		return nil, fmt.Errorf("%s: unsupported operator %s", st.Span, st.Op)
	}
}

// containerCall builds acc.method(|__map_var| <placed operand>).
func (c *composer) containerCall(sh operand.Shape, acc expr.Expr, method string) expr.Expr {
	body := Place(sh, expr.VarRef{Name: mapVar})
	return expr.Method{
		Recv: acc,
		Name: method,
		Args: []expr.Expr{expr.SynthClosure{Param: mapVar, Body: body}},
	}
}
