package compose

import (
	"github.com/marcelocantos/spigot/internal/expr"
	"github.com/marcelocantos/spigot/internal/operand"
)

// Place splices the threaded value into a classified operand:
//
//   - bare callables and closures receive it as the sole argument;
//   - calls with a placeholder receive it at every placeholder
//     position, calls without one receive it prepended;
//   - method calls receive it as the receiver, their argument list
//     passing through untouched;
//   - conversions wrap it in the conversion form;
//   - the no-op yields it unchanged.
func Place(sh operand.Shape, threaded expr.Expr) expr.Expr {
	switch sh.Kind {
	case operand.KindNoOp:
		return threaded

	case operand.KindBareCall:
		return expr.Call{Fn: expr.Ident{Name: sh.Name}, Args: []expr.Expr{threaded}}

	case operand.KindClosure:
		return expr.Call{Fn: expr.ClosureLit{Text: sh.Closure}, Args: []expr.Expr{threaded}}

	case operand.KindCall:
		args := make([]expr.Expr, 0, len(sh.Args)+1)
		if sh.HasPlaceholder {
			for _, a := range sh.Args {
				if operand.IsPlaceholder(a) {
					args = append(args, threaded)
				} else {
					args = append(args, expr.Raw{Text: a})
				}
			}
		} else {
			args = append(args, threaded)
			for _, a := range sh.Args {
				args = append(args, expr.Raw{Text: a})
			}
		}
		return expr.Call{Fn: expr.Ident{Name: sh.Name}, Args: args}

	case operand.KindMethod:
		args := make([]expr.Expr, 0, len(sh.Args))
		for _, a := range sh.Args {
			args = append(args, expr.Raw{Text: a})
		}
		return expr.Method{Recv: threaded, Name: sh.Name, Args: args}

	case operand.KindConvert:
		switch sh.Conv {
		case operand.ConvCast:
			return expr.Cast{Inner: threaded, Type: sh.Name}
		case operand.ConvTryFrom:
			return expr.Conv{Type: sh.Name, TryFrom: true, Inner: threaded}
		default:
			return expr.Conv{Type: sh.Name, Inner: threaded}
		}

	default:
		// Classify never produces anything else.
		return threaded
	}
}
