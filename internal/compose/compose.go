// Package compose turns an ordered stage list into a single nested
// expression that threads a value through every stage left to right.
package compose

import (
	"github.com/marcelocantos/spigot/internal/expr"
	"github.com/marcelocantos/spigot/internal/operand"
	"github.com/marcelocantos/spigot/internal/stage"
)

// Options control composition.
type Options struct {
	// AllowPropagation permits try stages. When false, composing a
	// pipeline containing =>? fails with PropagationContextError.
	AllowPropagation bool
}

// Compose folds the stage list over the initial expression. Each
// stage's operand is classified, the threaded value is placed into it,
// and the stage operator's semantics are wrapped around the placed
// call. The fold is strictly sequential; stage order is preserved.
func Compose(initial expr.Expr, stages []stage.Stage, opts Options) (expr.Expr, error) {
	acc := initial
	c := &composer{allowProp: opts.AllowPropagation}
	for _, st := range stages {
		sh, err := operand.Classify(st.Operand)
		if err != nil {
			return nil, &MalformedOperandError{Span: st.Span, Op: st.Op, Err: err}
		}
		acc, err = c.applyOperator(st, sh, acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
