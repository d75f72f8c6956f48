package compose

import (
	"fmt"

	"github.com/marcelocantos/spigot/internal/stage"
)

// MalformedOperandError reports an operand that matched no recognized
// shape, carrying the offending stage's source position.
type MalformedOperandError struct {
	Span stage.Span
	Op   stage.Operator
	Err  error
}

func (e *MalformedOperandError) Error() string {
	return fmt.Sprintf("%s: %s stage: malformed operand: %v", e.Span, e.Op, e.Err)
}

func (e *MalformedOperandError) Unwrap() error {
	return e.Err
}

// PropagationContextError reports a try stage composed in a context
// that cannot perform an early return. It is a compile-time error, not
// a silent downgrade to unwrap.
type PropagationContextError struct {
	Span stage.Span
}

func (e *PropagationContextError) Error() string {
	return fmt.Sprintf("%s: =>? used where the pipeline cannot propagate to its caller", e.Span)
}
