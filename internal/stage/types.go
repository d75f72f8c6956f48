package stage

import "fmt"

// Operator selects how a stage threads the value into its operand.
type Operator int

const (
	Basic    Operator = iota // =>  pass the value to the operand
	AndThen                  // =>& and_then on an optional/result value
	Map                      // =>@ map on an optional/result value
	Try                      // =>? unwrap or propagate to the caller
	Unwrap                   // =>* unconditional unwrap, faults on absence
	Clone                    // =>+ continue with a duplicate of the value
	Apply                    // =># side effect, value passes through
	ApplyMut                 // =>$ side effect with a mutable handle
)

// Token returns the surface operator token, e.g. "=>&".
func (o Operator) Token() string {
	if s, ok := sigils[o]; ok {
		return "=>" + string(s)
	}
	return "=>"
}

func (o Operator) String() string {
	switch o {
	case Basic:
		return "basic"
	case AndThen:
		return "and_then"
	case Map:
		return "map"
	case Try:
		return "try"
	case Unwrap:
		return "unwrap"
	case Clone:
		return "clone"
	case Apply:
		return "apply"
	case ApplyMut:
		return "apply_mut"
	default:
		return fmt.Sprintf("operator(%d)", int(o))
	}
}

// ParseOperator converts an operator name (as used in config rules)
// to an Operator.
func ParseOperator(s string) (Operator, error) {
	for _, o := range []Operator{Basic, AndThen, Map, Try, Unwrap, Clone, Apply, ApplyMut} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown operator: %q", s)
}

// sigils maps non-basic operators to the character that follows "=>".
var sigils = map[Operator]byte{
	AndThen:  '&',
	Map:      '@',
	Try:      '?',
	Unwrap:   '*',
	Clone:    '+',
	Apply:    '#',
	ApplyMut: '$',
}

// operatorForSigil is the inverse of sigils.
func operatorForSigil(c byte) (Operator, bool) {
	for op, s := range sigils {
		if s == c {
			return op, true
		}
	}
	return 0, false
}

// Span locates a stage in the pipeline source text.
type Span struct {
	Line int
	Col  int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

// Stage is one operator-tagged operand in a pipeline. The operand text
// is kept verbatim; classification happens later.
type Stage struct {
	Op      Operator
	Operand string
	Span    Span
}
