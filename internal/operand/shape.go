package operand

import "fmt"

// Kind discriminates the recognized operand shapes.
type Kind int

const (
	KindBareCall Kind = iota // f — identifier with no argument list
	KindCall                 // f(a, (), b) — explicit argument list
	KindMethod               // .m or .m(a, b) — threaded value is the receiver
	KindClosure              // |x| ... — verbatim closure literal
	KindConvert              // (T), (T?), (as T)
	KindNoOp                 // ... — pass the value through
)

func (k Kind) String() string {
	switch k {
	case KindBareCall:
		return "call"
	case KindCall:
		return "call"
	case KindMethod:
		return "method"
	case KindClosure:
		return "closure"
	case KindConvert:
		return "convert"
	case KindNoOp:
		return "noop"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ConvKind selects the conversion flavor of a KindConvert shape.
type ConvKind int

const (
	ConvFrom    ConvKind = iota // (T)  → T::from(v)
	ConvTryFrom                 // (T?) → T::try_from(v)
	ConvCast                    // (as T) → v as T
)

// Shape is the classified form of one operand. Argument texts are kept
// opaque; only the placeholder token "()" is interpreted.
type Shape struct {
	Kind Kind

	// Name is the callable path (KindBareCall, KindCall), the method
	// name (KindMethod), or the target type (KindConvert).
	Name string

	// Args holds raw argument texts for KindCall and KindMethod.
	Args []string

	// HasPlaceholder reports whether any KindCall argument is the
	// placeholder token. Placeholders are not recognized in method
	// argument lists.
	HasPlaceholder bool

	Conv ConvKind

	// Closure is the verbatim closure text for KindClosure.
	Closure string
}

// placeholder is the distinguished argument token that marks where the
// threaded value is spliced in.
const placeholder = "()"

// IsPlaceholder reports whether an argument text is the placeholder
// token.
func IsPlaceholder(arg string) bool {
	return arg == placeholder
}
