package expr

import (
	"fmt"
	"strings"
)

// Render prints the composed expression in the pipeline language's own
// notation. The output is deterministic and is what code-generating
// hosts splice into their target.
func Render(e Expr) string {
	var b strings.Builder
	render(&b, e)
	return b.String()
}

func render(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case Raw:
		b.WriteString(n.Text)
	case Ident:
		b.WriteString(n.Name)
	case Call:
		if _, closure := n.Fn.(ClosureLit); closure {
			b.WriteByte('(')
			render(b, n.Fn)
			b.WriteByte(')')
		} else {
			render(b, n.Fn)
		}
		renderArgs(b, n.Args)
	case Method:
		renderPostfixOperand(b, n.Recv)
		b.WriteByte('.')
		b.WriteString(n.Name)
		renderArgs(b, n.Args)
	case ClosureLit:
		b.WriteString(n.Text)
	case SynthClosure:
		b.WriteByte('|')
		b.WriteString(n.Param)
		b.WriteString("| ")
		render(b, n.Body)
	case Try:
		renderPostfixOperand(b, n.Inner)
		b.WriteByte('?')
	case Conv:
		b.WriteString(n.Type)
		if n.TryFrom {
			b.WriteString("::try_from")
		} else {
			b.WriteString("::from")
		}
		renderArgs(b, []Expr{n.Inner})
	case Cast:
		render(b, n.Inner)
		b.WriteString(" as ")
		b.WriteString(n.Type)
	case Block:
		b.WriteString("{ let ")
		if n.Mut {
			b.WriteString("mut ")
		}
		b.WriteString(n.Var)
		b.WriteString(" = ")
		render(b, n.Bind)
		b.WriteString("; ")
		render(b, n.Effect)
		b.WriteString("; ")
		b.WriteString(n.Var)
		b.WriteString(" }")
	case VarRef:
		b.WriteString(n.Name)
	case RefOf:
		if n.Mut {
			b.WriteString("&mut ")
		} else {
			b.WriteByte('&')
		}
		render(b, n.Inner)
	default:
		b.WriteString(fmt.Sprintf("<!%T>", e))
	}
}

func renderArgs(b *strings.Builder, args []Expr) {
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		render(b, a)
	}
	b.WriteByte(')')
}

// renderPostfixOperand parenthesizes operands that would otherwise bind
// wrongly under a postfix '.' or '?'.
func renderPostfixOperand(b *strings.Builder, e Expr) {
	switch e.(type) {
	case Cast, ClosureLit, SynthClosure, RefOf:
		b.WriteByte('(')
		render(b, e)
		b.WriteByte(')')
	default:
		render(b, e)
	}
}
