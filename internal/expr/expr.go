package expr

// Expr is one node of a composed pipeline expression. The tree is built
// by the composer and consumed either by the renderer (code-generating
// hosts) or by the evaluator (eager hosts).
type Expr interface {
	isExpr()
}

// Raw is an opaque expression fragment carried through verbatim: the
// pipeline's initial expression, call arguments, and closure bodies.
type Raw struct {
	Text string
}

// Ident names a callable path such as "parse_number" or "str::trim".
type Ident struct {
	Name string
}

// Call applies a callable to arguments. Fn is an Ident for named
// functions or a ClosureLit for immediately-invoked closures.
type Call struct {
	Fn   Expr
	Args []Expr
}

// Method invokes a method with the receiver expression. The intrinsic
// methods map, and_then, unwrap and clone are produced by the operator
// semantics; anything else comes from a method-call operand.
type Method struct {
	Recv Expr
	Name string
	Args []Expr
}

// ClosureLit is a user-written closure operand, captured verbatim.
type ClosureLit struct {
	Text string
}

// SynthClosure is a generated single-parameter closure wrapping a
// placed operand, as built for map and and_then stages.
type SynthClosure struct {
	Param string
	Body  Expr
}

// Try propagates: absence/error terminates the enclosing pipeline
// evaluation and becomes its result; otherwise the inner value flows on.
type Try struct {
	Inner Expr
}

// Conv is a conversion through the target type's constructor: T::from
// or, when TryFrom is set, T::try_from.
type Conv struct {
	Type    string
	TryFrom bool
	Inner   Expr
}

// Cast is the unchecked cast form (as T).
type Cast struct {
	Inner Expr
	Type  string
}

// Block binds the threaded value to a temporary, evaluates a side
// effect against a reference to it, and yields the temporary. Produced
// for apply and apply_mut stages so the operand is evaluated exactly
// once.
type Block struct {
	Var    string
	Mut    bool
	Bind   Expr
	Effect Expr
}

// VarRef reads a temporary introduced by Block or SynthClosure.
type VarRef struct {
	Name string
}

// RefOf takes a (possibly mutable) reference to a temporary.
type RefOf struct {
	Inner Expr
	Mut   bool
}

func (Raw) isExpr()          {}
func (Ident) isExpr()        {}
func (Call) isExpr()         {}
func (Method) isExpr()       {}
func (ClosureLit) isExpr()   {}
func (SynthClosure) isExpr() {}
func (Try) isExpr()          {}
func (Conv) isExpr()         {}
func (Cast) isExpr()         {}
func (Block) isExpr()        {}
func (VarRef) isExpr()       {}
func (RefOf) isExpr()        {}
