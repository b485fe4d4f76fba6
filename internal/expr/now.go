package expr

import "github.com/roach88/rdfexpr/internal/term"

// Now is NOW(): the current instant as an xsd:dateTime literal.
//
// The literal is computed once per execution token, so every row of one
// execution observes the same instant. A new token recomputes it.
type Now struct {
	cache memo[term.Term]
}

// NewNow creates NOW().
func NewNow() *Now {
	return &Now{}
}

func (*Now) expressionNode() {}

// Value returns the instant cached for the execution, reading the clock
// on the first call of each execution.
func (n *Now) Value(ec *EvalContext, _ int) (term.Term, error) {
	return n.cache.getOrCompute(ec.ExecutionToken(), func() (term.Term, error) {
		return term.NewDateTime(ec.Clock().Now()), nil
	})
}

// EffectiveBooleanValue always fails: date-times have no boolean coercion.
func (n *Now) EffectiveBooleanValue(*EvalContext, int) (bool, error) {
	return false, newEBVError("NOW", "date-time values have no effective boolean value")
}

// Variables returns nil: NOW() reads no row.
func (n *Now) Variables() []string { return nil }

// Transform returns a fresh node with an empty cache.
func (n *Now) Transform(Rewriter) (Expression, error) {
	return NewNow(), nil
}

// String renders NOW().
func (n *Now) String() string { return "NOW()" }
