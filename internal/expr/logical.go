package expr

import "github.com/roach88/rdfexpr/internal/term"

// Bound is BOUND(?v): true when the variable has a value in the row.
type Bound struct {
	v *Variable
}

// NewBound creates BOUND(?v).
func NewBound(v *Variable) *Bound {
	return &Bound{v: v}
}

func (*Bound) expressionNode() {}

// Value returns an xsd:boolean literal.
func (b *Bound) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := b.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue reports whether the variable is bound.
func (b *Bound) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	row, err := ec.Binding(id)
	if err != nil {
		return false, err
	}
	return row.IsBound(b.v.name), nil
}

// Variables returns the tested variable.
func (b *Bound) Variables() []string { return b.v.Variables() }

// Transform rewrites the tested variable, which must stay a variable.
func (b *Bound) Transform(fn Rewriter) (Expression, error) {
	rewritten, err := fn(b.v)
	if err != nil {
		return nil, err
	}
	v, err := asVariable("BOUND", rewritten)
	if err != nil {
		return nil, err
	}
	return &Bound{v: v}, nil
}

// String renders BOUND(?v).
func (b *Bound) String() string { return "BOUND(" + b.v.String() + ")" }

// And is the SPARQL && operator.
//
// Truth table: false if either side is false (even if the other errors),
// true if both are true, otherwise the first error.
type And struct {
	left, right Expression
}

// NewAnd creates left && right.
func NewAnd(left, right Expression) *And {
	return &And{left: left, right: right}
}

func (*And) expressionNode() {}

// Value returns the conjunction as an xsd:boolean literal.
func (a *And) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := a.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue is false when either side is false, even if the
// other side errors. Otherwise an error from either side is returned.
func (a *And) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	l, lerr := a.left.EffectiveBooleanValue(ec, id)
	if lerr == nil && !l {
		return false, nil
	}
	r, rerr := a.right.EffectiveBooleanValue(ec, id)
	if rerr == nil && !r {
		return false, nil
	}
	if lerr != nil {
		return false, lerr
	}
	if rerr != nil {
		return false, rerr
	}
	return true, nil
}

// Variables returns the union of both operands' variables.
func (a *And) Variables() []string {
	return unionVariables(a.left.Variables(), a.right.Variables())
}

// Transform rewrites both operands.
func (a *And) Transform(fn Rewriter) (Expression, error) {
	l, err := fn(a.left)
	if err != nil {
		return nil, err
	}
	r, err := fn(a.right)
	if err != nil {
		return nil, err
	}
	return &And{left: l, right: r}, nil
}

// String renders (left && right).
func (a *And) String() string {
	return "(" + a.left.String() + " && " + a.right.String() + ")"
}

// Or is the SPARQL || operator.
//
// Truth table: true if either side is true (even if the other errors),
// false if both are false, otherwise the first error.
type Or struct {
	left, right Expression
}

// NewOr creates left || right.
func NewOr(left, right Expression) *Or {
	return &Or{left: left, right: right}
}

func (*Or) expressionNode() {}

// Value returns the disjunction as an xsd:boolean literal.
func (o *Or) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := o.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue is true when either side is true, even if the
// other side errors. Otherwise an error from either side is returned.
func (o *Or) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	l, lerr := o.left.EffectiveBooleanValue(ec, id)
	if lerr == nil && l {
		return true, nil
	}
	r, rerr := o.right.EffectiveBooleanValue(ec, id)
	if rerr == nil && r {
		return true, nil
	}
	if lerr != nil {
		return false, lerr
	}
	if rerr != nil {
		return false, rerr
	}
	return false, nil
}

// Variables returns the union of both operands' variables.
func (o *Or) Variables() []string {
	return unionVariables(o.left.Variables(), o.right.Variables())
}

// Transform rewrites both operands.
func (o *Or) Transform(fn Rewriter) (Expression, error) {
	l, err := fn(o.left)
	if err != nil {
		return nil, err
	}
	r, err := fn(o.right)
	if err != nil {
		return nil, err
	}
	return &Or{left: l, right: r}, nil
}

// String renders (left || right).
func (o *Or) String() string {
	return "(" + o.left.String() + " || " + o.right.String() + ")"
}

// Not is the SPARQL ! operator. Errors propagate unchanged.
type Not struct {
	inner Expression
}

// NewNot creates !inner.
func NewNot(inner Expression) *Not {
	return &Not{inner: inner}
}

func (*Not) expressionNode() {}

// Value returns the negation as an xsd:boolean literal.
func (n *Not) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := n.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue negates the operand's EBV; errors propagate.
func (n *Not) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	ok, err := n.inner.EffectiveBooleanValue(ec, id)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Variables returns the operand's variables.
func (n *Not) Variables() []string { return n.inner.Variables() }

// Transform rewrites the operand.
func (n *Not) Transform(fn Rewriter) (Expression, error) {
	inner, err := fn(n.inner)
	if err != nil {
		return nil, err
	}
	return &Not{inner: inner}, nil
}

// String renders !operand.
func (n *Not) String() string { return "!" + n.inner.String() }
