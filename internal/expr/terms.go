package expr

import (
	"github.com/roach88/rdfexpr/internal/term"
)

// Variable references a variable of the current row.
type Variable struct {
	name string
}

// NewVariable creates a variable reference. name excludes the leading '?'.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

func (*Variable) expressionNode() {}

// Name returns the variable name without '?'.
func (v *Variable) Name() string { return v.name }

// Value returns the bound term, or an UNBOUND_VARIABLE error.
func (v *Variable) Value(ec *EvalContext, id int) (term.Term, error) {
	b, err := ec.Binding(id)
	if err != nil {
		return term.Term{}, err
	}
	t, ok := b.Get(v.name)
	if !ok {
		return term.Term{}, newUnboundError(v.name)
	}
	return t, nil
}

// EffectiveBooleanValue coerces the bound term.
func (v *Variable) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	t, err := v.Value(ec, id)
	if err != nil {
		return false, err
	}
	return EffectiveBooleanValue(t)
}

// Variables returns the referenced variable.
func (v *Variable) Variables() []string { return []string{v.name} }

// Transform returns a copy; a variable has no children.
func (v *Variable) Transform(Rewriter) (Expression, error) {
	return &Variable{name: v.name}, nil
}

// String renders ?name.
func (v *Variable) String() string { return "?" + v.name }

// Constant is a fixed term.
type Constant struct {
	value term.Term
}

// NewConstant creates a constant expression.
func NewConstant(t term.Term) *Constant {
	return &Constant{value: t}
}

func (*Constant) expressionNode() {}

// Term returns the constant term.
func (c *Constant) Term() term.Term { return c.value }

// Value returns the constant term.
func (c *Constant) Value(*EvalContext, int) (term.Term, error) {
	return c.value, nil
}

// EffectiveBooleanValue coerces the constant term.
func (c *Constant) EffectiveBooleanValue(*EvalContext, int) (bool, error) {
	return EffectiveBooleanValue(c.value)
}

// Variables returns nil; constants have no free variables.
func (c *Constant) Variables() []string { return nil }

// Transform returns a copy; a constant has no children.
func (c *Constant) Transform(Rewriter) (Expression, error) {
	return &Constant{value: c.value}, nil
}

// String renders the term in N-Triples syntax.
func (c *Constant) String() string { return c.value.String() }

// asVariable checks that a rewritten child is still a variable reference.
func asVariable(functor string, e Expression) (*Variable, error) {
	v, ok := e.(*Variable)
	if !ok {
		return nil, newTypeError(functor, "argument must be a variable, got %s", e)
	}
	return v, nil
}
