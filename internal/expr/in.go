package expr

import (
	"slices"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// In is ?v IN (t1, t2, ...) over a fixed term set.
//
// An unbound variable makes the test false. Any other resolution error
// propagates.
type In struct {
	v   *Variable
	set []term.Term
}

// NewIn creates ?v IN (terms...). Duplicate terms collapse.
func NewIn(v *Variable, terms ...term.Term) *In {
	set := make([]term.Term, 0, len(terms))
	for _, t := range terms {
		if !slices.Contains(set, t) {
			set = append(set, t)
		}
	}
	slices.SortFunc(set, func(a, b term.Term) int {
		return strings.Compare(a.String(), b.String())
	})
	return &In{v: v, set: set}
}

func (*In) expressionNode() {}

// Variable returns the tested variable.
func (in *In) Variable() *Variable { return in.v }

// Terms returns the candidate set in canonical order.
func (in *In) Terms() []term.Term { return slices.Clone(in.set) }

// Value returns the membership test as an xsd:boolean literal.
func (in *In) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := in.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue reports whether the variable is bound to a member
// of the set. Unbound is false; other resolution errors propagate.
func (in *In) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	t, err := in.v.Value(ec, id)
	if err != nil {
		if IsUnboundError(err) {
			return false, nil
		}
		return false, err
	}
	return slices.Contains(in.set, t), nil
}

// Variables returns the tested variable.
func (in *In) Variables() []string { return in.v.Variables() }

// Transform rewrites the tested variable. The replacement must still be a
// variable; the set is shared.
func (in *In) Transform(fn Rewriter) (Expression, error) {
	rewritten, err := fn(in.v)
	if err != nil {
		return nil, err
	}
	v, err := asVariable("IN", rewritten)
	if err != nil {
		return nil, err
	}
	return &In{v: v, set: in.set}, nil
}

// String renders ?v IN (t1, t2, ...) with the set in canonical order.
func (in *In) String() string {
	return in.v.String() + " IN " + in.setText()
}

func (in *In) setText() string {
	parts := make([]string, len(in.set))
	for i, t := range in.set {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NotIn is ?v NOT IN (...), the exact complement of In: it evaluates the
// underlying In and inverts the result. In's errors pass through unchanged.
type NotIn struct {
	in *In
}

// NewNotIn creates ?v NOT IN (terms...).
func NewNotIn(v *Variable, terms ...term.Term) *NotIn {
	return &NotIn{in: NewIn(v, terms...)}
}

func (*NotIn) expressionNode() {}

// Variable returns the tested variable.
func (n *NotIn) Variable() *Variable { return n.in.v }

// Terms returns the candidate set in canonical order.
func (n *NotIn) Terms() []term.Term { return n.in.Terms() }

// Value returns the negated membership test as an xsd:boolean literal.
func (n *NotIn) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := n.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue inverts In. An error from In is returned as is.
func (n *NotIn) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	ok, err := n.in.EffectiveBooleanValue(ec, id)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Variables returns the tested variable.
func (n *NotIn) Variables() []string { return n.in.Variables() }

// Transform rewrites the tested variable like In.Transform.
func (n *NotIn) Transform(fn Rewriter) (Expression, error) {
	rewritten, err := fn(n.in.v)
	if err != nil {
		return nil, err
	}
	v, err := asVariable("NOT IN", rewritten)
	if err != nil {
		return nil, err
	}
	return &NotIn{in: &In{v: v, set: n.in.set}}, nil
}

// String renders ?v NOT IN (t1, t2, ...).
func (n *NotIn) String() string {
	return n.in.v.String() + " NOT IN " + n.in.setText()
}
