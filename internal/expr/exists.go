package expr

import (
	"log/slog"

	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/term"
)

// Exists is EXISTS { pattern } or NOT EXISTS { pattern }.
//
// The embedded pattern is evaluated at most once per execution token; the
// result multiset is cached and every row is then tested against it with a
// semi-join on the variables the input and the result both declare.
type Exists struct {
	pattern   *pattern.GraphPattern
	mustExist bool
	results   memo[*solution.Multiset]
}

// NewExists creates EXISTS { p }.
func NewExists(p *pattern.GraphPattern) *Exists {
	return &Exists{pattern: p, mustExist: true}
}

// NewNotExists creates NOT EXISTS { p }.
func NewNotExists(p *pattern.GraphPattern) *Exists {
	return &Exists{pattern: p, mustExist: false}
}

func (*Exists) expressionNode() {}

// Pattern returns the embedded pattern.
func (e *Exists) Pattern() *pattern.GraphPattern { return e.pattern }

// MustExist is true for EXISTS and false for NOT EXISTS.
func (e *Exists) MustExist() bool { return e.mustExist }

func (e *Exists) functor() string {
	if e.mustExist {
		return "EXISTS"
	}
	return "NOT EXISTS"
}

// Value returns the existence test as an xsd:boolean literal.
func (e *Exists) Value(ec *EvalContext, id int) (term.Term, error) {
	ok, err := e.EffectiveBooleanValue(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewBoolean(ok), nil
}

// EffectiveBooleanValue reports whether any cached result row agrees with
// row id on every shared variable bound in the row, inverted for NOT EXISTS.
func (e *Exists) EffectiveBooleanValue(ec *EvalContext, id int) (bool, error) {
	results, err := e.results.getOrCompute(ec.ExecutionToken(), func() (*solution.Multiset, error) {
		return e.evaluatePattern(ec)
	})
	if err != nil {
		return false, err
	}

	row, err := ec.Binding(id)
	if err != nil {
		return false, err
	}

	joinVars := ec.Input().SharedVariables(results)
	exists := false
	for _, candidate := range results.Rows() {
		if compatible(row, candidate, joinVars) {
			exists = true
			break
		}
	}
	return exists == e.mustExist, nil
}

// compatible reports whether candidate agrees with row on every join
// variable that row binds.
func compatible(row, candidate solution.Binding, joinVars []string) bool {
	for _, v := range joinVars {
		want, ok := row.Get(v)
		if !ok {
			continue
		}
		got, ok := candidate.Get(v)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// evaluatePattern runs the embedded pattern through the context's evaluator.
// The installed input multiset is restored on every exit path.
func (e *Exists) evaluatePattern(ec *EvalContext) (*solution.Multiset, error) {
	pe := ec.Evaluator()
	if pe == nil {
		return nil, newEvaluationError(e.functor(), "no pattern evaluator configured", nil)
	}

	saved := ec.Input()
	defer ec.SetInput(saved)

	slog.Debug("evaluating embedded pattern",
		"functor", e.functor(),
		"pattern", e.pattern.String(),
		"token", ec.ExecutionToken(),
	)

	results, err := pe.Evaluate(e.pattern, ec)
	if err != nil {
		return nil, newEvaluationError(e.functor(), "embedded pattern evaluation failed", err)
	}
	if results == nil {
		results = solution.New()
	}
	return results, nil
}

// Variables returns the embedded pattern's variables.
func (e *Exists) Variables() []string { return e.pattern.Variables() }

// Transform returns a fresh node with an empty cache. The embedded pattern
// is not an expression and is shared.
func (e *Exists) Transform(Rewriter) (Expression, error) {
	return &Exists{pattern: e.pattern, mustExist: e.mustExist}, nil
}

// String renders EXISTS { ... } or NOT EXISTS { ... }.
func (e *Exists) String() string {
	return e.functor() + " " + e.pattern.String()
}
