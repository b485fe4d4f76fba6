package testutil

import (
	"sync"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/solution"
)

// CountingEvaluator is a stub expr.PatternEvaluator that returns a canned
// result and counts calls.
//
// When Clobber is set, Evaluate installs a scratch multiset in the context
// before returning, as a misbehaving evaluator would. Callers that promise
// to restore the context can be checked against it.
type CountingEvaluator struct {
	Result  *solution.Multiset
	Err     error
	Clobber bool

	mu       sync.Mutex
	calls    int
	patterns []string
}

// NewCountingEvaluator creates a stub returning result.
func NewCountingEvaluator(result *solution.Multiset) *CountingEvaluator {
	return &CountingEvaluator{Result: result}
}

// Evaluate records the call and returns the canned result or error.
func (e *CountingEvaluator) Evaluate(p *pattern.GraphPattern, ec *expr.EvalContext) (*solution.Multiset, error) {
	e.mu.Lock()
	e.calls++
	e.patterns = append(e.patterns, p.String())
	e.mu.Unlock()

	if e.Clobber {
		ec.SetInput(solution.New("scratch"))
	}
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Result, nil
}

// Calls returns the number of Evaluate calls.
func (e *CountingEvaluator) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// Patterns returns the text of every evaluated pattern, in call order.
func (e *CountingEvaluator) Patterns() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.patterns...)
}
