package expr

import (
	"context"
	"time"

	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/solution"
)

// PatternEvaluator turns a graph pattern into a multiset of bindings.
//
// Implementations must not retain ec beyond the call and must leave ec's
// installed input multiset as they found it when they return.
type PatternEvaluator interface {
	Evaluate(p *pattern.GraphPattern, ec *EvalContext) (*solution.Multiset, error)
}

// Clock supplies the current instant for NOW().
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// Now returns time.Now().
func (WallClock) Now() time.Time { return time.Now() }

// EvalContext is the per-execution state threaded through every evaluation call.
//
// It holds the active input multiset (swappable around sub-evaluations), the
// execution token that scopes cached values, the pattern evaluator used by
// EXISTS and the clock used by NOW(). The binding id is passed alongside the
// context on every call and never stored in it.
type EvalContext struct {
	ctx       context.Context
	token     string
	input     *solution.Multiset
	evaluator PatternEvaluator
	clock     Clock
}

// ContextOption configures an EvalContext.
type ContextOption func(*EvalContext)

// WithInput installs the initial input multiset.
func WithInput(m *solution.Multiset) ContextOption {
	return func(ec *EvalContext) {
		ec.input = m
	}
}

// WithEvaluator sets the pattern evaluator used by EXISTS.
func WithEvaluator(pe PatternEvaluator) ContextOption {
	return func(ec *EvalContext) {
		ec.evaluator = pe
	}
}

// WithClock sets the clock used by NOW().
func WithClock(c Clock) ContextOption {
	return func(ec *EvalContext) {
		ec.clock = c
	}
}

// NewEvalContext creates the context for one query execution identified by token.
//
// Defaults: empty input multiset, no pattern evaluator, wall clock.
func NewEvalContext(ctx context.Context, token string, opts ...ContextOption) *EvalContext {
	if ctx == nil {
		ctx = context.Background()
	}
	ec := &EvalContext{
		ctx:   ctx,
		token: token,
		input: solution.New(),
		clock: WallClock{},
	}
	for _, opt := range opts {
		opt(ec)
	}
	return ec
}

// Context returns the Go context for blocking sub-evaluations.
func (ec *EvalContext) Context() context.Context { return ec.ctx }

// ExecutionToken returns the opaque identity of the current execution.
func (ec *EvalContext) ExecutionToken() string { return ec.token }

// Input returns the currently installed input multiset.
func (ec *EvalContext) Input() *solution.Multiset { return ec.input }

// SetInput installs m as the input multiset.
// Binding ids issued against the previous multiset are not valid for m.
func (ec *EvalContext) SetInput(m *solution.Multiset) { ec.input = m }

// Evaluator returns the pattern evaluator, or nil.
func (ec *EvalContext) Evaluator() PatternEvaluator { return ec.evaluator }

// Clock returns the clock used by NOW().
func (ec *EvalContext) Clock() Clock { return ec.clock }

// Binding resolves row id against the installed input multiset.
func (ec *EvalContext) Binding(id int) (solution.Binding, error) {
	b, err := ec.input.Row(id)
	if err != nil {
		return solution.Binding{}, newInvalidBindingError(err)
	}
	return b, nil
}
