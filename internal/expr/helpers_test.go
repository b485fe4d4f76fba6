package expr_test

import (
	"context"
	"testing"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/term"
)

const ex = "http://example.org/"

func iri(local string) term.Term { return term.NewIRI(ex + local) }

// newContext installs rows as the input multiset of a fresh context.
func newContext(t *testing.T, token string, rows []solution.Binding, opts ...expr.ContextOption) *expr.EvalContext {
	t.Helper()
	input := solution.New()
	for _, r := range rows {
		input.Add(r)
	}
	opts = append([]expr.ContextOption{expr.WithInput(input)}, opts...)
	return expr.NewEvalContext(context.Background(), token, opts...)
}

// xpy is the pattern { ?x <http://example.org/p> ?y . }.
func xpy() *pattern.GraphPattern {
	return pattern.New(pattern.TriplePattern{
		Subject:   pattern.V("x"),
		Predicate: pattern.T(iri("p")),
		Object:    pattern.V("y"),
	})
}
