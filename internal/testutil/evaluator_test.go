package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/term"
)

func TestCountingEvaluator_CountsCalls(t *testing.T) {
	result := solution.New("x")
	result.Add(solution.B("x", term.NewIRI("http://example.org/a")))
	pe := NewCountingEvaluator(result)
	ec := expr.NewEvalContext(context.Background(), "t1")

	p := pattern.New(pattern.TriplePattern{
		Subject:   pattern.V("x"),
		Predicate: pattern.T(term.NewIRI("http://example.org/p")),
		Object:    pattern.V("y"),
	})

	got, err := pe.Evaluate(p, ec)
	require.NoError(t, err)
	assert.Same(t, result, got)

	_, err = pe.Evaluate(p, ec)
	require.NoError(t, err)

	assert.Equal(t, 2, pe.Calls())
	assert.Equal(t, []string{p.String(), p.String()}, pe.Patterns())
}

func TestCountingEvaluator_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	pe := &CountingEvaluator{Err: boom}
	ec := expr.NewEvalContext(context.Background(), "t1")

	_, err := pe.Evaluate(pattern.New(), ec)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, pe.Calls())
}

func TestCountingEvaluator_Clobber(t *testing.T) {
	input := solution.New("x")
	pe := &CountingEvaluator{Result: solution.New(), Clobber: true}
	ec := expr.NewEvalContext(context.Background(), "t1", expr.WithInput(input))

	_, err := pe.Evaluate(pattern.New(), ec)
	require.NoError(t, err)
	assert.NotSame(t, input, ec.Input())
}
