package expr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/term"
	"github.com/roach88/rdfexpr/internal/testutil"
)

// subResults is [{?x=ex:a, ?y=ex:1}, {?x=ex:b, ?y=ex:2}].
func subResults() *solution.Multiset {
	return solution.FromRows([]string{"x", "y"},
		solution.B("x", iri("a"), "y", iri("1")),
		solution.B("x", iri("b"), "y", iri("2")),
	)
}

func TestExists_SemiJoin(t *testing.T) {
	tests := []struct {
		name      string
		row       solution.Binding
		exists    bool
		notExists bool
	}{
		{"matching row", solution.B("x", iri("a")), true, false},
		{"non-matching row", solution.B("x", iri("z")), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := testutil.NewCountingEvaluator(subResults())
			ec := newContext(t, "t1", []solution.Binding{tt.row}, expr.WithEvaluator(pe))

			got, err := expr.NewExists(xpy()).EffectiveBooleanValue(ec, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)

			got, err = expr.NewNotExists(xpy()).EffectiveBooleanValue(ec, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.notExists, got)
		})
	}
}

func TestExists_JoinVariables(t *testing.T) {
	tests := []struct {
		name string
		vars []string
		row  solution.Binding
		want bool
	}{
		{
			name: "two shared variables must both agree",
			row:  solution.B("x", iri("a"), "y", iri("2")),
			want: false,
		},
		{
			name: "two shared variables agreeing",
			row:  solution.B("x", iri("b"), "y", iri("2")),
			want: true,
		},
		{
			name: "declared but unbound variable imposes no constraint",
			vars: []string{"x"},
			row:  solution.B("z", iri("q")),
			want: true,
		},
		{
			name: "no shared variables matches any result row",
			row:  solution.B("z", iri("q")),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := solution.New(tt.vars...)
			input.Add(tt.row)
			pe := testutil.NewCountingEvaluator(subResults())
			ec := expr.NewEvalContext(context.Background(), "t1",
				expr.WithInput(input), expr.WithEvaluator(pe))

			got, err := expr.NewExists(xpy()).EffectiveBooleanValue(ec, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExists_EmptyResult(t *testing.T) {
	pe := testutil.NewCountingEvaluator(solution.New("x", "y"))
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))

	got, err := expr.NewExists(xpy()).EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = expr.NewNotExists(xpy()).EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestExists_NilResultIsEmpty(t *testing.T) {
	pe := testutil.NewCountingEvaluator(nil)
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))

	got, err := expr.NewNotExists(xpy()).EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestExists_EvaluatesPatternOncePerExecution(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	rows := []solution.Binding{
		solution.B("x", iri("a")),
		solution.B("x", iri("b")),
		solution.B("x", iri("z")),
		solution.B("x", iri("a")),
	}
	ec := newContext(t, "t1", rows, expr.WithEvaluator(pe))
	exists := expr.NewExists(xpy())

	var got []bool
	for id := range rows {
		ok, err := exists.EffectiveBooleanValue(ec, id)
		require.NoError(t, err)
		got = append(got, ok)
	}

	assert.Equal(t, []bool{true, true, false, true}, got)
	assert.Equal(t, 1, pe.Calls())
	assert.Equal(t, []string{xpy().String()}, pe.Patterns())

	// A new execution evaluates the pattern again.
	ec2 := newContext(t, "t2", rows, expr.WithEvaluator(pe))
	_, err := exists.EffectiveBooleanValue(ec2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, pe.Calls())
}

func TestExists_InterleavedExecutionsEvaluateOnceEach(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	rows := []solution.Binding{solution.B("x", iri("a")), solution.B("x", iri("z"))}
	execA := newContext(t, "exec-A", rows, expr.WithEvaluator(pe))
	execB := newContext(t, "exec-B", rows, expr.WithEvaluator(pe))
	exists := expr.NewExists(xpy())

	for _, step := range []struct {
		ec   *expr.EvalContext
		id   int
		want bool
	}{
		{execA, 0, true},
		{execB, 0, true},
		{execA, 1, false},
		{execB, 1, false},
	} {
		got, err := exists.EffectiveBooleanValue(step.ec, step.id)
		require.NoError(t, err)
		assert.Equal(t, step.want, got)
	}
	assert.Equal(t, 2, pe.Calls(), "one pattern evaluation per execution")

	expr.ReleaseExecution(exists, "exec-A")
	_, err := exists.EffectiveBooleanValue(execA, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, pe.Calls(), "a released execution evaluates again")

	_, err = exists.EffectiveBooleanValue(execB, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, pe.Calls(), "releasing exec-A leaves exec-B cached")
}

func TestReleaseExecution_WalksNestedNodes(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))
	exists := expr.NewExists(xpy())
	x := expr.NewVariable("x")
	tree := expr.NewOr(expr.NewNot(expr.NewBound(x)), expr.NewAnd(exists, expr.NewBound(x)))

	got, err := tree.EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, pe.Calls())

	expr.ReleaseExecution(tree, "t1")
	expr.ReleaseExecution(nil, "t1")

	_, err = exists.EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, pe.Calls())
}

func TestExists_RestoresInput(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	pe.Clobber = true
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))
	before := ec.Input()

	got, err := expr.NewExists(xpy()).EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.True(t, got, "the semi-join runs against the restored input")
	assert.Same(t, before, ec.Input())
}

func TestExists_EvaluatorFailure(t *testing.T) {
	boom := errors.New("store unavailable")
	pe := &testutil.CountingEvaluator{Err: boom, Clobber: true}
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))
	before := ec.Input()
	exists := expr.NewExists(xpy())

	_, err := exists.EffectiveBooleanValue(ec, 0)
	require.Error(t, err)
	assert.True(t, expr.IsEvaluationError(err))
	assert.ErrorIs(t, err, boom)
	assert.Same(t, before, ec.Input(), "input restored on the error path")

	// The cache stays empty, so the next call retries.
	pe.Err = nil
	pe.Result = subResults()
	got, err := exists.EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 2, pe.Calls())
}

func TestExists_NoEvaluator(t *testing.T) {
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))})

	_, err := expr.NewExists(xpy()).EffectiveBooleanValue(ec, 0)
	assert.True(t, expr.IsEvaluationError(err))
}

func TestExists_InvalidBinding(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))

	_, err := expr.NewExists(xpy()).EffectiveBooleanValue(ec, 9)
	assert.True(t, expr.IsInvalidBindingError(err))
}

func TestExists_ValueAndText(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("z"))}, expr.WithEvaluator(pe))

	notExists := expr.NewNotExists(xpy())
	v, err := notExists.Value(ec, 0)
	require.NoError(t, err)
	assert.Equal(t, term.NewBoolean(true), v)

	assert.Equal(t, "EXISTS { ?x <http://example.org/p> ?y . }", expr.NewExists(xpy()).String())
	assert.Equal(t, "NOT EXISTS { ?x <http://example.org/p> ?y . }", notExists.String())
	assert.Equal(t, []string{"x", "y"}, notExists.Variables())
	assert.False(t, notExists.MustExist())
	assert.Equal(t, xpy(), notExists.Pattern())
}

func TestExists_TransformStartsWithEmptyCache(t *testing.T) {
	pe := testutil.NewCountingEvaluator(subResults())
	ec := newContext(t, "t1", []solution.Binding{solution.B("x", iri("a"))}, expr.WithEvaluator(pe))
	exists := expr.NewExists(xpy())

	_, err := exists.EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)

	copied, err := exists.Transform(nil)
	require.NoError(t, err)
	_, err = copied.EffectiveBooleanValue(ec, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, pe.Calls())
}
