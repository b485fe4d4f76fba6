package expr_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/term"
	"github.com/roach88/rdfexpr/internal/testutil"
)

func TestNow_MemoizedPerExecution(t *testing.T) {
	clock := testutil.NewStepClock(testutil.Epoch, time.Second)
	rows := []solution.Binding{solution.B(), solution.B(), solution.B()}
	ec := newContext(t, "exec-1", rows, expr.WithClock(clock))
	now := expr.NewNow()

	first, err := now.Value(ec, 0)
	require.NoError(t, err)
	for id := range rows {
		got, err := now.Value(ec, id)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
	assert.Equal(t, 1, clock.Calls())
	assert.Equal(t, term.NewDateTime(testutil.Epoch), first)
}

func TestNow_NewTokenRecomputes(t *testing.T) {
	clock := testutil.NewStepClock(testutil.Epoch, time.Second)
	now := expr.NewNow()

	ec1 := newContext(t, "exec-1", []solution.Binding{solution.B()}, expr.WithClock(clock))
	first, err := now.Value(ec1, 0)
	require.NoError(t, err)

	ec2 := newContext(t, "exec-2", []solution.Binding{solution.B()}, expr.WithClock(clock))
	second, err := now.Value(ec2, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, term.NewDateTime(testutil.Epoch.Add(time.Second)), second)
	assert.Equal(t, 2, clock.Calls())

	// Once exec-1 is released, its next evaluation reads the clock again.
	expr.ReleaseExecution(now, "exec-1")
	third, err := now.Value(ec1, 0)
	require.NoError(t, err)
	assert.Equal(t, term.NewDateTime(testutil.Epoch.Add(2*time.Second)), third)
}

func TestNow_InterleavedExecutionsKeepTheirInstant(t *testing.T) {
	clock := testutil.NewStepClock(testutil.Epoch, time.Second)
	now := expr.NewNow()
	rows := []solution.Binding{solution.B(), solution.B()}
	execA := newContext(t, "exec-A", rows, expr.WithClock(clock))
	execB := newContext(t, "exec-B", rows, expr.WithClock(clock))

	a0, err := now.Value(execA, 0)
	require.NoError(t, err)
	b0, err := now.Value(execB, 0)
	require.NoError(t, err)
	a1, err := now.Value(execA, 1)
	require.NoError(t, err)
	b1, err := now.Value(execB, 1)
	require.NoError(t, err)

	assert.Equal(t, term.NewDateTime(testutil.Epoch), a0)
	assert.Equal(t, a0, a1, "every row of one execution sees the same instant")
	assert.Equal(t, term.NewDateTime(testutil.Epoch.Add(time.Second)), b0)
	assert.Equal(t, b0, b1)
	assert.Equal(t, 2, clock.Calls())
}

func TestNow_Format(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	instant := time.Date(2024, time.March, 5, 6, 7, 8, 123456789, zone)
	ec := newContext(t, "exec-1", []solution.Binding{solution.B()},
		expr.WithClock(testutil.FixedClock{T: instant}))

	got, err := expr.NewNow().Value(ec, 0)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-05T06:07:08.123456+02:00", got.Value())
	assert.Equal(t, term.XSDDateTime, got.Datatype())
}

func TestNow_WallClockDefault(t *testing.T) {
	ec := expr.NewEvalContext(context.Background(), "exec-1")
	before := time.Now().Add(-time.Second)

	got, err := expr.NewNow().Value(ec, 0)
	require.NoError(t, err)

	parsed, err := time.Parse(term.DateTimeLayout, got.Value())
	require.NoError(t, err)
	assert.True(t, parsed.After(before))
}

func TestNow_EffectiveBooleanValueAlwaysFails(t *testing.T) {
	ec := newContext(t, "exec-1", []solution.Binding{solution.B()})
	now := expr.NewNow()

	for i := 0; i < 3; i++ {
		got, err := now.EffectiveBooleanValue(ec, 0)
		require.Error(t, err)
		assert.True(t, expr.IsTypeError(err))
		assert.False(t, got)
	}

	// The literal itself has no EBV either.
	v, err := now.Value(ec, 0)
	require.NoError(t, err)
	_, err = expr.EffectiveBooleanValue(v)
	assert.True(t, expr.IsTypeError(err))
}

func TestNow_TransformStartsWithEmptyCache(t *testing.T) {
	clock := testutil.NewStepClock(testutil.Epoch, time.Second)
	ec := newContext(t, "exec-1", []solution.Binding{solution.B()}, expr.WithClock(clock))
	now := expr.NewNow()

	_, err := now.Value(ec, 0)
	require.NoError(t, err)

	copied, err := now.Transform(nil)
	require.NoError(t, err)
	_, err = copied.Value(ec, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, clock.Calls())
	assert.Equal(t, "NOW()", copied.String())
	assert.Empty(t, copied.Variables())
}
