package querysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/store"
	"github.com/roach88/rdfexpr/internal/term"
)

const ex = "http://example.org/"

func iri(local string) term.Term { return term.NewIRI(ex + local) }

func tp(s, p, o pattern.Node) pattern.TriplePattern {
	return pattern.TriplePattern{Subject: s, Predicate: p, Object: o}
}

func TestCompile_SingleTriple(t *testing.T) {
	compiler := NewSQLCompiler()

	plan, err := compiler.Compile(pattern.New(
		tp(pattern.V("s"), pattern.T(iri("p")), pattern.V("o")),
	))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT t0.subject AS v0, t0.object AS v1 FROM triples t0 WHERE t0.predicate = ? ORDER BY t0.id ASC",
		plan.SQL)
	assert.Equal(t, []any{"<http://example.org/p>"}, plan.Params)
	assert.Equal(t, []string{"s", "o"}, plan.Vars)
}

func TestCompile_JoinOnSharedVariable(t *testing.T) {
	compiler := NewSQLCompiler()

	plan, err := compiler.Compile(pattern.New(
		tp(pattern.V("s"), pattern.T(iri("p")), pattern.V("o")),
		tp(pattern.V("o"), pattern.T(iri("q")), pattern.T(term.NewLiteral("x"))),
	))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT t0.subject AS v0, t0.object AS v1 FROM triples t0, triples t1 "+
			"WHERE t0.predicate = ? AND t1.subject = t0.object AND t1.predicate = ? AND t1.object = ? "+
			"ORDER BY t0.id ASC, t1.id ASC",
		plan.SQL)
	assert.Equal(t, []any{"<http://example.org/p>", "<http://example.org/q>", `"x"`}, plan.Params)
	assert.Equal(t, []string{"s", "o"}, plan.Vars)
}

func TestCompile_RepeatedVariableInOneTriple(t *testing.T) {
	plan, err := NewSQLCompiler().Compile(pattern.New(
		tp(pattern.V("x"), pattern.T(iri("knows")), pattern.V("x")),
	))
	require.NoError(t, err)

	assert.Contains(t, plan.SQL, "t0.object = t0.subject")
	assert.Equal(t, []string{"x"}, plan.Vars)
}

func TestCompile_NoVariables(t *testing.T) {
	plan, err := NewSQLCompiler().Compile(pattern.New(
		tp(pattern.T(iri("a")), pattern.T(iri("p")), pattern.T(iri("b"))),
	))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT 1 FROM triples t0 WHERE t0.subject = ? AND t0.predicate = ? AND t0.object = ? ORDER BY t0.id ASC",
		plan.SQL)
	assert.Empty(t, plan.Vars)
}

func TestCompile_ValuesNeverInterpolated(t *testing.T) {
	plan, err := NewSQLCompiler().Compile(pattern.New(
		tp(pattern.V("s"), pattern.T(iri("p")), pattern.T(term.NewLiteral("'; DROP TABLE triples; --"))),
	))
	require.NoError(t, err)

	assert.NotContains(t, plan.SQL, "DROP")
	assert.Len(t, plan.Params, 2)
}

func TestCompile_Errors(t *testing.T) {
	compiler := NewSQLCompiler()

	_, err := compiler.Compile(nil)
	assert.Error(t, err)

	_, err = compiler.Compile(pattern.New())
	assert.Error(t, err)

	_, err = compiler.Compile(pattern.New(tp(pattern.V("s"), pattern.Node{}, pattern.V("o"))))
	assert.Error(t, err)
}

func TestCompile_ExecutesAgainstStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.AddTriples(ctx,
		store.T(iri("alice"), iri("knows"), iri("bob")),
		store.T(iri("bob"), iri("knows"), iri("carol")),
		store.T(iri("bob"), iri("name"), term.NewLiteral("Bob")),
	)
	require.NoError(t, err)

	plan, err := NewSQLCompiler().Compile(pattern.New(
		tp(pattern.V("a"), pattern.T(iri("knows")), pattern.V("b")),
		tp(pattern.V("b"), pattern.T(iri("name")), pattern.V("n")),
	))
	require.NoError(t, err)

	rows, err := s.Query(ctx, plan.SQL, plan.Params...)
	require.NoError(t, err)
	defer rows.Close()

	var got [][3]string
	for rows.Next() {
		var a, b, n string
		require.NoError(t, rows.Scan(&a, &b, &n))
		got = append(got, [3]string{a, b, n})
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, [][3]string{{"<http://example.org/alice>", "<http://example.org/bob>", `"Bob"`}}, got)
}
