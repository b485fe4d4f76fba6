// Package querysql compiles basic graph patterns to parameterized SQL over
// the store's triples table.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/store"
)

// columns names the triples table columns by triple position.
var columns = [3]string{"subject", "predicate", "object"}

// Plan is a compiled pattern query.
type Plan struct {
	// SQL is the query text. Every constant is a ? placeholder.
	SQL string

	// Params holds the placeholder values in order.
	Params []any

	// Vars names the variable bound by each selected column, in order.
	// A pattern without variables selects a single constant column.
	Vars []string
}

// SQLCompiler compiles graph patterns to parameterized SQL for SQLite.
//
// CRITICAL: ALL queries include ORDER BY over every joined row id for
// deterministic results.
// CRITICAL: All term values are parameterized (never interpolated).
type SQLCompiler struct {
	// Table is the triples table name.
	Table string
}

// NewSQLCompiler creates a compiler over the default triples table.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Table: "triples"}
}

// Compile converts a basic graph pattern to a self-join over the triples table.
//
// Triple pattern i becomes alias t<i>. Constants become "t<i>.col = ?".
// The first occurrence of a variable is selected as v<k>; later occurrences
// become equi-join conditions against it.
//
// Example:
//
//	{ ?s <p> ?o . ?o <q> "x" . }
//
// compiles to
//
//	SELECT t0.subject AS v0, t0.object AS v1
//	FROM triples t0, triples t1
//	WHERE t0.predicate = ? AND t1.subject = t0.object AND t1.predicate = ? AND t1.object = ?
//	ORDER BY t0.id ASC, t1.id ASC
//
// The empty pattern has no SQL form; callers evaluate it as the identity
// multiset.
func (c *SQLCompiler) Compile(p *pattern.GraphPattern) (Plan, error) {
	if p == nil {
		return Plan{}, fmt.Errorf("cannot compile nil pattern")
	}
	if p.IsEmpty() {
		return Plan{}, fmt.Errorf("cannot compile empty pattern")
	}

	var (
		from    []string
		where   []string
		order   []string
		params  []any
		selects []string
		vars    []string
		firstAt = make(map[string]string) // variable -> qualified column
	)

	for i, tp := range p.Triples {
		alias := fmt.Sprintf("t%d", i)
		from = append(from, c.Table+" "+alias)
		order = append(order, alias+".id ASC")

		for pos, n := range tp.Nodes() {
			col := alias + "." + columns[pos]

			if !n.IsVariable() {
				if n.Term.IsZero() {
					return Plan{}, fmt.Errorf("triple pattern %d: %s is neither a variable nor a term", i, columns[pos])
				}
				where = append(where, col+" = ?")
				params = append(params, store.EncodeTerm(n.Term))
				continue
			}

			if prev, ok := firstAt[n.Var]; ok {
				where = append(where, col+" = "+prev)
				continue
			}
			firstAt[n.Var] = col
			selects = append(selects, fmt.Sprintf("%s AS v%d", col, len(vars)))
			vars = append(vars, n.Var)
		}
	}

	if len(selects) == 0 {
		selects = []string{"1"}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selects, ", "))
	b.WriteString(" FROM ")
	b.WriteString(strings.Join(from, ", "))
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	// MANDATORY: deterministic row order
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(order, ", "))

	return Plan{SQL: b.String(), Params: params, Vars: vars}, nil
}
