package engine

import (
	"fmt"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/querysql"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/store"
	"github.com/roach88/rdfexpr/internal/term"
)

// StoreEvaluator implements expr.PatternEvaluator over the triple store.
//
// Basic graph patterns are compiled to SQL by querysql and run with the
// EvalContext's Go context. The evaluator never touches the context's
// installed input multiset.
type StoreEvaluator struct {
	store    *store.Store
	compiler *querysql.SQLCompiler
}

// NewStoreEvaluator creates an evaluator over s.
func NewStoreEvaluator(s *store.Store) *StoreEvaluator {
	return &StoreEvaluator{store: s, compiler: querysql.NewSQLCompiler()}
}

// Evaluate returns one row per match of p, in deterministic order.
// The empty pattern yields the identity multiset (one empty row).
func (e *StoreEvaluator) Evaluate(p *pattern.GraphPattern, ec *expr.EvalContext) (*solution.Multiset, error) {
	if p == nil || p.IsEmpty() {
		return solution.Identity(), nil
	}

	plan, err := e.compiler.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}

	rows, err := e.store.Query(ec.Context(), plan.SQL, plan.Params...)
	if err != nil {
		return nil, fmt.Errorf("query pattern: %w", err)
	}
	defer rows.Close()

	out := solution.New(plan.Vars...)

	cols := make([]string, len(plan.Vars))
	dest := make([]any, len(plan.Vars))
	for i := range cols {
		dest[i] = &cols[i]
	}
	if len(dest) == 0 {
		var one int
		dest = []any{&one}
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan pattern row: %w", err)
		}
		values := make(map[string]term.Term, len(plan.Vars))
		for i, v := range plan.Vars {
			t, err := store.DecodeTerm(cols[i])
			if err != nil {
				return nil, err
			}
			values[v] = t
		}
		out.Add(solution.NewBinding(values))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pattern rows: %w", err)
	}
	return out, nil
}
