package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/querysql"
	"github.com/roach88/rdfexpr/internal/solution"
	"github.com/roach88/rdfexpr/internal/store"
	"github.com/roach88/rdfexpr/internal/term"
)

// DefaultMaxRows is the default maximum number of input rows per execution.
// This prevents runaway queries from consuming unbounded resources.
const DefaultMaxRows = 100000

// Query is a basic graph pattern with an optional filter and computed
// columns.
type Query struct {
	Where  *pattern.GraphPattern
	Filter expr.Expression // nil keeps every row
	Binds  []Bind          // evaluated in order on every kept row
}

// Bind assigns the value of Expr to Var. A row whose expression raises an
// error keeps Var unbound.
type Bind struct {
	Var  string
	Expr expr.Expression
}

// Result is the outcome of one execution.
type Result struct {
	// Token is the execution token every query-scoped cache was keyed by.
	Token string

	// Seq is the logical timestamp of the execution.
	Seq int64

	// Solutions holds the rows whose filter was true, in input order.
	Solutions *solution.Multiset

	// Input is the number of rows the WHERE pattern produced.
	Input int

	// Rejected counts rows whose filter was false.
	Rejected int

	// Errors counts rows excluded because the filter raised an error.
	Errors int

	// BindErrors counts bind expressions that left their variable unbound.
	BindErrors int
}

// Engine executes filtered pattern queries.
//
// Thread-safety model:
//   - Select(): safe from any goroutine; each call builds its own EvalContext
//   - An expression tree may be shared by concurrent Selects: query-scoped
//     caches keep one entry per execution token, and Select releases its
//     entries when it returns
type Engine struct {
	store     *store.Store
	evaluator expr.PatternEvaluator
	clock     *Clock
	tokens    TokenGenerator
	now       expr.Clock
	maxRows   int
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithMaxRows sets the maximum input rows per execution.
// Use WithMaxRows(0) to disable the limit.
func WithMaxRows(maxRows int) EngineOption {
	return func(e *Engine) {
		e.maxRows = maxRows
	}
}

// WithNowClock sets the clock NOW() reads. Defaults to the wall clock.
func WithNowClock(c expr.Clock) EngineOption {
	return func(e *Engine) {
		e.now = c
	}
}

// WithEvaluator replaces the store-backed pattern evaluator.
func WithEvaluator(pe expr.PatternEvaluator) EngineOption {
	return func(e *Engine) {
		e.evaluator = pe
	}
}

// WithClock sets the logical clock, e.g. to resume from a known seq.
func WithClock(c *Clock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine over s that draws execution tokens from tokens.
func New(s *store.Store, tokens TokenGenerator, opts ...EngineOption) *Engine {
	e := &Engine{
		store:     s,
		evaluator: NewStoreEvaluator(s),
		clock:     NewClock(),
		tokens:    tokens,
		now:       expr.WallClock{},
		maxRows:   DefaultMaxRows,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Store returns the underlying store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Select runs q as a new execution.
//
// Rows whose filter raises an error are excluded and counted in
// Result.Errors. Only WHERE failures, the row quota and context
// cancellation abort the execution.
func (e *Engine) Select(ctx context.Context, q Query) (*Result, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	token := e.tokens.Generate()
	seq := e.clock.Next()
	defer release(q, token)

	ec := expr.NewEvalContext(ctx, token,
		expr.WithEvaluator(e.evaluator),
		expr.WithClock(e.now),
	)

	slog.Debug("execution starting",
		"token", token,
		"seq", seq,
		"where", q.Where.String(),
	)

	input, err := e.evaluator.Evaluate(q.Where, ec)
	if err != nil {
		return nil, newPatternError(token, err)
	}
	ec.SetInput(input)

	res := &Result{
		Token:     token,
		Seq:       seq,
		Solutions: solution.New(input.Variables()...),
		Input:     input.Count(),
	}
	for _, b := range q.Binds {
		res.Solutions.AddVariable(b.Var)
	}
	quota := NewRowQuota(e.maxRows)

	for id, row := range input.Rows() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("execution %s: %w", token, err)
		}
		if err := quota.Check(token); err != nil {
			slog.Error("max rows quota exceeded",
				"token", token,
				"rows", quota.Current(),
				"limit", quota.MaxRows(),
			)
			return nil, newRowLimitError(token, err)
		}

		if q.Filter != nil {
			ok, err := q.Filter.EffectiveBooleanValue(ec, id)
			if err != nil {
				slog.Debug("filter error, row excluded",
					"token", token,
					"row", id,
					"code", expr.CodeOf(err),
					"error", err,
				)
				res.Errors++
				continue
			}
			if !ok {
				res.Rejected++
				continue
			}
		}

		res.Solutions.Add(e.extend(ec, id, row, q.Binds, res))
	}

	slog.Info("execution finished",
		"token", token,
		"seq", seq,
		"input", res.Input,
		"output", res.Solutions.Count(),
		"filter_errors", res.Errors,
	)

	return res, nil
}

// release drops the values q's expressions cached for token.
func release(q Query, token string) {
	expr.ReleaseExecution(q.Filter, token)
	for _, b := range q.Binds {
		expr.ReleaseExecution(b.Expr, token)
	}
}

// extend adds the value of every bind to row. Binds see the input row, not
// each other.
func (e *Engine) extend(ec *expr.EvalContext, id int, row solution.Binding, binds []Bind, res *Result) solution.Binding {
	if len(binds) == 0 {
		return row
	}

	values := make(map[string]term.Term, row.Len()+len(binds))
	for _, v := range row.Variables() {
		values[v], _ = row.Get(v)
	}
	for _, b := range binds {
		t, err := b.Expr.Value(ec, id)
		if err != nil {
			slog.Debug("bind error, variable left unbound",
				"token", ec.ExecutionToken(),
				"row", id,
				"var", b.Var,
				"code", expr.CodeOf(err),
				"error", err,
			)
			res.BindErrors++
			continue
		}
		values[b.Var] = t
	}
	return solution.NewBinding(values)
}

// validateQuery rejects queries Select and Explain cannot run.
func validateQuery(q Query) error {
	if q.Where == nil {
		return &QueryError{Code: ErrCodeInvalidQuery, Message: "query has no where pattern"}
	}
	seen := make(map[string]bool, len(q.Binds))
	for _, b := range q.Binds {
		switch {
		case b.Var == "" || b.Expr == nil:
			return &QueryError{Code: ErrCodeInvalidQuery, Message: "bind needs a variable and an expression"}
		case seen[b.Var] || slices.Contains(q.Where.Variables(), b.Var):
			return &QueryError{Code: ErrCodeInvalidQuery, Message: fmt.Sprintf("bind variable ?%s is already in scope", b.Var)}
		}
		seen[b.Var] = true
	}
	return nil
}

// Plan describes how a query would run without running it.
type Plan struct {
	// Where is the canonical text of the WHERE pattern.
	Where string

	// SQL and Params are the compiled WHERE query; empty for the empty pattern.
	SQL    string
	Params []any

	// Filter is the canonical text of the filter, or "".
	Filter string

	// Variables lists the filter's free variables.
	Variables []string

	// Binds holds "?var = expression" for every computed column.
	Binds []string
}

// Explain compiles q without executing it.
func (e *Engine) Explain(q Query) (Plan, error) {
	if err := validateQuery(q); err != nil {
		return Plan{}, err
	}

	p := Plan{Where: q.Where.String()}
	if !q.Where.IsEmpty() {
		compiled, err := querysql.NewSQLCompiler().Compile(q.Where)
		if err != nil {
			return Plan{}, fmt.Errorf("explain: %w", err)
		}
		p.SQL = compiled.SQL
		p.Params = compiled.Params
	}
	if q.Filter != nil {
		p.Filter = q.Filter.String()
		p.Variables = q.Filter.Variables()
	}
	for _, b := range q.Binds {
		p.Binds = append(p.Binds, fmt.Sprintf("?%s = %s", b.Var, b.Expr.String()))
	}
	return p, nil
}
