package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/rdfexpr/internal/engine"
	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/report"
	"github.com/roach88/rdfexpr/internal/store"
	"github.com/roach88/rdfexpr/internal/testutil"
)

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// A fixed token and clock make the report reproducible.
//
// Execution flow:
// 1. Create fresh in-memory database and load the dataset
// 2. Build the query from the where list and expression trees
// 3. Execute the query once
// 4. Compare the outcome with the expectations
//
// The returned error covers harness failures only. Expression build and
// execution errors are part of the result and may be expected.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := loadDataset(ctx, st, scenario.Dataset); err != nil {
		return nil, err
	}

	return run(ctx, st, scenario)
}

// RunOnStore executes scenario against the triples already in st, such as a
// database filled by the load command. The scenario must not carry a
// dataset of its own: st is never written.
func RunOnStore(ctx context.Context, st *store.Store, scenario *Scenario) (*Result, error) {
	if len(scenario.Dataset) > 0 {
		return nil, fmt.Errorf("scenario %s has a dataset; load it into the store instead", scenario.Name)
	}
	return run(ctx, st, scenario)
}

// run evaluates scenario's query over st and checks the expectations.
func run(ctx context.Context, st *store.Store, scenario *Scenario) (*Result, error) {
	where, err := pattern.Parse(scenario.Where...)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}

	now := testutil.Epoch
	if scenario.Now != "" {
		now, err = time.Parse(time.RFC3339Nano, scenario.Now)
		if err != nil {
			return nil, fmt.Errorf("now: %w", err)
		}
	}

	opts := []engine.EngineOption{engine.WithNowClock(testutil.FixedClock{T: now})}
	if scenario.MaxRows != nil {
		opts = append(opts, engine.WithMaxRows(*scenario.MaxRows))
	}
	eng := engine.New(st, testutil.NewFixedTokenGenerator(scenario.Token), opts...)

	result := NewResult()
	res, runErr := execute(ctx, eng, where, scenario)
	if runErr == nil {
		result.Report = report.FromResult(scenario.Name, res)
	}
	result.Err = runErr

	for _, msg := range CheckExpectations(scenario.Expect, result) {
		result.AddError(msg)
	}

	slog.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)

	return result, nil
}

// execute builds the query expressions and runs them.
func execute(ctx context.Context, eng *engine.Engine, where *pattern.GraphPattern, scenario *Scenario) (*engine.Result, error) {
	q, err := BuildQuery(where, scenario)
	if err != nil {
		return nil, err
	}
	return eng.Select(ctx, q)
}

// BuildQuery assembles the engine query for scenario over where.
func BuildQuery(where *pattern.GraphPattern, scenario *Scenario) (engine.Query, error) {
	factory, err := scenarioFactory(scenario)
	if err != nil {
		return engine.Query{}, err
	}

	q := engine.Query{Where: where}
	if scenario.Filter != nil {
		q.Filter, err = scenario.Filter.Build(factory)
		if err != nil {
			return engine.Query{}, fmt.Errorf("filter: %w", err)
		}
	}
	for i, b := range scenario.Bind {
		e, err := b.Expr.Build(factory)
		if err != nil {
			return engine.Query{}, fmt.Errorf("bind[%d]: %w", i, err)
		}
		q.Binds = append(q.Binds, engine.Bind{Var: b.Var, Expr: e})
	}
	return q, nil
}

// scenarioFactory returns a factory with the scenario's digest policy.
func scenarioFactory(scenario *Scenario) (*expr.Factory, error) {
	if len(scenario.Digest) == 0 {
		return expr.NewFactory(expr.DefaultDigestPolicy()), nil
	}
	algs := make([]expr.Algorithm, 0, len(scenario.Digest))
	for _, name := range scenario.Digest {
		alg, err := expr.ParseAlgorithm(name)
		if err != nil {
			return nil, fmt.Errorf("digest: %w", err)
		}
		algs = append(algs, alg)
	}
	return expr.NewFactory(expr.NewDigestPolicy(algs...)), nil
}

// loadDataset adds the scenario's N-Triples statements to st.
func loadDataset(ctx context.Context, st *store.Store, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if _, err := st.LoadNTriples(ctx, strings.NewReader(strings.Join(lines, "\n"))); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	return nil
}
