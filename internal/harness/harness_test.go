package harness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfexpr/internal/store"
)

func scenarioFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestRun_Scenarios(t *testing.T) {
	for _, path := range scenarioFiles(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name must match file name")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Where:       []string{},
		Token:       "exec-minimal",
		Expect:      Expect{Count: intPtr(1)},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "exec-minimal", result.Report.Token)
	assert.Equal(t, int64(1), result.Report.Seq)
}

func TestRun_DefaultTokenAndClock(t *testing.T) {
	scenario := &Scenario{
		Name:        "defaults",
		Description: "Token and NOW() defaults",
		Dataset:     []string{`<http://example.org/a> <http://example.org/p> "x" .`},
		Where:       []string{"?s <http://example.org/p> ?o"},
		Bind:        []BindStep{{Var: "t", Expr: ExprNode{Fn: "NOW"}}},
		Expect: Expect{Rows: []map[string]string{{
			"s": "<http://example.org/a>",
			"o": `"x"`,
			"t": `"2024-01-02T03:04:05.000000+00:00"^^<http://www.w3.org/2001/XMLSchema#dateTime>`,
		}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "test-exec-default", result.Report.Token)
}

func TestRun_FailingExpectation(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "Expectation that does not hold",
		Dataset:     []string{`<http://example.org/a> <http://example.org/p> "x" .`},
		Where:       []string{"?s <http://example.org/p> ?o"},
		Expect:      Expect{Count: intPtr(2)},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: count")
}

func TestRun_UnexpectedExecutionError(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown_function",
		Description: "Filter uses a function the factory does not know",
		Where:       []string{},
		Filter:      &ExprNode{Fn: "STRLEN", Args: []ExprNode{{Var: "x"}}},
		Expect:      Expect{Count: intPtr(1)},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Error(t, result.Err)
	assert.Contains(t, result.Errors[0], "unknown function")
}

func TestRun_ExpectedErrorMissing(t *testing.T) {
	scenario := &Scenario{
		Name:        "no_error",
		Description: "Expects an error that never happens",
		Where:       []string{},
		Expect:      Expect{Error: "ROW_LIMIT_EXCEEDED"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "execution succeeded")
}

func TestRun_HarnessFailures(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		want     string
	}{
		{
			name:     "bad dataset",
			scenario: Scenario{Dataset: []string{"<a> <b> ."}, Where: []string{}},
			want:     "dataset",
		},
		{
			name:     "bad where",
			scenario: Scenario{Where: []string{"?s ?p"}},
			want:     "where",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(&tt.scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: disk
description: loaded from disk
where: []
expect:
  count: 1
`), 0o644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", scenario.Name)
	assert.NotNil(t, scenario.Where)
	assert.Empty(t, scenario.Where)
}

func intPtr(n int) *int { return &n }

func TestRunOnStore_UsesExistingTriples(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "triples.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.LoadNTriples(context.Background(), strings.NewReader(
		"<http://example.org/alice> <http://example.org/color> \"red\" .\n"+
			"<http://example.org/bob> <http://example.org/color> \"blue\" .\n"))
	require.NoError(t, err)

	scenario := &Scenario{
		Name:        "on_store",
		Description: "IN over a loaded database",
		Where:       []string{"?p <http://example.org/color> ?c"},
		Filter:      &ExprNode{In: &Membership{Var: "c", Terms: []string{`"red"`}}},
		Token:       "exec-store",
		Expect: Expect{
			Rows:     []map[string]string{{"p": "<http://example.org/alice>", "c": `"red"`}},
			Rejected: intPtr(1),
		},
	}

	result, err := RunOnStore(context.Background(), st, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	n, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the store is only read")
}

func TestRunOnStore_RejectsDataset(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	scenario := &Scenario{
		Name:        "with_dataset",
		Description: "dataset plus external store",
		Dataset:     []string{`<http://example.org/a> <http://example.org/p> "x" .`},
		Where:       []string{},
	}

	_, err = RunOnStore(context.Background(), st, scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has a dataset")
}
