package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its report against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the report doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's report against a golden file.
// Runs that failed have no report; their golden file holds the error text.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// Snapshot renders result the way golden files store it: the canonical
// report followed by a newline, or "error: ..." for a failed run.
func Snapshot(result *Result) ([]byte, error) {
	if result.Err != nil {
		return []byte(fmt.Sprintf("error: %v\n", result.Err)), nil
	}
	data, err := result.Report.Canonical()
	if err != nil {
		return nil, fmt.Errorf("golden: %w", err)
	}
	return append(data, '\n'), nil
}
