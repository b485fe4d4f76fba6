package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// AssertionError is returned when an expectation fails.
// It includes the actual rows to help debug the failure.
type AssertionError struct {
	Type     string              // Expectation that failed
	Expected string              // Human-readable expected outcome
	Actual   string              // Human-readable actual outcome
	Rows     []map[string]string // Actual solutions for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Rows) > 0 {
		fmt.Fprintf(&buf, "\nSolutions:\n")
		for i, row := range e.Rows {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, formatRow(row))
		}
	}

	return buf.String()
}

// CheckExpectations compares result against expect.
// Returns a slice of error messages for failed expectations.
func CheckExpectations(expect Expect, result *Result) []string {
	var errs []string
	add := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if expect.Error != "" {
		add(assertError(expect.Error, result.Err))
		return errs
	}
	if result.Err != nil {
		errs = append(errs, fmt.Sprintf("execution failed: %v", result.Err))
		return errs
	}

	r := result.Report
	if expect.Rows != nil {
		add(assertRows(expect.Rows, r.Rows))
	}
	if expect.Count != nil {
		add(assertCount("count", *expect.Count, len(r.Rows), r.Rows))
	}
	if expect.Rejected != nil {
		add(assertCount("rejected", *expect.Rejected, r.Rejected, r.Rows))
	}
	if expect.FilterErrors != nil {
		add(assertCount("filter_errors", *expect.FilterErrors, r.Errors, r.Rows))
	}
	if expect.BindErrors != nil {
		add(assertCount("bind_errors", *expect.BindErrors, r.BindErrors, r.Rows))
	}
	return errs
}

// assertError checks that the run failed with an error containing want.
func assertError(want string, got error) error {
	if got == nil {
		return &AssertionError{
			Type:     "error",
			Expected: fmt.Sprintf("error containing %q", want),
			Actual:   "execution succeeded",
		}
	}
	if !strings.Contains(got.Error(), want) {
		return &AssertionError{
			Type:     "error",
			Expected: fmt.Sprintf("error containing %q", want),
			Actual:   got.Error(),
		}
	}
	return nil
}

// assertRows compares solutions in order. Expected terms are normalized
// through the term parser so equivalent spellings match.
func assertRows(expected, actual []map[string]string) error {
	if len(expected) != len(actual) {
		return &AssertionError{
			Type:     "rows",
			Expected: fmt.Sprintf("%d rows", len(expected)),
			Actual:   fmt.Sprintf("%d rows", len(actual)),
			Rows:     actual,
		}
	}

	for i := range expected {
		want, err := normalizeRow(expected[i])
		if err != nil {
			return fmt.Errorf("expect.rows[%d]: %w", i, err)
		}
		if !maps.Equal(want, actual[i]) {
			return &AssertionError{
				Type:     "rows",
				Expected: fmt.Sprintf("row %d = %s", i+1, formatRow(want)),
				Actual:   fmt.Sprintf("row %d = %s", i+1, formatRow(actual[i])),
				Rows:     actual,
			}
		}
	}
	return nil
}

func assertCount(name string, want, got int, rows []map[string]string) error {
	if want == got {
		return nil
	}
	return &AssertionError{
		Type:     name,
		Expected: fmt.Sprintf("%d", want),
		Actual:   fmt.Sprintf("%d", got),
		Rows:     rows,
	}
}

func normalizeRow(row map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(row))
	for v, s := range row {
		t, err := term.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("?%s: %w", v, err)
		}
		out[v] = t.String()
	}
	return out, nil
}

// formatRow renders a row as "{?a=<x>, ?b="y"}" with variables sorted.
func formatRow(row map[string]string) string {
	vars := slices.Sorted(maps.Keys(row))
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = "?" + v + "=" + row[v]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
