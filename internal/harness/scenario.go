package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dataset holds N-Triples statements loaded before the query runs.
	Dataset []string `yaml:"dataset,omitempty"`

	// Where lists the triple patterns of the query, one per entry.
	// An empty list is the empty pattern, which yields one empty row.
	Where []string `yaml:"where"`

	// Filter is the optional filter expression.
	Filter *ExprNode `yaml:"filter,omitempty"`

	// Bind lists computed columns evaluated on every kept row.
	Bind []BindStep `yaml:"bind,omitempty"`

	// Digest lists permitted digest algorithms. Empty uses the default policy.
	Digest []string `yaml:"digest,omitempty"`

	// MaxRows overrides the engine row quota. Zero disables it.
	MaxRows *int `yaml:"max_rows,omitempty"`

	// Token is the fixed execution token.
	// If empty, defaults to "test-exec-default".
	Token string `yaml:"token,omitempty"`

	// Now fixes the NOW() clock (RFC 3339). If empty, testutil.Epoch is used.
	Now string `yaml:"now,omitempty"`

	// Expect holds the expected outcome.
	Expect Expect `yaml:"expect"`
}

// BindStep assigns the value of an expression to a new variable.
type BindStep struct {
	Var  string   `yaml:"var"`
	Expr ExprNode `yaml:"expr"`
}

// Expect specifies the expected execution outcome.
type Expect struct {
	// Rows are the exact solutions in order. Nil skips the comparison;
	// an empty list requires no solutions.
	Rows []map[string]string `yaml:"rows,omitempty"`

	// Count is the expected number of solutions.
	Count *int `yaml:"count,omitempty"`

	// Rejected is the expected number of rows the filter evaluated to false.
	Rejected *int `yaml:"rejected,omitempty"`

	// FilterErrors is the expected number of rows the filter raised an error on.
	FilterErrors *int `yaml:"filter_errors,omitempty"`

	// BindErrors is the expected number of binds left unbound by an error.
	BindErrors *int `yaml:"bind_errors,omitempty"`

	// Error, if set, is a substring of the error the run must fail with.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Expression trees are checked structurally here and semantically by Build.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Where == nil {
		return fmt.Errorf("where is required (use [] for the empty pattern)")
	}

	if s.Now != "" {
		if _, err := time.Parse(time.RFC3339Nano, s.Now); err != nil {
			return fmt.Errorf("now: %w", err)
		}
	}

	if s.MaxRows != nil && *s.MaxRows < 0 {
		return fmt.Errorf("max_rows must be non-negative")
	}

	if s.Filter != nil {
		if err := s.Filter.validate("filter"); err != nil {
			return err
		}
	}

	for i, b := range s.Bind {
		if b.Var == "" {
			return fmt.Errorf("bind[%d]: var is required", i)
		}
		if err := b.Expr.validate(fmt.Sprintf("bind[%d].expr", i)); err != nil {
			return err
		}
	}

	return validateExpect(&s.Expect)
}

// validateExpect requires at least one expectation so a scenario cannot pass vacuously.
func validateExpect(e *Expect) error {
	if e.Error != "" {
		if e.Rows != nil || e.Count != nil {
			return fmt.Errorf("expect: error excludes rows and count")
		}
		return nil
	}

	if e.Rows == nil && e.Count == nil && e.Rejected == nil && e.FilterErrors == nil && e.BindErrors == nil {
		return fmt.Errorf("expect: at least one of rows, count, rejected, filter_errors, bind_errors or error is required")
	}

	for _, n := range []*int{e.Count, e.Rejected, e.FilterErrors, e.BindErrors} {
		if n != nil && *n < 0 {
			return fmt.Errorf("expect: counts must be non-negative")
		}
	}
	return nil
}
