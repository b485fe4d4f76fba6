package solution

import (
	"fmt"
	"iter"
	"slices"

	"github.com/roach88/rdfexpr/internal/term"
)

// Multiset is an ordered collection of bindings sharing a declared variable set.
//
// A multiset is built by New and Add and is treated as read-only once handed
// to the expression evaluator.
type Multiset struct {
	vars     []string
	declared map[string]bool
	rows     []Binding
}

// New creates an empty multiset declaring the given variables.
func New(vars ...string) *Multiset {
	m := &Multiset{declared: make(map[string]bool, len(vars))}
	for _, v := range vars {
		m.AddVariable(v)
	}
	return m
}

// Identity returns a multiset holding a single empty row: the result of
// evaluating an empty pattern.
func Identity() *Multiset {
	m := New()
	m.rows = append(m.rows, NewBinding(nil))
	return m
}

// FromRows creates a multiset declaring vars and holding rows in order.
func FromRows(vars []string, rows ...Binding) *Multiset {
	m := New(vars...)
	for _, r := range rows {
		m.Add(r)
	}
	return m
}

// AddVariable declares v without adding any row.
func (m *Multiset) AddVariable(v string) {
	if m.declared[v] {
		return
	}
	m.declared[v] = true
	m.vars = append(m.vars, v)
}

// Add appends a row and declares every variable it binds.
// Returns the new row's id.
func (m *Multiset) Add(b Binding) int {
	for _, v := range b.Variables() {
		m.AddVariable(v)
	}
	m.rows = append(m.rows, b)
	return len(m.rows) - 1
}

// Count returns the number of rows.
func (m *Multiset) Count() int { return len(m.rows) }

// IsEmpty reports whether the multiset has no rows.
func (m *Multiset) IsEmpty() bool { return len(m.rows) == 0 }

// Row returns the row with the given id.
func (m *Multiset) Row(id int) (Binding, error) {
	if id < 0 || id >= len(m.rows) {
		return Binding{}, fmt.Errorf("binding id %d out of range [0,%d)", id, len(m.rows))
	}
	return m.rows[id], nil
}

// Rows iterates over (id, row) pairs in order.
func (m *Multiset) Rows() iter.Seq2[int, Binding] {
	return func(yield func(int, Binding) bool) {
		for i, r := range m.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Variables returns the declared variables in declaration order.
func (m *Multiset) Variables() []string {
	return slices.Clone(m.vars)
}

// ContainsVariable reports whether v is declared by this multiset.
func (m *Multiset) ContainsVariable(v string) bool {
	return m.declared[v]
}

// SharedVariables returns the variables declared by both multisets, in m's
// declaration order.
func (m *Multiset) SharedVariables(other *Multiset) []string {
	var shared []string
	for _, v := range m.vars {
		if other.declared[v] {
			shared = append(shared, v)
		}
	}
	return shared
}

// ContainsValue reports whether any row binds v to t.
func (m *Multiset) ContainsValue(v string, t term.Term) bool {
	for _, r := range m.rows {
		if got, ok := r.Get(v); ok && got == t {
			return true
		}
	}
	return false
}
