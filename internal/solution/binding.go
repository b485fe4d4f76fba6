package solution

import (
	"slices"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// Binding is one immutable solution row.
type Binding struct {
	values map[string]term.Term
}

// NewBinding creates a binding from a variable -> term map.
// The map is copied; zero terms are treated as unbound and dropped.
func NewBinding(values map[string]term.Term) Binding {
	b := Binding{values: make(map[string]term.Term, len(values))}
	for v, t := range values {
		if t.IsZero() {
			continue
		}
		b.values[v] = t
	}
	return b
}

// B is a shorthand for building a binding from alternating variable names and terms.
// Example: B("x", term.NewIRI("http://example.org/a"), "y", term.NewLiteral("1"))
func B(pairs ...any) Binding {
	if len(pairs)%2 != 0 {
		panic("solution.B: odd number of arguments")
	}
	m := make(map[string]term.Term, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i].(string)] = pairs[i+1].(term.Term)
	}
	return NewBinding(m)
}

// Get returns the term bound to v, or ok=false when v is unbound.
func (b Binding) Get(v string) (term.Term, bool) {
	t, ok := b.values[v]
	return t, ok
}

// IsBound reports whether v has a value in this row.
func (b Binding) IsBound(v string) bool {
	_, ok := b.values[v]
	return ok
}

// Variables returns the bound variables in sorted order.
func (b Binding) Variables() []string {
	vars := make([]string, 0, len(b.values))
	for v := range b.values {
		vars = append(vars, v)
	}
	slices.Sort(vars)
	return vars
}

// Len returns the number of bound variables.
func (b Binding) Len() int { return len(b.values) }

// Equal reports whether both rows bind exactly the same variables to equal terms.
func (b Binding) Equal(other Binding) bool {
	if len(b.values) != len(other.values) {
		return false
	}
	for v, t := range b.values {
		if o, ok := other.values[v]; !ok || o != t {
			return false
		}
	}
	return true
}

// String renders the row as {?a=<t>, ?b=<t>} with variables sorted.
func (b Binding) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range b.Variables() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('?')
		sb.WriteString(v)
		sb.WriteByte('=')
		sb.WriteString(b.values[v].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
