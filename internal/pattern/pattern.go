// Package pattern defines the graph patterns embedded in EXISTS expressions
// and evaluated by a pattern evaluator.
//
// A GraphPattern is a basic graph pattern: a conjunction of triple patterns
// whose positions are either variables or constant terms. Compilation of
// richer algebra (OPTIONAL, UNION, MINUS) is outside this package.
package pattern

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// Node is one position of a triple pattern: a variable or a constant term.
type Node struct {
	Var  string    // variable name without '?', empty for constants
	Term term.Term // constant term, zero for variables
}

// V creates a variable node.
func V(name string) Node { return Node{Var: name} }

// T creates a constant node.
func T(t term.Term) Node { return Node{Term: t} }

// IsVariable reports whether n is a variable.
func (n Node) IsVariable() bool { return n.Var != "" }

// String renders ?name for variables and N-Triples syntax for constants.
func (n Node) String() string {
	if n.IsVariable() {
		return "?" + n.Var
	}
	return n.Term.String()
}

// ParseNode parses ?name as a variable and anything else as an N-Triples term.
func ParseNode(s string) (Node, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "?") || strings.HasPrefix(s, "$") {
		name := s[1:]
		if name == "" {
			return Node{}, fmt.Errorf("empty variable name")
		}
		return V(name), nil
	}
	t, err := term.Parse(s)
	if err != nil {
		return Node{}, err
	}
	return T(t), nil
}

// TriplePattern matches triples whose positions agree with its constants.
type TriplePattern struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// Nodes returns subject, predicate and object in order.
func (tp TriplePattern) Nodes() [3]Node {
	return [3]Node{tp.Subject, tp.Predicate, tp.Object}
}

// Variables returns the distinct variables of the triple pattern in position order.
func (tp TriplePattern) Variables() []string {
	var vars []string
	for _, n := range tp.Nodes() {
		if n.IsVariable() && !slices.Contains(vars, n.Var) {
			vars = append(vars, n.Var)
		}
	}
	return vars
}

// String renders "s p o".
func (tp TriplePattern) String() string {
	return tp.Subject.String() + " " + tp.Predicate.String() + " " + tp.Object.String()
}

// GraphPattern is a basic graph pattern.
type GraphPattern struct {
	Triples []TriplePattern
}

// New creates a graph pattern from triple patterns.
func New(triples ...TriplePattern) *GraphPattern {
	return &GraphPattern{Triples: slices.Clone(triples)}
}

// IsEmpty reports whether the pattern has no triple patterns.
func (p *GraphPattern) IsEmpty() bool { return len(p.Triples) == 0 }

// Variables returns every variable mentioned by any triple pattern, sorted.
func (p *GraphPattern) Variables() []string {
	var vars []string
	for _, tp := range p.Triples {
		for _, v := range tp.Variables() {
			if !slices.Contains(vars, v) {
				vars = append(vars, v)
			}
		}
	}
	slices.Sort(vars)
	return vars
}

// String renders the pattern in group syntax: { s p o . s p o . }
func (p *GraphPattern) String() string {
	if p.IsEmpty() {
		return "{ }"
	}
	var b strings.Builder
	b.WriteString("{ ")
	for _, tp := range p.Triples {
		b.WriteString(tp.String())
		b.WriteString(" . ")
	}
	b.WriteByte('}')
	return b.String()
}

// ParseTriplePattern parses "s p o" with an optional trailing '.'. Each
// position is a variable (?name) or an N-Triples term.
func ParseTriplePattern(line string) (TriplePattern, error) {
	rest := strings.TrimSpace(line)
	var nodes [3]Node
	for i := range nodes {
		tok, tail, err := term.NextToken(rest)
		if err != nil {
			return TriplePattern{}, fmt.Errorf("triple pattern %q: %w", line, err)
		}
		n, err := ParseNode(tok)
		if err != nil {
			return TriplePattern{}, fmt.Errorf("triple pattern %q: %w", line, err)
		}
		nodes[i] = n
		rest = strings.TrimSpace(tail)
	}
	if rest != "" && rest != "." {
		return TriplePattern{}, fmt.Errorf("triple pattern %q: unexpected %q after object", line, rest)
	}
	return TriplePattern{Subject: nodes[0], Predicate: nodes[1], Object: nodes[2]}, nil
}

// Parse builds a graph pattern from one triple pattern per line.
func Parse(lines ...string) (*GraphPattern, error) {
	triples := make([]TriplePattern, 0, len(lines))
	for _, line := range lines {
		tp, err := ParseTriplePattern(line)
		if err != nil {
			return nil, err
		}
		triples = append(triples, tp)
	}
	return New(triples...), nil
}
