package store

import (
	"fmt"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// Triple is one RDF statement.
type Triple struct {
	Subject   term.Term
	Predicate term.Term
	Object    term.Term
}

// T is shorthand for a Triple literal.
func T(s, p, o term.Term) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// Validate checks RDF position rules: the subject is an IRI or blank node,
// the predicate is an IRI and the object is any term.
func (t Triple) Validate() error {
	if !t.Subject.IsIRI() && !t.Subject.IsBlank() {
		return fmt.Errorf("subject must be an IRI or blank node, got %s", t.Subject)
	}
	if !t.Predicate.IsIRI() {
		return fmt.Errorf("predicate must be an IRI, got %s", t.Predicate)
	}
	if t.Object.IsZero() {
		return fmt.Errorf("object is missing")
	}
	return nil
}

// String renders the triple as an N-Triples statement.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// EncodeTerm converts a term to its column value (canonical N-Triples text).
func EncodeTerm(t term.Term) string {
	return t.String()
}

// DecodeTerm parses a column value back into a term.
func DecodeTerm(column string) (term.Term, error) {
	t, err := term.Parse(column)
	if err != nil {
		return term.Term{}, fmt.Errorf("decode term %q: %w", column, err)
	}
	return t, nil
}

// ParseTriple parses one N-Triples statement: three terms followed by '.'
// and an optional '#' comment.
func ParseTriple(line string) (Triple, error) {
	rest := strings.TrimSpace(line)
	var parts [3]term.Term
	for i := range parts {
		tok, tail, err := term.NextToken(rest)
		if err != nil {
			return Triple{}, err
		}
		t, err := term.Parse(tok)
		if err != nil {
			return Triple{}, err
		}
		parts[i] = t
		rest = strings.TrimSpace(tail)
	}
	if !strings.HasPrefix(rest, ".") {
		return Triple{}, fmt.Errorf("expected '.' after object, got %q", rest)
	}
	if tail := strings.TrimSpace(rest[1:]); tail != "" && !strings.HasPrefix(tail, "#") {
		return Triple{}, fmt.Errorf("unexpected text after '.': %q", tail)
	}

	tr := Triple{Subject: parts[0], Predicate: parts[1], Object: parts[2]}
	if err := tr.Validate(); err != nil {
		return Triple{}, err
	}
	return tr, nil
}
