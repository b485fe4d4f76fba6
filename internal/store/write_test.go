package store

import (
	"context"
	"testing"

	"github.com/roach88/rdfexpr/internal/term"
)

func TestAddTriple_SetSemantics(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	tr := T(iri("a"), iri("p"), term.NewLiteral("x"))

	added, err := s.AddTriple(ctx, tr)
	if err != nil {
		t.Fatalf("AddTriple() failed: %v", err)
	}
	if !added {
		t.Error("first AddTriple() reported no insert")
	}

	added, err = s.AddTriple(ctx, tr)
	if err != nil {
		t.Fatalf("second AddTriple() failed: %v", err)
	}
	if added {
		t.Error("duplicate AddTriple() reported an insert")
	}

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestAddTriple_DistinguishesLiteralForms(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	objects := []term.Term{
		term.NewLiteral("1"),
		term.NewTypedLiteral("1", term.XSDInteger),
		term.NewTypedLiteral("1", term.XSDString),
		term.MustLangLiteral("1", "en"),
		iri("1"),
	}
	for _, o := range objects {
		if _, err := s.AddTriple(ctx, T(iri("a"), iri("p"), o)); err != nil {
			t.Fatalf("AddTriple(%s) failed: %v", o, err)
		}
	}

	n, _ := s.Count(ctx)
	if n != len(objects) {
		t.Errorf("Count() = %d, want %d", n, len(objects))
	}
}

func TestAddTriple_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	tests := []struct {
		name string
		tr   Triple
	}{
		{"literal subject", T(term.NewLiteral("a"), iri("p"), iri("b"))},
		{"blank predicate", T(iri("a"), term.NewBlank("p"), iri("b"))},
		{"missing object", T(iri("a"), iri("p"), term.Term{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddTriple(ctx, tt.tr); err == nil {
				t.Error("AddTriple() succeeded, want error")
			}
		})
	}
}

func TestAddTriples_Batch(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	added, err := s.AddTriples(ctx,
		T(iri("a"), iri("p"), iri("b")),
		T(iri("a"), iri("p"), iri("c")),
		T(iri("a"), iri("p"), iri("b")),
	)
	if err != nil {
		t.Fatalf("AddTriples() failed: %v", err)
	}
	if added != 2 {
		t.Errorf("AddTriples() = %d, want 2", added)
	}
}

func TestAddTriples_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.AddTriples(ctx,
		T(iri("a"), iri("p"), iri("b")),
		T(term.NewLiteral("bad"), iri("p"), iri("c")),
	)
	if err == nil {
		t.Fatal("AddTriples() succeeded, want error")
	}

	n, _ := s.Count(ctx)
	if n != 0 {
		t.Errorf("Count() = %d after failed batch, want 0", n)
	}
}
