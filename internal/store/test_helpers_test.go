package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/rdfexpr/internal/term"
)

const ex = "http://example.org/"

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// iri creates an IRI in the example namespace.
func iri(local string) term.Term {
	return term.NewIRI(ex + local)
}
