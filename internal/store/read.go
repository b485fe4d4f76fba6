package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Count returns the number of stored triples.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count triples: %w", err)
	}
	return n, nil
}

// Triples returns every stored triple in insertion order.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) Triples(ctx context.Context) ([]Triple, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject, predicate, object
		FROM triples
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query triples: %w", err)
	}
	defer rows.Close()

	triples := []Triple{}
	for rows.Next() {
		t, err := scanTriple(rows)
		if err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate triples: %w", err)
	}
	return triples, nil
}

// Contains reports whether t is stored.
func (s *Store) Contains(ctx context.Context, t Triple) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM triples
		WHERE subject = ? AND predicate = ? AND object = ?
	`,
		EncodeTerm(t.Subject),
		EncodeTerm(t.Predicate),
		EncodeTerm(t.Object),
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("contains triple: %w", err)
	}
	return true, nil
}

// scanTriple decodes one (subject, predicate, object) row.
func scanTriple(rows *sql.Rows) (Triple, error) {
	var s, p, o string
	if err := rows.Scan(&s, &p, &o); err != nil {
		return Triple{}, fmt.Errorf("scan triple: %w", err)
	}

	subject, err := DecodeTerm(s)
	if err != nil {
		return Triple{}, err
	}
	predicate, err := DecodeTerm(p)
	if err != nil {
		return Triple{}, err
	}
	object, err := DecodeTerm(o)
	if err != nil {
		return Triple{}, err
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}
