package store

import (
	"context"
	"fmt"
)

// AddTriple inserts a triple into the store.
// Uses ON CONFLICT DO NOTHING for set semantics - duplicate triples are
// silently ignored. Returns whether a new row was written.
func (s *Store) AddTriple(ctx context.Context, t Triple) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, fmt.Errorf("add triple: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO triples (subject, predicate, object)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		EncodeTerm(t.Subject),
		EncodeTerm(t.Predicate),
		EncodeTerm(t.Object),
	)
	if err != nil {
		return false, fmt.Errorf("add triple: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add triple: %w", err)
	}
	return n > 0, nil
}

// AddTriples inserts triples in a single transaction and returns how many
// were new. Either every triple is written or none is.
func (s *Store) AddTriples(ctx context.Context, triples ...Triple) (int, error) {
	for i, t := range triples {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("add triples: triple %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("add triples: begin: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO triples (subject, predicate, object)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("add triples: prepare: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, t := range triples {
		res, err := stmt.ExecContext(ctx,
			EncodeTerm(t.Subject),
			EncodeTerm(t.Predicate),
			EncodeTerm(t.Object),
		)
		if err != nil {
			return 0, fmt.Errorf("add triples: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("add triples: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("add triples: commit: %w", err)
	}
	return added, nil
}
