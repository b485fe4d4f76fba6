package store

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ReadNTriples parses an N-Triples document. Blank lines and '#' comment
// lines are skipped. Errors carry the 1-based line number.
func ReadNTriples(r io.Reader) ([]Triple, error) {
	var triples []Triple
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		t, err := ParseTriple(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		triples = append(triples, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read n-triples: %w", err)
	}
	return triples, nil
}

// LoadNTriples parses an N-Triples document and stores every triple in one
// transaction. Returns the number of new triples.
func (s *Store) LoadNTriples(ctx context.Context, r io.Reader) (int, error) {
	triples, err := ReadNTriples(r)
	if err != nil {
		return 0, fmt.Errorf("load n-triples: %w", err)
	}
	return s.AddTriples(ctx, triples...)
}
