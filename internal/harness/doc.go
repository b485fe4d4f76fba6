// Package harness runs conformance scenarios against the expression engine.
//
// A scenario loads a dataset into a fresh in-memory store, runs one query
// with a deterministic execution token and NOW() clock, and compares the
// solutions against its expectations.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: friends_with_names
//	description: "What this scenario validates"
//	dataset:
//	  - <http://example.org/alice> <http://example.org/knows> <http://example.org/bob> .
//	where:
//	  - ?a <http://example.org/knows> ?b
//	filter:
//	  exists:
//	    where:
//	      - ?b <http://example.org/name> ?n
//	bind:
//	  - var: h
//	    expr: { fn: SHA256, args: [{ var: b }] }
//	token: exec-1
//	now: 2024-01-02T03:04:05Z
//	expect:
//	  rows:
//	    - { a: "<http://example.org/alice>", b: "<http://example.org/bob>" }
//
// # Expression Trees
//
// Filter and bind expressions are structured trees rather than query text.
// Each node sets exactly one of:
//
//   - var: a variable name
//   - const: an N-Triples term
//   - fn + args: a function call resolved by expr.Factory (SHA256, NOW,
//     BOUND, &&, ||, !, or an extension function IRI)
//   - in / not_in: a variable and a list of N-Triples terms
//   - exists / not_exists: an embedded graph pattern
//
// # Expectations
//
//   - rows: the exact solutions in order, as variable -> N-Triples text
//   - count: the number of solutions, when rows are too long to list
//   - rejected / filter_errors / bind_errors: per-execution counters
//   - error: an error substring; the execution must fail
//
// # Golden Files
//
// RunWithGolden writes the canonical JSON report of a run to
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
