// Package store provides SQLite-backed storage for RDF triples.
//
// The store holds a single set-semantics triple table. Every term column
// holds the term's canonical N-Triples text, which makes term equality a
// plain TEXT comparison and lets basic graph patterns compile to self-joins
// (see internal/querysql).
//
// # Deterministic Results
//
// Triples keep their insertion id. Reads and compiled pattern queries order
// by id so identical datasets produce identical row orders.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Open(":memory:") gives a private in-memory store, used by scenarios and
// tests.
package store
