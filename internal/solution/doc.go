// Package solution provides bindings (solution rows) and multisets of bindings.
//
// A Binding maps variable names to terms. Lookups return an explicit
// (term, ok) pair; there is no sentinel for "unbound". Bindings are never
// mutated after construction: joins and filters build new rows.
//
// A Multiset is an ordered sequence of bindings together with the set of
// variables it declares. A row id is the index of a binding within the
// multiset that produced it and is only meaningful relative to that multiset.
package solution
