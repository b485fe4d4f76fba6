// Package term provides the immutable RDF term model used by the expression core.
//
// A Term is one of an IRI, a blank node or a literal (lexical form plus an optional
// datatype IRI or language tag). Terms are comparable Go values: two terms are equal
// exactly when they have the same kind, lexical form, datatype and language tag, so
// they can be used directly as map keys and compared with ==.
//
// term imports nothing internal. Every other internal package builds on it.
package term
