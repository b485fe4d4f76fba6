// Package report renders execution results as canonical JSON.
//
// The encoding follows RFC 8785: object keys sorted by UTF-16 code units,
// no HTML escaping, NFC-normalized strings, and no floats or nulls. The same
// rows therefore always produce the same bytes, which golden files and
// result fingerprints rely on.
package report
