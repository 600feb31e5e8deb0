// Package keyword defines the reserved JSON-LD @-keywords and predicates
// over them. Keywords are the only tokens besides absolute IRIs and blank
// node identifiers that may appear as keys of an expanded document.
package keyword
