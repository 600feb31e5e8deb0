// Package expansion implements the JSON-LD 1.1 Expansion algorithm:
// rewriting a document into its context-free form where every property
// is an IRI, every literal an explicit value object, and every entry
// value an array.
//
// Expansion recurses over the element tree carrying an active context
// from package ldcontext. Contexts are never mutated, so sibling
// branches can share one.
package expansion
