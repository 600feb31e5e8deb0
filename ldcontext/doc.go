// Package ldcontext implements the JSON-LD 1.1 active context: the
// resolved term-and-defaults snapshot used to interpret a fragment of a
// document, the Context Processing algorithm that builds one from a
// local @context value, the Term Definition Creation algorithm, and IRI
// expansion.
//
// Active contexts are immutable once published: Process never mutates
// its input, it derives a new snapshot (copy-on-write over the term
// table). That makes it safe to fan recursive expansion branches out
// from a shared parent context without synchronization.
package ldcontext
