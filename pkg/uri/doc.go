// Package uri provides the IRI predicates and relative-reference
// resolution the JSON-LD algorithms depend on. It deliberately exposes a
// tiny surface over net/url so every call site states which grammar rule
// it is checking.
package uri
