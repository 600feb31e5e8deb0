// Package json provides the generic JSON value model the JSON-LD
// algorithms operate on: null, boolean, number, string, ordered array,
// and order-preserving object of string keys.
//
// The model is a closed tagged-variant type (Value) so every branch of
// the processing algorithms corresponds to a checked type switch. The
// standard library representation (map[string]any) is unsuitable because
// expansion requires object key declaration order to be observable, and
// numbers must keep their lexical form.
//
// A Go nil Value means "absent"; JSON null is the explicit Null variant.
package json
