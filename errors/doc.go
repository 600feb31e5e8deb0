// Package errors defines the closed taxonomy of JSON-LD processing error
// codes and the error type carried by every failure surfaced from context
// processing, term definition creation, IRI expansion, and expansion.
//
// Errors are identified by Code, not by distinct Go types. A violation is
// surfaced immediately to the caller with the offending code; there is no
// silent recovery or retry inside the processing core. Callers classify
// failures with HasCode or CodeOf:
//
//	if jsonlderrors.HasCode(err, jsonlderrors.CyclicIRIMapping) {
//	    // the local context defines terms in terms of each other
//	}
//
// The code strings match the error keys of the JSON-LD 1.1 API
// specification, so they can be compared against conformance test
// manifests directly.
package errors
