// Package retry provides exponential backoff with jitter. The JSON-LD
// processing core never retries anything itself; retrying a flaky remote
// context fetch is the document loader's concern, and this package backs
// the retrying loader wrapper.
package retry
