package jsonld

import (
	"github.com/c360/jsonld/ldcontext"
	"github.com/c360/jsonld/loader"
	"github.com/c360/jsonld/pkg/json"
)

// Option configures an expansion run.
type Option func(*options)

type options struct {
	base              string
	documentURL       string
	mode              ldcontext.Mode
	loader            loader.Loader
	expandContext     json.Value
	ordered           bool
	frameExpansion    bool
	numericIDs        bool
	maxRemoteContexts int
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBase sets the base IRI for resolving relative references. It
// overrides the document URL.
func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

// WithDocumentURL records where the document was retrieved from. It
// seeds the base IRI when WithBase is not given and resolves relative
// context references.
func WithDocumentURL(url string) Option {
	return func(o *options) { o.documentURL = url }
}

// WithProcessingMode selects the processing mode; the default is
// JSON-LD 1.1.
func WithProcessingMode(mode ldcontext.Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithDocumentLoader substitutes the loader used to dereference remote
// contexts. The default is a caching HTTP loader.
func WithDocumentLoader(l loader.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithExpandContext applies a context before expanding, as if the
// document started with it. The value may be anything legal as an
// @context value, or an object wrapping one under an @context entry.
func WithExpandContext(local json.Value) Option {
	return func(o *options) { o.expandContext = local }
}

// WithOrdered makes expansion iterate object keys lexicographically
// wherever the algorithm leaves the order free, for byte-deterministic
// output.
func WithOrdered() Option {
	return func(o *options) { o.ordered = true }
}

// WithFrameExpansion relaxes the grammar for frame documents.
func WithFrameExpansion() Option {
	return func(o *options) { o.frameExpansion = true }
}

// WithNumericIDs accepts JSON numbers as @id values, expanding their
// lexical form. For data sources that emit numeric identifiers.
func WithNumericIDs() Option {
	return func(o *options) { o.numericIDs = true }
}

// WithMaxRemoteContexts bounds the remote context dereference chain.
func WithMaxRemoteContexts(n int) Option {
	return func(o *options) { o.maxRemoteContexts = n }
}
