package ldcontext

import (
	"github.com/c360/jsonld/loader"
)

// Mode selects the processing mode. Mode11 enables the JSON-LD 1.1
// grammar; Mode10 restricts contexts to the 1.0 subset and rejects 1.1
// features with ProcessingModeConflict or the relevant grammar error.
type Mode string

// Supported processing modes.
const (
	Mode10 Mode = "json-ld-1.0"
	Mode11 Mode = "json-ld-1.1"
)

// Direction is a base direction for text without a bidirectional
// ordering of its own.
type Direction string

// The two valid base directions.
const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// defaultMaxRemoteContexts bounds the remote dereference chain during a
// single Process call. The number is per resolution, not per document.
const defaultMaxRemoteContexts = 32

// Options carries the processor-level knobs every context derived from
// the same resolution shares.
type Options struct {
	// Mode is the processing mode; empty means Mode11.
	Mode Mode

	// Loader dereferences remote contexts. A nil loader makes any
	// remote context reference fail with LoadingRemoteContextFailed.
	Loader loader.Loader

	// MaxRemoteContexts bounds the remote dereference chain; zero
	// means the default.
	MaxRemoteContexts int
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = Mode11
	}
	if o.MaxRemoteContexts <= 0 {
		o.MaxRemoteContexts = defaultMaxRemoteContexts
	}
	return o
}

// ActiveContext is the resolved state a fragment of a document is
// interpreted against: the term table plus the document-wide defaults.
// Values are immutable after Process returns them; derivations copy.
type ActiveContext struct {
	terms map[string]*TermDefinition

	baseIRI string
	baseURL string

	// vocab is meaningful only when vocabSet is true: @vocab may map
	// to the empty string via a document-relative expansion.
	vocab    string
	vocabSet bool

	defaultLanguage  string
	defaultDirection Direction

	// previous is the context to revert to when a non-propagating
	// (type-scoped) context goes out of scope.
	previous *ActiveContext

	opts Options
}

// New returns an initial active context with no term definitions.
// baseIRI seeds relative IRI resolution, baseURL records where the
// document was retrieved from.
func New(baseIRI, baseURL string, opts Options) *ActiveContext {
	return &ActiveContext{
		terms:   make(map[string]*TermDefinition),
		baseIRI: baseIRI,
		baseURL: baseURL,
		opts:    opts.withDefaults(),
	}
}

// clone returns a derivation-ready copy. The term table is duplicated,
// the definitions themselves are shared: term definitions are never
// mutated after publication, only replaced.
func (c *ActiveContext) clone() *ActiveContext {
	terms := make(map[string]*TermDefinition, len(c.terms))
	for k, v := range c.terms {
		terms[k] = v
	}
	d := *c
	d.terms = terms
	return &d
}

// Mode returns the processing mode.
func (c *ActiveContext) Mode() Mode { return c.opts.Mode }

// BaseIRI returns the current base IRI, or "" when base resolution is
// disabled.
func (c *ActiveContext) BaseIRI() string { return c.baseIRI }

// BaseURL returns the retrieval URL of the document that established
// this context.
func (c *ActiveContext) BaseURL() string { return c.baseURL }

// VocabMapping returns the vocabulary mapping and whether one is set.
func (c *ActiveContext) VocabMapping() (string, bool) { return c.vocab, c.vocabSet }

// DefaultLanguage returns the default language, or "".
func (c *ActiveContext) DefaultLanguage() string { return c.defaultLanguage }

// DefaultDirection returns the default base direction, or "".
func (c *ActiveContext) DefaultDirection() Direction { return c.defaultDirection }

// Previous returns the context to revert to outside a non-propagating
// scope, or nil.
func (c *ActiveContext) Previous() *ActiveContext { return c.previous }

// Term returns the definition for term, or nil. The empty string never
// has a definition.
func (c *ActiveContext) Term(term string) *TermDefinition {
	if term == "" {
		return nil
	}
	return c.terms[term]
}

// HasTerm reports whether term is defined, including terms defined as
// null.
func (c *ActiveContext) HasTerm(term string) bool {
	_, ok := c.terms[term]
	return ok
}

// Terms returns the defined term names in no particular order.
func (c *ActiveContext) Terms() []string {
	names := make([]string, 0, len(c.terms))
	for name := range c.terms {
		names = append(names, name)
	}
	return names
}

// hasProtectedTerm reports whether any definition is protected, which
// blocks nullifying the context unless protection is overridden.
func (c *ActiveContext) hasProtectedTerm() bool {
	for _, def := range c.terms {
		if def.Protected {
			return true
		}
	}
	return false
}
